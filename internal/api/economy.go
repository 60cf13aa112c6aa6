package api

import (
	"math/rand" // Fair coin toss
	"net/http"     // HTTP status codes
	"strconv"      // Bet coercion
	"strings"      // String manipulation
	"time"         // Cache TTL

	"derphost/internal/domain"     // Importing domain models
	"derphost/internal/middleware" // Current user lookup
	"derphost/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// Bet bounds for a single coin flip
const (
	minBet = 1
	maxBet = 50
)

// leaderboardCacheKey holds the cached leaderboard JSON
const leaderboardCacheKey = "leaderboard:top10"

// leaderboardTTL keeps the cache fresh enough for a toy economy
const leaderboardTTL = 30 * time.Second

// LeaderboardEntry is one leaderboard row
type LeaderboardEntry struct {
	Username string `json:"username"`
	Coins    int64  `json:"coins"`
	Exp      int64  `json:"exp"`
}

// LeaderboardHandler returns the top 10 non-admin users by coin balance.
// Username ascending breaks ties so the ordering is stable across storage
// engines.
func LeaderboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var entries []LeaderboardEntry
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, leaderboardCacheKey, &entries)
		if err == nil && found {
			c.JSON(http.StatusOK, entries)
			return
		}
		err = db.Model(&domain.User{}).
			Select("username, coins, exp").
			Where("admin = ?", false).
			Order("coins DESC, username ASC").
			Limit(10).
			Scan(&entries).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
			return
		}
		if entries == nil {
			entries = []LeaderboardEntry{} // Empty array, never null
		}
		_ = utils.SetCache(ctx, rdb, leaderboardCacheKey, entries, leaderboardTTL)
		c.JSON(http.StatusOK, entries)
	}
}

// clampBet coerces raw caller input toward an integer and clamps it into
// [minBet, maxBet]. Non-numeric input coerces to zero and clamps up to the
// minimum.
func clampBet(raw string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		f = 0
	}
	bet := int64(f) // Truncate toward zero
	if bet < minBet {
		return minBet
	}
	if bet > maxBet {
		return maxBet
	}
	return bet
}

// FairFlip is the production coin toss: 50/50, independent per call.
func FairFlip() bool {
	return rand.Intn(2) == 0
}

// CoinflipHandler resolves a wager. One draw decides the outcome, and the
// whole mutation is a single conditional UPDATE: balance moves by the
// clamped bet and exp grows by 5 only when the pre-bet balance covers the
// bet, so racing flips from the same user never lose updates.
func CoinflipHandler(db *gorm.DB, rdb *redis.Client, flip func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.UserFrom(c)
		bet := clampBet(c.PostForm("bet"))
		win := flip()
		delta := bet
		if !win {
			delta = -bet
		}
		res := db.Model(&domain.User{}).
			Where("id = ? AND coins >= ?", user.ID, bet).
			Updates(map[string]any{
				"coins": gorm.Expr("coins + ?", delta),
				"exp":   gorm.Expr("exp + 5"),
			})
		if res.Error != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"bet":     bet,
				"error":   res.Error.Error(),
			}).Error("coinflip failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "coinflip failed"})
			return
		}
		// Zero rows means the affordability guard rejected the bet
		if res.RowsAffected == 0 {
			c.String(http.StatusOK, "broke")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"bet":     bet,
			"win":     win,
		}).Info("coinflip resolved")
		// Balances moved, so the cached leaderboard is stale
		_ = utils.DeleteCache(c.Request.Context(), rdb, leaderboardCacheKey)
		c.JSON(http.StatusOK, gin.H{"win": win})
	}
}
