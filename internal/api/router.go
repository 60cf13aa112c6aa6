package api

import (
	"derphost/internal/middleware" // Session and logging middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter assembles the full HTTP surface against an explicit database
// handle, so tests can stand up the whole service on an isolated database.
// rdb may be nil (caching disabled); flip may be nil (fair coin).
func NewRouter(db *gorm.DB, rdb *redis.Client, flip func() bool) *gin.Engine {
	if flip == nil {
		flip = FairFlip
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog(), middleware.CurrentUser(db))
	r.SetHTMLTemplate(loadTemplates())

	// Landing and auth
	r.GET("/", LandingHandler())
	r.POST("/register", RegisterHandler(db))
	r.POST("/login", LoginHandler(db))
	r.POST("/logout", LogoutHandler(db))

	// Pages
	r.GET("/me", DashboardHandler(db))
	r.POST("/save", middleware.RequireUser(), SaveHandler(db))
	r.POST("/like/:user", LikeHandler(db))
	r.POST("/dislike/:user", DislikeHandler(db))

	// Economy
	r.GET("/leaderboard", LeaderboardHandler(db, rdb))
	r.POST("/coinflip", middleware.RequireUser(), CoinflipHandler(db, rdb, flip))

	// Public page view; static routes above win over the wildcard
	r.GET("/:username", ViewPageHandler(db))

	return r
}
