package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Username validation
	"strings"  // String manipulation

	"derphost/internal/domain"     // Importing domain models
	"derphost/internal/middleware" // Session cookie name
	"derphost/internal/utils"      // Token generation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// rememberMaxAge is the session cookie lifetime when "remember device" is
// checked; without it the cookie is session-scoped.
const rememberMaxAge = 30 * 24 * 60 * 60

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,32}$`)

// reservedUsernames are route words that would shadow GET /:username.
var reservedUsernames = map[string]bool{
	"register":    true,
	"login":       true,
	"logout":      true,
	"me":          true,
	"save":        true,
	"like":        true,
	"dislike":     true,
	"leaderboard": true,
	"coinflip":    true,
}

// isValidUsername checks the username shape and rejects reserved route words
func isValidUsername(username string) bool {
	return usernamePattern.MatchString(username) && !reservedUsernames[username]
}

// RegisterHandler creates a new user with the default balance
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")
		// Validate username shape
		if !isValidUsername(username) {
			c.String(http.StatusBadRequest, "invalid username")
			return
		}
		// Reject empty passwords
		if password == "" {
			c.String(http.StatusBadRequest, "invalid password")
			return
		}
		// Hash the password; it is never stored or logged in plaintext
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.String(http.StatusInternalServerError, "registration failed")
			return
		}
		// Fresh user row with the default balance
		user := domain.User{Username: username, Passhash: string(hash), Coins: 100, Level: 1}
		if err := db.Create(&user).Error; err != nil {
			// Unique constraint on username: the only expected failure
			c.String(http.StatusBadRequest, "username taken")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("user registered")
		c.Redirect(http.StatusFound, "/")
	}
}

// LoginHandler verifies credentials and issues a fresh session token.
// Unknown username and bad password answer the same "nope" so the response
// text does not enumerate accounts.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")
		remember := c.PostForm("remember") != ""
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.String(http.StatusUnauthorized, "nope")
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Passhash), []byte(password)); err != nil {
			c.String(http.StatusUnauthorized, "nope")
			return
		}
		// Issue a fresh opaque token and persist the session row
		token, err := utils.NewSessionToken()
		if err != nil {
			c.String(http.StatusInternalServerError, "login failed")
			return
		}
		if err := db.Create(&domain.Session{Token: token, UserID: user.ID}).Error; err != nil {
			c.String(http.StatusInternalServerError, "login failed")
			return
		}
		// Session-scoped cookie unless the user asked to be remembered
		maxAge := 0
		if remember {
			maxAge = rememberMaxAge
		}
		c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
			"remember": remember,
		}).Info("user logged in")
		c.Redirect(http.StatusFound, "/me")
	}
}

// LogoutHandler deletes the session row if one exists and clears the cookie.
// Idempotent; always succeeds from the caller's perspective.
func LogoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
			db.Delete(&domain.Session{}, "token = ?", token)
		}
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/")
	}
}
