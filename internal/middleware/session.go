package middleware

import (
	"net/http" // HTTP status codes

	"derphost/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// SessionCookie is the name of the session cookie
const SessionCookie = "session"

// userKey is the gin context key holding the resolved user
const userKey = "currentUser"

// CurrentUser resolves the session cookie into the owning user and stores it
// in the context. Missing cookie, unknown token, or missing user all resolve
// to anonymous; this middleware never aborts.
func CurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie) // Read the session cookie
		if err != nil || token == "" {
			c.Next() // Anonymous
			return
		}
		var sess domain.Session // Look up the session row
		if err := db.First(&sess, "token = ?", token).Error; err != nil {
			c.Next() // Unrecognized token, stay anonymous
			return
		}
		var user domain.User // Fetch the owning user
		if err := db.First(&user, sess.UserID).Error; err != nil {
			c.Next() // Session points at a missing user, stay anonymous
			return
		}
		c.Set(userKey, &user) // Store typed user in context
		c.Next()
	}
}

// RequireUser aborts with 401 when the request resolved to anonymous.
// Must run after CurrentUser.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user from the context, or nil for
// anonymous requests.
func UserFrom(c *gin.Context) *domain.User {
	v, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
