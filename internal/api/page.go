package api

import (
	"errors"   // Sentinel comparisons
	"net/http" // HTTP status codes

	"derphost/internal/domain"     // Importing domain models
	"derphost/internal/middleware" // Current user lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert clause
)

// LandingHandler renders the register/login forms
func LandingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "landing.tmpl", nil)
	}
}

// DashboardHandler renders the editor with the user's stored page source.
// Anonymous visitors are bounced back to the landing page.
func DashboardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.UserFrom(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
		// Empty string when no page has been saved yet
		var page domain.Page
		if err := db.First(&page, "owner = ?", user.ID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusInternalServerError, "something broke")
			return
		}
		c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
			"User":     user,
			"PageHTML": page.HTML,
		})
	}
}

// SaveHandler upserts the user's page: one row per owner, latest content
// wins, no versioning. Markup is stored verbatim.
func SaveHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.UserFrom(c)
		page := domain.Page{Owner: user.ID, HTML: c.PostForm("html")}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner"}},
			DoUpdates: clause.AssignmentColumns([]string{"html"}),
		}).Create(&page).Error
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Error("page save failed")
			c.String(http.StatusInternalServerError, "save failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"bytes":   len(page.HTML),
		}).Info("page saved")
		c.Redirect(http.StatusFound, "/me")
	}
}

// ViewPageHandler serves a user's page inside a sandboxed iframe. The stored
// markup goes through the srcdoc attribute, so the template's attribute
// escaping is the boundary that keeps it from touching the outer document.
func ViewPageHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		var user domain.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			// Soft miss, not an error status
			c.String(http.StatusOK, "no such derp")
			return
		}
		var page domain.Page
		if err := db.First(&page, "owner = ?", user.ID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusInternalServerError, "something broke")
			return
		}
		c.HTML(http.StatusOK, "page.tmpl", gin.H{
			"Username": user.Username,
			"PageHTML": page.HTML,
		})
	}
}

// reactionHandler increments a page counter for the named user. The column
// name is fixed by the callers below, never caller input.
func reactionHandler(db *gorm.DB, column string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user domain.User
		if err := db.Where("username = ?", c.Param("user")).First(&user).Error; err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		// Single UPDATE so racing reactions never lose increments. Matches
		// zero rows when the user has not saved a page yet, which is fine.
		err := db.Model(&domain.Page{}).
			Where("owner = ?", user.ID).
			Update(column, gorm.Expr(column+" + 1")).Error
		if err != nil {
			c.String(http.StatusInternalServerError, "something broke")
			return
		}
		c.String(http.StatusOK, "ok")
	}
}

// LikeHandler increments the like counter on a user's page
func LikeHandler(db *gorm.DB) gin.HandlerFunc {
	return reactionHandler(db, "likes")
}

// DislikeHandler increments the dislike counter on a user's page
func DislikeHandler(db *gorm.DB) gin.HandlerFunc {
	return reactionHandler(db, "dislikes")
}
