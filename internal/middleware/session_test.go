package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"derphost/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.User{}, &domain.Session{}))
	return gdb
}

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := setupDB(t)

	user := domain.User{Username: "alice", Passhash: "x", Coins: 100, Level: 1}
	require.NoError(t, gdb.Create(&user).Error)
	require.NoError(t, gdb.Create(&domain.Session{Token: "goodtoken", UserID: user.ID}).Error)

	r := gin.New()
	r.Use(CurrentUser(gdb))
	r.GET("/whoami", func(c *gin.Context) {
		if u := UserFrom(c); u != nil {
			c.String(http.StatusOK, u.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	serve := func(cookie string) string {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	t.Run("no cookie resolves to anonymous", func(t *testing.T) {
		assert.Equal(t, "anonymous", serve(""))
	})

	t.Run("unknown token resolves to anonymous", func(t *testing.T) {
		assert.Equal(t, "anonymous", serve("bogus"))
	})

	t.Run("valid token resolves to the owning user", func(t *testing.T) {
		assert.Equal(t, "alice", serve("goodtoken"))
	})

	t.Run("session for a deleted user resolves to anonymous", func(t *testing.T) {
		require.NoError(t, gdb.Create(&domain.Session{Token: "orphan", UserID: 999}).Error)
		assert.Equal(t, "anonymous", serve("orphan"))
	})
}

func TestRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := setupDB(t)

	user := domain.User{Username: "alice", Passhash: "x", Coins: 100, Level: 1}
	require.NoError(t, gdb.Create(&user).Error)
	require.NoError(t, gdb.Create(&domain.Session{Token: "goodtoken", UserID: user.ID}).Error)

	r := gin.New()
	r.Use(CurrentUser(gdb))
	r.POST("/secret", RequireUser(), func(c *gin.Context) {
		c.String(http.StatusOK, "in")
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/secret", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/secret", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "goodtoken"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
