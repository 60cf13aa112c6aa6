package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"derphost/internal/db"
	"derphost/internal/domain"
	"derphost/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRouter builds the full HTTP surface on an isolated in-memory SQLite
// database. The shared-cache DSN keeps every pooled connection on the same
// database; the name is derived from the test so parallel tests stay apart.
func setupRouter(t *testing.T, flip func() bool) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return NewRouter(gdb, nil, flip), gdb
}

func postForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r http.Handler, username, password string) {
	t.Helper()
	w := postForm(r, "/register", url.Values{"username": {username}, "password": {password}})
	require.Equal(t, http.StatusFound, w.Code)
}

// loginUser logs in over the HTTP surface and returns the session cookie.
func loginUser(t *testing.T, r http.Handler, username, password string) *http.Cookie {
	t.Helper()
	w := postForm(r, "/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(t, http.StatusFound, w.Code)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func userByName(t *testing.T, gdb *gorm.DB, username string) domain.User {
	t.Helper()
	var user domain.User
	require.NoError(t, gdb.Where("username = ?", username).First(&user).Error)
	return user
}
