package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"screenspeak/internal/config"
	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/handler"
	"screenspeak/internal/http-api/middleware"
	"screenspeak/internal/http-api/models"
	"screenspeak/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type rejectingAuth struct{}

func (rejectingAuth) Register(context.Context, dto.SignupRequest) (*models.User, error) {
	return nil, service.ErrNameInUse
}

func (rejectingAuth) Login(context.Context, string, string) (string, string, *models.User, error) {
	return "", "", nil, service.ErrInvalidCredentials
}

func (rejectingAuth) RefreshAccessToken(context.Context, string) (string, error) {
	return "", service.ErrInvalidRefreshToken
}

func (rejectingAuth) Logout(context.Context, string) error { return nil }

func (rejectingAuth) ValidateToken(string) (*service.Claims, error) {
	return nil, service.ErrInvalidToken
}

func (rejectingAuth) AccessTokenTTL() time.Duration { return time.Minute }

func newTestEngine(ping Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{GoEnv: "test", CORSOrigins: []string{"http://localhost:3000"}}
	auth := rejectingAuth{}
	h := Handlers{
		Auth:    handler.NewAuthHandler(auth),
		Movie:   handler.NewMovieHandler(nil, nil, nil),
		Review:  handler.NewReviewHandler(nil, nil),
		Browse:  handler.NewBrowseHandler(nil, nil),
		Account: handler.NewAccountHandler(nil, nil, nil),
	}
	return New(cfg, auth, h, middleware.NewUserRateLimiter(5, 10), ping)
}

func TestCheckConn(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine(func() error { return nil }).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check-conn", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	newTestEngine(func() error { return errors.New("down") }).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check-conn", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine(nil)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/search"},
		{http.MethodGet, "/api/movies/1"},
		{http.MethodPost, "/api/movies/1/favorite"},
		{http.MethodPost, "/api/reviews/1/vote/good"},
		{http.MethodPost, "/api/me/delete"},
	}
	for _, rt := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestEngine(nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
