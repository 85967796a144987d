package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tdsc_backend/internal/api"
	"tdsc_backend/internal/api/middleware"
	"tdsc_backend/internal/app/service"
	"tdsc_backend/internal/common/security"
	"tdsc_backend/internal/platform/config"

	"github.com/stretchr/testify/assert"
)

// testRouter wires the router with services whose repositories are never
// reached by the routes under test.
func testRouter() http.Handler {
	cfg := &config.Config{CORSOrigins: []string{"*"}}
	issuer := security.NewTokenIssuer("HS256", []byte("test-secret"), time.Hour)
	return api.NewRouter(
		cfg,
		issuer,
		service.NewAuthService(nil, issuer),
		service.NewVoteService(nil),
		service.NewCommentService(nil, nil),
	)
}

func TestRouter_Liveness(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "status", path)
	}
}

func TestRouter_EveryResponseCarriesRequestID(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-42")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_ProtectedRoutesChallengeAnonymous(t *testing.T) {
	router := testRouter()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/posts/p1/votes"},
		{http.MethodPost, "/posts/p1/comments"},
		{http.MethodDelete, "/posts/p1/comments/c1"},
	}
	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"), route.path)
	}
}
