package api

import (
	"net/http"
	"time"

	"tdsc_backend/internal/api/handler"
	"tdsc_backend/internal/api/middleware"
	"tdsc_backend/internal/app/service"
	"tdsc_backend/internal/common"
	"tdsc_backend/internal/common/security"
	"tdsc_backend/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	issuer *security.TokenIssuer,
	authService *service.AuthService,
	voteService *service.VoteService,
	commentService *service.CommentService,
) http.Handler {
	r := chi.NewRouter()

	// Base middlewares. RequestID runs first so every log line and every
	// response carries the correlation id.
	r.Use(middleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Token verification feeds the single optional-identity check; routes
	// that must have a caller add RequireUser in their own groups.
	r.Use(jwtauth.Verifier(issuer.Auth()))
	r.Use(middleware.Identify)

	// Liveness
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":   "healthy",
			"service":  "TDSC Blog Backend",
			"version":  "1.0.0",
			"database": "PostgreSQL",
		})
	})
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authHandler := handler.NewAuthHandler(authService)
	r.Route("/auth", authHandler.RegisterRoutes)

	engagementHandler := handler.NewEngagementHandler(voteService, commentService)
	r.Route("/posts", engagementHandler.RegisterRoutes)

	return r
}
