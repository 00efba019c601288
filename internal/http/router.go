package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/saafhawa/petition/internal/admin"
	"github.com/saafhawa/petition/internal/config"
	httpmiddleware "github.com/saafhawa/petition/internal/http/middleware"
	"github.com/saafhawa/petition/internal/petition"
	"github.com/saafhawa/petition/internal/service"
)

// NewRouter wires middleware and mounts the public and admin APIs.
func NewRouter(
	cfg *config.Config,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	authService *service.AdminAuthService,
	petitionService *petition.Service,
	renderer petition.Renderer,
) http.Handler {
	publicLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	signLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitSign.RequestsPerSecond, cfg.RateLimitSign.Burst)
	adminLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitAdmin.RequestsPerSecond, cfg.RateLimitAdmin.Burst)

	petitionHandler := petition.NewHandler(petitionService, renderer)
	adminHandler := admin.NewHandler(authService, petitionService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Get("/health", handleHealth)
	r.Get("/ready", handleReady(pool, redisClient))

	r.Route("/api", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			public.Use(httpmiddleware.IPRateLimit(publicLimiter))

			petitionHandler.RegisterRoutes(public, httpmiddleware.IPRateLimit(signLimiter))
			adminHandler.RegisterPublicRoutes(public)
		})

		api.Group(func(private chi.Router) {
			private.Use(httpmiddleware.Auth(authService))
			private.Use(httpmiddleware.UserRateLimit(adminLimiter))

			adminHandler.RegisterProtectedRoutes(private)
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(pool *pgxpool.Pool, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			WriteError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "database not ready", nil)
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			WriteError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "redis not ready", nil)
			return
		}

		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
