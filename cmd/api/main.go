package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saafhawa/petition/internal/auth"
	"github.com/saafhawa/petition/internal/config"
	"github.com/saafhawa/petition/internal/db"
	internalhttp "github.com/saafhawa/petition/internal/http"
	"github.com/saafhawa/petition/internal/petition"
	"github.com/saafhawa/petition/internal/render"
	"github.com/saafhawa/petition/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api exited with error")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis parse: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	repository := petition.NewRepository(pool)
	petitionService := petition.NewService(repository, cfg.CampaignVariant, cfg.QueryTimeout)

	jwtManager := auth.NewJWTManager(cfg.TokenSecret, cfg.TokenTTL)
	sessions := auth.NewRedisSessionStore(redisClient)
	authService := service.NewAdminAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, jwtManager, sessions)

	renderer, err := render.New(cfg.CertTemplate)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	handler := internalhttp.NewRouter(cfg, pool, redisClient, authService, petitionService, renderer)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("API listening on :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
