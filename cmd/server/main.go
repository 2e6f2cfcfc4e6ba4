package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/Nikhil2247/digital-frontend/docs"
	"github.com/Nikhil2247/digital-frontend/internal/api"
	"github.com/Nikhil2247/digital-frontend/internal/api/middleware"
	"github.com/Nikhil2247/digital-frontend/internal/core/service"
	mongostore "github.com/Nikhil2247/digital-frontend/internal/infrastructure/db/mongo"
	redisstore "github.com/Nikhil2247/digital-frontend/internal/infrastructure/db/redis"
	"github.com/Nikhil2247/digital-frontend/internal/infrastructure/remote"
	"github.com/Nikhil2247/digital-frontend/internal/pkg/config"
	"github.com/Nikhil2247/digital-frontend/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envErr := godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "table-ordering-gateway",
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found; relying on existing environment")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("gateway stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "table-ordering-gateway",
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	carts := mongostore.NewCartRepository(db, cfg.Cart.TTL)
	if err := carts.EnsureIndexes(ctx); err != nil {
		return err
	}
	sessions := redisstore.NewSessionStore(rdb, cfg.Session.TTL)

	client, err := remote.NewClient(remote.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, logger.Component("remote"))
	if err != nil {
		return err
	}

	gateLog := logger.Component("session")
	newGate := func(sessionID string) *service.SessionGate {
		return service.NewSessionGate(client, sessions.For(sessionID), gateLog.With().Str("session_id", sessionID).Logger())
	}

	e := api.NewRouter(api.Deps{
		Session: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.SecureCookie,
		},
		NewGate:   newGate,
		Carts:     service.NewCartService(carts, client, client, logger.Component("cart")),
		Orders:    service.NewOrderService(client, logger.Component("orders")),
		LoginRate: cfg.Session.LoginRate,
		Mongo:     db,
		Redis:     rdb,
		Log:       logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("api", cfg.API.BaseURL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
