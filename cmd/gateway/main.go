// Package main starts the portal gateway: the HTTP edge fronting the news
// backend with session resolution, role-gated routing and interaction
// endpoints.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/newsdesk/portal-gateway/internal/api"
	"github.com/newsdesk/portal-gateway/internal/client"
	"github.com/newsdesk/portal-gateway/internal/client/transport"
	"github.com/newsdesk/portal-gateway/internal/infrastructure/db/redis"
	"github.com/newsdesk/portal-gateway/internal/pkg/config"
	"github.com/newsdesk/portal-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Development(),
	})

	tr, err := transport.New(transport.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid backend configuration")
	}
	backend := client.New(tr)

	var (
		rdb          *goredis.Client
		sessionCache *redis.SessionCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(context.Background(), redis.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("cannot connect to redis")
		}
		sessionCache = redis.NewSessionCache(rdb, cfg.Redis.SessionTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session cache enabled")
	} else {
		log.Info().Msg("REDIS_ADDR not set, session cache disabled")
	}

	e := api.NewRouter(api.Deps{
		Backend:      backend,
		Redis:        rdb,
		SessionCache: sessionCache,
		JWTSecret:    cfg.JWTSecret,
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.API.BaseURL).Msg("starting gateway")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
