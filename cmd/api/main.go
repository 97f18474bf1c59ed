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

	"github.com/tallybook/tallybook/internal/books"
	infraredis "github.com/tallybook/tallybook/internal/infra/redis"
	"github.com/tallybook/tallybook/internal/platform/user"
	"github.com/tallybook/tallybook/internal/transport/httpapi"
	"github.com/tallybook/tallybook/internal/transport/httpapi/handler"
	"github.com/tallybook/tallybook/internal/transport/httpapi/middleware"
	"github.com/tallybook/tallybook/pkg/config"
	"github.com/tallybook/tallybook/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewDefault(cfg.Env)
	log.Info("Starting tallybook API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Optional Redis-backed report cache
	var reportCache handler.ReportCacheInterface
	if cfg.RedisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		reportCache = infraredis.NewReportCache(redisClient, log)
		log.Info("Redis report cache enabled")
	} else {
		log.Info("REDIS_URL not configured, report cache disabled")
	}

	// Services
	userSvc := user.NewService(user.NewMemoryRepository())
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)
	booksSvc := books.NewService()

	// HTTP handlers
	authHandler := handler.NewAuthHandler(userSvc, jwtSvc)
	journalHandler := handler.NewJournalHandler(booksSvc)
	transactionHandler := handler.NewTransactionHandler(booksSvc)
	balanceHandler := handler.NewBalanceHandler(booksSvc)
	reportHandler := handler.NewReportHandler(booksSvc, reportCache)

	routerCfg := httpapi.Config{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthHandler:        authHandler,
		JournalHandler:     journalHandler,
		TransactionHandler: transactionHandler,
		BalanceHandler:     balanceHandler,
		ReportHandler:      reportHandler,
		JWTMiddleware:      middleware.JWT(jwtSvc),
	}
	r := httpapi.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
