// Package main is the entry point for the in-memory POS development backend.
// State lives in process memory and is reseeded on every start.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"chuipos/internal/core/security"
	v1 "chuipos/internal/infrastructure/http/v1"
	"chuipos/internal/infrastructure/storage/memory"
	"chuipos/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting chuipos dev backend")

	// --- Store ---
	storeCfg := memory.DefaultConfig()
	storeCfg.WalkInCustomerID = getEnvInt64("POS_WALK_IN_CUSTOMER_ID", storeCfg.WalkInCustomerID)
	storeCfg.MaxLoginAttempts = getEnvInt("MAX_LOGIN_ATTEMPTS", storeCfg.MaxLoginAttempts)
	storeCfg.LockDuration = getEnvDuration("LOGIN_LOCK_DURATION", storeCfg.LockDuration)

	store := memory.New(storeCfg, log)
	if err := memory.Seed(ctx, store); err != nil {
		log.Fatalw("failed to seed store", "error", err)
	}
	log.Infow("store seeded",
		"products", len(store.Products(ctx, memory.ProductFilter{})),
		"customers", len(store.Customers(ctx)),
	)

	// --- JWT Service ---
	jwtConfig := security.DefaultJWTConfig(getEnv("JWT_SECRET", "dev-secret-change-me"))
	jwtConfig.AccessTokenTTL = getEnvDuration("JWT_TTL", jwtConfig.AccessTokenTTL)
	jwtService, err := security.NewJWTService(jwtConfig)
	if err != nil {
		log.Fatalw("invalid jwt configuration", "error", err)
	}

	// --- HTTP Server ---
	handler := v1.NewHandler(v1.RouterConfig{
		Store:        store,
		Logger:       log,
		JWTValidator: jwtService,
		TokenIssuer:  jwtService,
	})

	addr := getEnv("APP_ADDR", "127.0.0.1:9000")
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", addr, "base_path", v1.BasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
