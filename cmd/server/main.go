package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/sbomhub/server/internal/config"
	"codeberg.org/sbomhub/server/internal/logger"
)

// @title sbomhub API
// @version 1.0
// @description Google sign-in, bearer tokens for API access and gateway key management
// @description
// @description Features:
// @description - Google OAuth sign-in with a signed session cookie
// @description - Bearer tokens for programmatic access
// @description - Per-user gateway consumers and API keys
// @description - Payment webhook intake

// @contact.name API Support
// @contact.url https://codeberg.org/sbomhub/server

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authenticated requests. Format: Bearer {token}

func main() {
	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	logger.SetDefault(logger.New(cfg.Environment, os.Getenv("LOG_LEVEL")))
	logger.Info("starting sbomhub server", "environment", cfg.Environment)

	// create server with all dependencies
	srv, err := NewServer(cfg)
	if err != nil {
		logger.FatalErr(err, "failed to create server")
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FatalErr(err, "server failed to start")
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.ErrorErr(err, "server forced to shutdown")
	}

	// close the oauth state store
	if err := srv.services.Close(); err != nil {
		logger.ErrorErr(err, "failed to close oauth state store")
	}

	logger.Info("server stopped")
}
