package main

import (
	"fmt"

	"codeberg.org/sbomhub/server/internal/config"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	router := gin.New()
	router.Use(RequestLogger(), RecoveryMiddleware())

	server := &Server{
		config:   cfg,
		services: services,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
