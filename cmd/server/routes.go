package main

import (
	"net/http"
	"strings"

	"codeberg.org/sbomhub/server/api/rest/auth"
	"codeberg.org/sbomhub/server/api/rest/health"
	"codeberg.org/sbomhub/server/api/rest/keys"
	"codeberg.org/sbomhub/server/api/rest/pages"
	"codeberg.org/sbomhub/server/api/rest/profile"
	"codeberg.org/sbomhub/server/api/rest/webhooks"
	"codeberg.org/sbomhub/server/internal/errors"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	svc := server.services

	authDeps := &auth.Dependencies{
		Provider:         svc.Provider,
		States:           svc.Keeper,
		Provisioner:      svc.Provisioner,
		Tokens:           svc.Tokens,
		Verifier:         svc.Tokens,
		Cookie:           svc.Cookie,
		ProvisionTimeout: server.config.ProvisionTimeout,
	}

	health.RegisterRoutes(router, svc.Gateway)
	pages.RegisterRoutes(router, svc.Tokens, auth.LoginPath)
	auth.RegisterRoutes(router, authDeps)
	webhooks.RegisterRoutes(router, &webhooks.Dependencies{
		Verifier:   svc.Webhooks,
		Dispatcher: svc.Dispatcher,
	})

	api := router.Group(apiPrefix)
	api.Use(CORSMiddleware(server.config.CORSAllowedOrigins))

	{
		auth.RegisterAPIRoutes(api, authDeps)
		profile.RegisterRoutes(api, svc.Tokens)
		keys.RegisterRoutes(api, svc.Keys, svc.Tokens)
	}

	router.NoRoute(NotFoundHandler)
}

func isAPIRequest(c *gin.Context) bool {
	path := c.Request.URL.Path
	return path == apiPrefix || strings.HasPrefix(path, apiPrefix+"/")
}

// answers unknown routes with JSON under /api and the error page elsewhere
func NotFoundHandler(c *gin.Context) {
	if isAPIRequest(c) {
		errors.NotFound(c, "endpoint")
		return
	}

	errors.Page(c, http.StatusNotFound, "Page not found", "The page you requested does not exist.")
}
