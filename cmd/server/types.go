package main

import (
	"codeberg.org/sbomhub/server/internal/auth"
	"codeberg.org/sbomhub/server/internal/config"
	"codeberg.org/sbomhub/server/internal/kong"
	"codeberg.org/sbomhub/server/internal/oauth"
	"codeberg.org/sbomhub/server/internal/payments"
	"codeberg.org/sbomhub/server/internal/sessions"
	"codeberg.org/sbomhub/server/sbomhub/consumers"
	"codeberg.org/sbomhub/server/sbomhub/keys"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// holds the clients and stores the handlers are built from
type Services struct {
	Tokens      *auth.Codec
	Cookie      auth.CookieOptions
	Gateway     *kong.Client
	Provisioner *consumers.Provisioner
	Keys        *keys.Service
	Provider    *oauth.GoogleProvider
	States      sessions.StateStore
	Keeper      *sessions.ServerKeeper
	Webhooks    *payments.Verifier
	Dispatcher  payments.Dispatcher

	closeStates func() error
}
