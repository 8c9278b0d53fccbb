package auth

import (
	"context"
	"time"

	"codeberg.org/sbomhub/server/internal/auth"
	"codeberg.org/sbomhub/server/internal/oauth"
	"codeberg.org/sbomhub/server/internal/sessions"
	"codeberg.org/sbomhub/server/sbomhub/consumers"
)

const (
	LoginPath     = "/login"
	CallbackPath  = "/callback"
	DashboardPath = "/dashboard"
	LandingPath   = "/"
)

// runs gateway provisioning for a signed-in email
type Provisioner interface {
	Provision(ctx context.Context, email string) consumers.Result
}

// everything the sign-in flow needs, built once at startup
type Dependencies struct {
	Provider         oauth.Provider
	States           sessions.StateKeeper
	Provisioner      Provisioner
	Tokens           auth.Issuer
	Verifier         auth.Verifier
	Cookie           auth.CookieOptions
	ProvisionTimeout time.Duration
}

// TokenResponse returns the caller's current session token
type TokenResponse struct {
	Token string `json:"token"`
}
