package oauth

import (
	"context"
	"time"
)

// an authorization-code identity provider
type Provider interface {
	Name() string
	AuthCodeURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (*Grant, error)
	UserInfo(ctx context.Context, grant *Grant) (*Profile, error)
}

// tokens returned by the provider's token endpoint
type Grant struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	ExpiresAt    time.Time
}

// the signed-in user as reported by the provider
type Profile struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}
