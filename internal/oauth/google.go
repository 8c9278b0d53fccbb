package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/markbates/goth/providers/google"
)

var (
	ErrExchangeFailed = errors.New("authorization code exchange failed")
	ErrUserInfoFailed = errors.New("userinfo request failed")
)

var defaultScopes = []string{"openid", "email", "profile"}

// shared HTTP client for identity provider calls
var providerHTTPClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// Google sign-in through goth's google provider
type GoogleProvider struct {
	provider *google.Provider
}

func NewGoogleProvider(cfg GoogleConfig) (*GoogleProvider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	if cfg.RedirectURL == "" {
		return nil, fmt.Errorf("google redirect URL must be set")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}

	provider := google.New(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL, scopes...)
	provider.HTTPClient = providerHTTPClient

	return &GoogleProvider{provider: provider}, nil
}

// replaces the HTTP client used for token and userinfo calls
func (g *GoogleProvider) WithHTTPClient(client *http.Client) *GoogleProvider {
	g.provider.HTTPClient = client
	return g
}

func (g *GoogleProvider) Name() string {
	return g.provider.Name()
}

func (g *GoogleProvider) AuthCodeURL(state string) (string, error) {
	session, err := g.provider.BeginAuth(state)
	if err != nil {
		return "", fmt.Errorf("failed to begin auth: %w", err)
	}

	authURL, err := session.GetAuthURL()
	if err != nil {
		return "", fmt.Errorf("failed to build auth URL: %w", err)
	}

	return authURL, nil
}

// exchanges the authorization code at the token endpoint
func (g *GoogleProvider) Exchange(_ context.Context, code string) (*Grant, error) {
	session := &google.Session{}

	if _, err := session.Authorize(g.provider, url.Values{"code": {code}}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	if session.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token returned", ErrExchangeFailed)
	}

	return &Grant{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		IDToken:      session.IDToken,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// fetches the profile of the user behind the grant
func (g *GoogleProvider) UserInfo(_ context.Context, grant *Grant) (*Profile, error) {
	user, err := g.provider.FetchUser(&google.Session{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		IDToken:      grant.IDToken,
		ExpiresAt:    grant.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoFailed, err)
	}

	if user.Email == "" {
		return nil, fmt.Errorf("%w: profile has no email", ErrUserInfoFailed)
	}

	return &Profile{
		ID:      user.UserID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.AvatarURL,
	}, nil
}
