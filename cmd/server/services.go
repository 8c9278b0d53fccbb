package main

import (
	"fmt"

	"codeberg.org/sbomhub/server/internal/auth"
	"codeberg.org/sbomhub/server/internal/config"
	"codeberg.org/sbomhub/server/internal/kong"
	"codeberg.org/sbomhub/server/internal/logger"
	"codeberg.org/sbomhub/server/internal/oauth"
	"codeberg.org/sbomhub/server/internal/payments"
	"codeberg.org/sbomhub/server/internal/sessions"
	"codeberg.org/sbomhub/server/sbomhub/consumers"
	"codeberg.org/sbomhub/server/sbomhub/keys"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config) (*Services, error) {
	tokens, err := auth.NewCodec(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}

	provider, err := oauth.NewGoogleProvider(oauth.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth provider: %w", err)
	}

	gateway := kong.New(kong.Config{
		BaseURL:        cfg.Kong.AdminURL,
		Timeout:        cfg.Kong.Timeout,
		MaxAttempts:    cfg.Kong.MaxAttempts,
		InitialBackoff: cfg.Kong.Backoff,
		RateLimit:      cfg.Kong.RateLimit,
	})

	states, closeStates, err := newStateStore(cfg)
	if err != nil {
		return nil, err
	}

	secure := cfg.IsProduction()

	return &Services{
		Tokens:      tokens,
		Cookie:      auth.NewCookieOptions(cfg.JWTTTL, secure),
		Gateway:     gateway,
		Provisioner: consumers.NewProvisioner(gateway, cfg.Kong.ConsumerTags),
		Keys:        keys.NewService(gateway),
		Provider:    provider,
		States:      states,
		Keeper:      sessions.NewServerKeeper([]byte(cfg.SessionSecret), cfg.OAuthStateTTL, secure, states),
		Webhooks:    payments.NewVerifier(cfg.Stripe.WebhookSecret, cfg.Stripe.WebhookTolerance),
		Dispatcher:  payments.LogDispatcher{},
		closeStates: closeStates,
	}, nil
}

// picks redis when REDIS_URL is set so several instances share login state;
// the in-memory store only works for a single instance
func newStateStore(cfg *config.Config) (sessions.StateStore, func() error, error) {
	if cfg.RedisURL != "" {
		store, err := sessions.NewRedisStoreFromURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect oauth state store: %w", err)
		}

		logger.Info("oauth state store initialized", "backend", "redis")
		return store, store.Close, nil
	}

	store := sessions.NewMemoryStore()
	logger.Info("oauth state store initialized", "backend", "memory")

	return store, func() error {
		store.Close()
		return nil
	}, nil
}

func (s *Services) Close() error {
	if s.closeStates == nil {
		return nil
	}

	return s.closeStates()
}
