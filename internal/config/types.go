package config

import "time"

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL        time.Duration `env:"JWT_TTL" envDefault:"24h"`

	Google GoogleConfig
	Kong   KongConfig
	Stripe StripeConfig

	ProvisionTimeout   time.Duration `env:"PROVISION_TIMEOUT" envDefault:"20s"`
	OAuthStateTTL      time.Duration `env:"OAUTH_STATE_TTL" envDefault:"5m"`
	RedisURL           string        `env:"REDIS_URL"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID,required,notEmpty"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET,required,notEmpty"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
}

type KongConfig struct {
	AdminURL     string        `env:"KONG_ADMIN_URL" envDefault:"http://localhost:8001"`
	Timeout      time.Duration `env:"KONG_TIMEOUT" envDefault:"30s"`
	MaxAttempts  int           `env:"KONG_MAX_ATTEMPTS" envDefault:"3"`
	Backoff      time.Duration `env:"KONG_BACKOFF" envDefault:"1s"`
	RateLimit    float64       `env:"KONG_RATE_LIMIT" envDefault:"20"`
	ConsumerTags []string      `env:"KONG_CONSUMER_TAGS" envSeparator:"," envDefault:"free"`
}

type StripeConfig struct {
	WebhookSecret    string        `env:"STRIPE_WEBHOOK_SECRET"`
	WebhookTolerance time.Duration `env:"STRIPE_WEBHOOK_TOLERANCE" envDefault:"5m"`
}
