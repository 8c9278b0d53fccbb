package keys

import (
	"context"

	"codeberg.org/sbomhub/server/internal/kong"
)

// the admin API calls key management needs
type Gateway interface {
	GetConsumer(ctx context.Context, usernameOrID string) (*kong.Consumer, error)
	ListKeys(ctx context.Context, consumer string) ([]kong.Key, error)
	CreateKey(ctx context.Context, consumer, key string) (*kong.Key, error)
	DeleteKey(ctx context.Context, consumer, keyID string) error
}

// manages the API keys of a signed-in user's consumer
type Service struct {
	gateway Gateway
}

type APIKey struct {
	ID         string `json:"id"`
	Key        string `json:"key"`
	CreatedAt  int64  `json:"created_at,omitempty"`
	ConsumerID string `json:"consumer_id,omitempty"`
}

type Consumer struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	CustomID  string   `json:"custom_id,omitempty"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"created_at,omitempty"`
}

// a consumer together with its keys
type Info struct {
	Consumer Consumer `json:"consumer"`
	Keys     []APIKey `json:"api_keys"`
	KeyCount int      `json:"key_count"`
}
