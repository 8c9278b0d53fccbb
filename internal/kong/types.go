package kong

import (
	"net/http"
	"time"
)

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	RateLimit      float64 // requests per second, 0 disables throttling
	HTTPClient     *http.Client
}

// an API consumer registered with the gateway
type Consumer struct {
	ID        string   `json:"id"`
	Username  string   `json:"username,omitempty"`
	CustomID  string   `json:"custom_id,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt int64    `json:"created_at,omitempty"`
}

type CreateConsumerRequest struct {
	Username string   `json:"username,omitempty"`
	CustomID string   `json:"custom_id,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type ConsumerRef struct {
	ID string `json:"id"`
}

// a key-auth credential
type Key struct {
	ID        string       `json:"id"`
	Key       string       `json:"key"`
	Consumer  *ConsumerRef `json:"consumer,omitempty"`
	Tags      []string     `json:"tags,omitempty"`
	CreatedAt int64        `json:"created_at,omitempty"`
}

type createKeyRequest struct {
	Key string `json:"key,omitempty"`
}

type ConsumerList struct {
	Data   []Consumer `json:"data"`
	Next   *string    `json:"next"`
	Offset string     `json:"offset,omitempty"`
}

type keyList struct {
	Data []Key   `json:"data"`
	Next *string `json:"next"`
}

// the admin API /status payload
type Status struct {
	Database struct {
		Reachable bool `json:"reachable"`
	} `json:"database"`
	Server map[string]any `json:"server,omitempty"`
}

// kong error bodies carry a message and sometimes per-field detail
type errorBody struct {
	Message string         `json:"message"`
	Name    string         `json:"name"`
	Fields  map[string]any `json:"fields"`
}
