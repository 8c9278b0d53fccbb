package payments

import (
	"context"
	"encoding/json"
	"time"
)

const SignatureHeader = "Stripe-Signature"

// a verified webhook event
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Created int64     `json:"created"`
	Data    EventData `json:"data"`
}

type EventData struct {
	Object json.RawMessage `json:"object"`
}

// consumes verified events; a returned error makes the webhook answer 500
// so the sender retries delivery
type Dispatcher interface {
	Dispatch(ctx context.Context, event *Event) error
}

// checks webhook signatures against the endpoint secret
type Verifier struct {
	secret    string
	tolerance time.Duration
}
