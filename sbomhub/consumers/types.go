package consumers

import (
	"context"

	"codeberg.org/sbomhub/server/internal/kong"
)

// the slice of the admin API provisioning needs
type Gateway interface {
	GetConsumer(ctx context.Context, usernameOrID string) (*kong.Consumer, error)
	CreateConsumer(ctx context.Context, req kong.CreateConsumerRequest) (*kong.Consumer, error)
	CreateKey(ctx context.Context, consumer, key string) (*kong.Key, error)
}

// ensures a gateway consumer exists for each signed-in user
type Provisioner struct {
	gateway Gateway
	tags    []string
}

type Outcome string

const (
	OutcomeExisting Outcome = "existing"
	OutcomeCreated  Outcome = "created"
	OutcomeFailed   Outcome = "failed"
)

// what a sign-in did to the gateway
type Result struct {
	Username   string
	ConsumerID string
	Outcome    Outcome
	KeyIssued  bool
}
