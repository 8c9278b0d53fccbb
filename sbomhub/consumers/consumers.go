package consumers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/sbomhub/server/internal/kong"
	"codeberg.org/sbomhub/server/internal/logger"
)

var (
	ErrEmptyUsername = errors.New("email does not yield a consumer username")

	// the username is taken by a consumer registered for another email
	ErrConsumerOwnedByOther = errors.New("consumer username belongs to another account")
)

func NewProvisioner(gateway Gateway, tags []string) *Provisioner {
	return &Provisioner{
		gateway: gateway,
		tags:    tags,
	}
}

// looks the consumer up by its sanitized username and creates it when
// missing. A lookup failure other than 404 is logged and treated as
// missing. A 409 on create means another sign-in won the race and the
// consumer is looked up again. A consumer whose custom_id is not this
// email is never returned.
func (p *Provisioner) EnsureConsumer(ctx context.Context, email string) (string, bool, error) {
	username := Username(email)
	if username == "" {
		return "", false, ErrEmptyUsername
	}

	existing, err := p.gateway.GetConsumer(ctx, username)
	switch {
	case err == nil:
		if !Owns(existing, email) {
			return "", false, fmt.Errorf("consumer %q: %w", username, ErrConsumerOwnedByOther)
		}
		return existing.ID, false, nil
	case kong.IsNotFound(err):
		logger.Debug("kong consumer not found, creating", "username", username)
	default:
		logger.ErrorErr(err, "kong consumer lookup failed, attempting creation",
			"username", username,
		)
	}

	created, err := p.gateway.CreateConsumer(ctx, kong.CreateConsumerRequest{
		Username: username,
		CustomID: email,
		Tags:     p.tags,
	})
	if err == nil {
		return created.ID, true, nil
	}

	if !kong.IsConflict(err) {
		return "", false, fmt.Errorf("failed to create consumer %q: %w", username, err)
	}

	existing, lookupErr := p.gateway.GetConsumer(ctx, username)
	if lookupErr != nil {
		return "", false, fmt.Errorf("consumer %q conflicted but lookup failed: %w", username, lookupErr)
	}

	if !Owns(existing, email) {
		return "", false, fmt.Errorf("consumer %q: %w", username, ErrConsumerOwnedByOther)
	}

	return existing.ID, false, nil
}

// reports whether the consumer was registered for email
func Owns(consumer *kong.Consumer, email string) bool {
	if consumer == nil || consumer.CustomID == "" {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(consumer.CustomID), strings.TrimSpace(email))
}

// mints a gateway-generated key for a newly created consumer
func (p *Provisioner) EnsureCredential(ctx context.Context, consumerID string) error {
	if _, err := p.gateway.CreateKey(ctx, consumerID, ""); err != nil {
		return fmt.Errorf("failed to create key for consumer %s: %w", consumerID, err)
	}

	return nil
}

// runs provisioning for a sign-in. It never fails: gateway problems are
// logged and reported in the result so sign-in can continue.
func (p *Provisioner) Provision(ctx context.Context, email string) Result {
	result := Result{Username: Username(email)}

	consumerID, created, err := p.EnsureConsumer(ctx, email)
	if err != nil {
		logger.ErrorErr(err, "kong consumer provisioning failed",
			"username", result.Username,
		)
		result.Outcome = OutcomeFailed
		return result
	}

	result.ConsumerID = consumerID
	result.Outcome = OutcomeExisting

	if !created {
		logger.Info("kong consumer already exists",
			"username", result.Username,
			"consumer_id", consumerID,
		)
		return result
	}

	result.Outcome = OutcomeCreated

	if err := p.EnsureCredential(ctx, consumerID); err != nil {
		logger.Warn("kong consumer created without key",
			"username", result.Username,
			"consumer_id", consumerID,
			"error", err,
		)
		return result
	}

	result.KeyIssued = true

	logger.Info("kong consumer created",
		"username", result.Username,
		"consumer_id", consumerID,
	)

	return result
}
