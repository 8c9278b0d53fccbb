package keys

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/sbomhub/server/internal/kong"
	"codeberg.org/sbomhub/server/internal/logger"
	"codeberg.org/sbomhub/server/sbomhub/consumers"
)

// the caller's username resolves to a consumer registered for another email
var ErrNotOwner = errors.New("consumer is registered to another account")

func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// returns the keys owned by the email's consumer
func (s *Service) List(ctx context.Context, email string) ([]APIKey, error) {
	consumer, err := s.resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.listKeys(ctx, consumer)
}

// mints a key; custom may be empty to let the gateway generate one
func (s *Service) Create(ctx context.Context, email, custom string) (*APIKey, error) {
	consumer, err := s.resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	created, err := s.gateway.CreateKey(ctx, consumer.ID, custom)
	if err != nil {
		return nil, fmt.Errorf("failed to create key for %s: %w", consumer.Username, err)
	}

	key := toAPIKey(*created)
	return &key, nil
}

func (s *Service) Revoke(ctx context.Context, email, keyID string) error {
	consumer, err := s.resolve(ctx, email)
	if err != nil {
		return err
	}

	if err := s.gateway.DeleteKey(ctx, consumer.ID, keyID); err != nil {
		return fmt.Errorf("failed to revoke key %s for %s: %w", keyID, consumer.Username, err)
	}

	logger.Info("api key revoked",
		"consumer", consumer.Username,
		"consumer_id", consumer.ID,
		"key_id", keyID,
	)

	return nil
}

// returns the consumer record and its keys; a failed key listing yields
// an empty key set rather than an error
func (s *Service) Info(ctx context.Context, email string) (*Info, error) {
	consumer, err := s.resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	keys, err := s.listKeys(ctx, consumer)
	if err != nil {
		logger.ErrorErr(err, "failed to list keys for consumer info",
			"consumer", consumer.Username,
		)
		keys = []APIKey{}
	}

	tags := consumer.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Info{
		Consumer: Consumer{
			ID:        consumer.ID,
			Username:  consumer.Username,
			CustomID:  consumer.CustomID,
			Tags:      tags,
			CreatedAt: consumer.CreatedAt,
		},
		Keys:     keys,
		KeyCount: len(keys),
	}, nil
}

// finds the caller's consumer and checks it was registered for this email;
// usernames drop the email domain so two accounts can share one
func (s *Service) resolve(ctx context.Context, email string) (*kong.Consumer, error) {
	username := consumers.Username(email)
	if username == "" {
		return nil, consumers.ErrEmptyUsername
	}

	consumer, err := s.gateway.GetConsumer(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get consumer %s: %w", username, err)
	}

	if !consumers.Owns(consumer, email) {
		logger.Warn("consumer ownership mismatch",
			"consumer", username,
			"consumer_id", consumer.ID,
		)
		return nil, fmt.Errorf("consumer %s: %w", username, ErrNotOwner)
	}

	return consumer, nil
}

func (s *Service) listKeys(ctx context.Context, consumer *kong.Consumer) ([]APIKey, error) {
	list, err := s.gateway.ListKeys(ctx, consumer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys for %s: %w", consumer.Username, err)
	}

	out := make([]APIKey, 0, len(list))
	for _, k := range list {
		out = append(out, toAPIKey(k))
	}

	return out, nil
}

func toAPIKey(k kong.Key) APIKey {
	key := APIKey{
		ID:        k.ID,
		Key:       k.Key,
		CreatedAt: k.CreatedAt,
	}

	if k.Consumer != nil {
		key.ConsumerID = k.Consumer.ID
	}

	return key
}
