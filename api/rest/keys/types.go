package keys

import (
	"context"

	"codeberg.org/sbomhub/server/sbomhub/keys"
)

type KeyManager interface {
	List(ctx context.Context, email string) ([]keys.APIKey, error)
	Create(ctx context.Context, email, custom string) (*keys.APIKey, error)
	Revoke(ctx context.Context, email, keyID string) error
	Info(ctx context.Context, email string) (*keys.Info, error)
}

// CreateKeyRequest optionally carries a caller-chosen key value
type CreateKeyRequest struct {
	Key string `json:"key" binding:"omitempty,min=8,max=256"`
}

type ListKeysResponse struct {
	Keys  []keys.APIKey `json:"keys"`
	Count int           `json:"count"`
}
