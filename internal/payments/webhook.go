package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82/webhook"
)

var (
	ErrNotConfigured       = errors.New("webhook secret not configured")
	ErrMissingSignature    = webhook.ErrNotSigned
	ErrInvalidHeader       = webhook.ErrInvalidHeader
	ErrNoValidSignature    = webhook.ErrNoValidSignature
	ErrTimestampOutOfRange = webhook.ErrTooOld
	ErrInvalidPayload      = errors.New("payload is not valid json")
)

// tolerance <= 0 falls back to the library default of five minutes
func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	if tolerance < 0 {
		tolerance = 0
	}

	return &Verifier{
		secret:    secret,
		tolerance: tolerance,
	}
}

func (v *Verifier) Configured() bool {
	return v.secret != ""
}

// verifies header against payload and decodes the event. events are
// accepted whatever api version the account is pinned to
func (v *Verifier) ConstructEvent(payload []byte, header string) (*Event, error) {
	if !v.Configured() {
		return nil, ErrNotConfigured
	}

	if header == "" {
		return nil, ErrMissingSignature
	}

	event, err := webhook.ConstructEventWithOptions(payload, header, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if isSignatureError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	out := &Event{
		ID:      event.ID,
		Type:    string(event.Type),
		Created: event.Created,
	}

	if event.Data != nil {
		out.Data.Object = json.RawMessage(event.Data.Raw)
	}

	return out, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}
