package sessions

import (
	"context"
	"net/http"
	"time"
)

// server-side storage for pending OAuth states, keyed by browser session
type StateStore interface {
	Put(ctx context.Context, sessionID, state string, ttl time.Duration) error
	// returns and deletes the state; ErrStateNotFound when absent or expired
	Take(ctx context.Context, sessionID string) (string, error)
}

// binds a pending OAuth state to the browser that started the login
type StateKeeper interface {
	Save(w http.ResponseWriter, r *http.Request, state string) error
	// returns the saved state and forgets it, whatever the caller does next
	Take(w http.ResponseWriter, r *http.Request) (string, error)
}

type pendingState struct {
	value     string
	expiresAt time.Time
}
