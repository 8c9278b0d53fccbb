package sessions

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	gsessions "github.com/gorilla/sessions"
)

const (
	oauthSessionName = "sbomhub_oauth"
	browserIDKey     = "browser_id"
)

func newCookieStore(secret []byte, ttl time.Duration, secure bool) *gsessions.CookieStore {
	store := gsessions.NewCookieStore(secret)

	// short-lived cookie, long enough for the OAuth round trip
	store.Options = &gsessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	// applies to both the cookie and the signed timestamp check
	store.MaxAge(int(ttl / time.Second))

	return store
}

// keeps only a random browser id in a signed cookie and the state itself
// in a StateStore, so a replayed cookie finds nothing once the state is taken
type ServerKeeper struct {
	cookies *gsessions.CookieStore
	states  StateStore
	ttl     time.Duration
}

func NewServerKeeper(secret []byte, ttl time.Duration, secure bool, states StateStore) *ServerKeeper {
	return &ServerKeeper{
		cookies: newCookieStore(secret, ttl, secure),
		states:  states,
		ttl:     ttl,
	}
}

func (k *ServerKeeper) Save(w http.ResponseWriter, r *http.Request, state string) error {
	session, err := k.cookies.Get(r, oauthSessionName)
	if session == nil {
		return fmt.Errorf("failed to open oauth session: %w", err)
	}

	browserID, _ := session.Values[browserIDKey].(string)
	if browserID == "" {
		browserID = uuid.NewString()
		session.Values[browserIDKey] = browserID
	}

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save oauth session: %w", err)
	}

	return k.states.Put(r.Context(), browserID, state, k.ttl)
}

func (k *ServerKeeper) Take(_ http.ResponseWriter, r *http.Request) (string, error) {
	session, _ := k.cookies.Get(r, oauthSessionName) //nolint:errcheck // undecodable cookie means no state
	if session == nil {
		return "", ErrStateNotFound
	}

	browserID, _ := session.Values[browserIDKey].(string)
	if browserID == "" {
		return "", ErrStateNotFound
	}

	return k.states.Take(r.Context(), browserID)
}
