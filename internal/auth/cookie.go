package auth

import (
	"net/http"
	"time"
)

const CookieName = "auth_token"

func NewCookieOptions(ttl time.Duration, secure bool) CookieOptions {
	return CookieOptions{
		MaxAge: int(ttl / time.Second),
		Secure: secure,
	}
}

// writes the session token cookie
func SetCookie(w http.ResponseWriter, token string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// expires the session token cookie
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
