package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// the identity a session token is issued for
type Identity struct {
	UserID  string
	Email   string
	Name    string
	Picture string
}

// JWT claims carried in the auth_token cookie and bearer header
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{
		UserID:  c.UserID,
		Email:   c.Email,
		Name:    c.Name,
		Picture: c.Picture,
	}
}

// checks a token and returns its claims
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// signs tokens for an identity
type Issuer interface {
	Issue(identity Identity) (string, error)
}

// settings for the auth_token cookie
type CookieOptions struct {
	MaxAge int
	Secure bool
}
