package auth

import (
	"net/http"
	"strings"

	"codeberg.org/sbomhub/server/internal/errors"
	"codeberg.org/sbomhub/server/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	contextKeyClaims = "auth_claims"
	contextKeyToken  = "auth_token"

	bearerMessage = "Please provide a valid Bearer token"
)

// requires a valid auth_token cookie, redirecting the browser to
// loginPath otherwise
func CookieMiddleware(verifier Verifier, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			logger.Debug("cookie guard rejected request",
				"path", c.Request.URL.Path,
				"reason", "missing",
			)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			logger.Debug("cookie guard rejected request",
				"path", c.Request.URL.Path,
				"reason", Reason(err),
			)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		setIdentity(c, claims, token)
		c.Next()
	}
}

// validates the cookie if present but doesn't require it
func OptionalCookieMiddleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err == nil && token != "" {
			if claims, err := verifier.Verify(token); err == nil {
				setIdentity(c, claims, token)
			}
		}

		c.Next()
	}
}

// requires a valid "Authorization: Bearer <token>" header, answering 401
// JSON otherwise
func BearerMiddleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("bearer guard rejected request",
				"path", c.Request.URL.Path,
				"reason", "missing",
			)
			errors.Unauthorized(c, bearerMessage)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			logger.Debug("bearer guard rejected request",
				"path", c.Request.URL.Path,
				"reason", Reason(err),
			)
			errors.Unauthorized(c, bearerMessage)
			c.Abort()
			return
		}

		setIdentity(c, claims, token)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

func setIdentity(c *gin.Context, claims *Claims, token string) {
	c.Set(contextKeyClaims, claims)
	c.Set(contextKeyToken, token)
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
}

// extracts the verified claims placed by one of the guards
func GetClaims(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get(contextKeyClaims)
	if !exists {
		return nil, false
	}

	claims, ok := v.(*Claims)
	return claims, ok
}

// extracts user_id from context after a guard ran
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok
}

// returns the raw token the request was authenticated with
func GetToken(c *gin.Context) string {
	return c.GetString(contextKeyToken)
}
