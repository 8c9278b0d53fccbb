package auth

import (
	"context"
	"crypto/subtle"
	stderrors "errors"
	"net/http"

	"codeberg.org/sbomhub/server/internal/auth"
	"codeberg.org/sbomhub/server/internal/errors"
	"codeberg.org/sbomhub/server/internal/logger"
	"codeberg.org/sbomhub/server/internal/oauth"
	"codeberg.org/sbomhub/server/internal/sessions"
	"github.com/gin-gonic/gin"
)

// LoginHandler godoc
// @Summary Start Google sign-in
// @Description Generates a CSRF state bound to this browser and redirects to Google
// @Tags auth
// @Success 302 {string} string "Redirect to Google"
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [get]
func LoginHandler(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := oauth.GenerateState()
		if err != nil {
			errors.InternalError(c, "failed to start sign-in", err)
			return
		}

		if err := deps.States.Save(c.Writer, c.Request, state); err != nil {
			errors.InternalError(c, "failed to start sign-in", err)
			return
		}

		authURL, err := deps.Provider.AuthCodeURL(state)
		if err != nil {
			errors.InternalError(c, "failed to start sign-in", err)
			return
		}

		c.Redirect(http.StatusFound, authURL)
	}
}

// CallbackHandler godoc
// @Summary OAuth callback
// @Description Verifies the CSRF state, exchanges the code, provisions the gateway consumer and sets the auth_token cookie
// @Tags auth
// @Param state query string true "CSRF state echoed by the provider"
// @Param code query string true "Authorization code"
// @Success 302 {string} string "Redirect to the dashboard"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {string} string "Sign-in failed page"
// @Router /callback [get]
func CallbackHandler(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		// the stored state is consumed whatever happens next
		stored, err := deps.States.Take(c.Writer, c.Request)
		if err != nil && !stderrors.Is(err, sessions.ErrStateNotFound) {
			log.Error("failed to read oauth state", "error", err, "path", c.Request.URL.Path)
		}

		returned := c.Query("state")
		if stored == "" || returned == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(returned)) != 1 {
			log.Warn("oauth callback rejected",
				"reason", "state_mismatch",
				"has_stored_state", stored != "",
			)
			errors.BadRequest(c, "invalid state parameter", nil)
			return
		}

		code := c.Query("code")
		if code == "" {
			log.Warn("oauth callback rejected", "reason", "missing_code")
			errors.BadRequest(c, "authorization code not found", nil)
			return
		}

		// the login runs to completion even if the browser goes away
		ctx := context.WithoutCancel(c.Request.Context())

		grant, err := deps.Provider.Exchange(ctx, code)
		if err != nil {
			log.Error("oauth code exchange failed", "error", err, "provider", deps.Provider.Name())
			errors.SignInFailed(c)
			return
		}

		profile, err := deps.Provider.UserInfo(ctx, grant)
		if err != nil {
			log.Error("oauth userinfo fetch failed", "error", err, "provider", deps.Provider.Name())
			errors.SignInFailed(c)
			return
		}

		provisionCtx, cancel := context.WithTimeout(ctx, deps.ProvisionTimeout)
		result := deps.Provisioner.Provision(provisionCtx, profile.Email)
		cancel()

		token, err := deps.Tokens.Issue(auth.Identity{
			UserID:  profile.ID,
			Email:   profile.Email,
			Name:    profile.Name,
			Picture: profile.Picture,
		})
		if err != nil {
			log.Error("failed to issue session token", "error", err, "email", profile.Email)
			errors.Page(c, http.StatusInternalServerError, "Sign-in failed",
				"Something went wrong on our side. Please try again.")
			return
		}

		auth.SetCookie(c.Writer, token, deps.Cookie)

		log.Info("user signed in",
			"user_id", profile.ID,
			"email", profile.Email,
			"consumer", result.Username,
			"provisioning", string(result.Outcome),
		)

		c.Redirect(http.StatusFound, DashboardPath)
	}
}

// LogoutHandler godoc
// @Summary Sign out
// @Description Clears the auth_token cookie and redirects to the landing page
// @Tags auth
// @Success 302 {string} string "Redirect to the landing page"
// @Router /logout [get]
func LogoutHandler(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.ClearCookie(c.Writer, deps.Cookie)
		c.Redirect(http.StatusFound, LandingPath)
	}
}

// TokenHandler godoc
// @Summary Get current token
// @Description Returns the token already held in the auth_token cookie for use as a bearer token
// @Tags auth
// @Produce json
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /get-token [get]
// @Router /api/get-auth-token [get]
func TokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.GetToken(c)
		if token == "" {
			errors.Unauthorized(c, "sign in to obtain a token")
			return
		}

		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}
