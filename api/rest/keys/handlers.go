package keys

import (
	stderrors "errors"
	"io"
	"net/http"

	"codeberg.org/sbomhub/server/internal/auth"
	"codeberg.org/sbomhub/server/internal/errors"
	"codeberg.org/sbomhub/server/internal/kong"
	"codeberg.org/sbomhub/server/sbomhub/consumers"
	"codeberg.org/sbomhub/server/sbomhub/keys"
	"github.com/gin-gonic/gin"
)

// ListKeysHandler godoc
// @Summary List API keys
// @Description Lists the gateway keys of the caller's consumer
// @Tags keys
// @Produce json
// @Success 200 {object} ListKeysResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/keys [get]
// @Security BearerAuth
func ListKeysHandler(manager KeyManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := callerEmail(c)
		if !ok {
			return
		}

		list, err := manager.List(c.Request.Context(), email)
		if err != nil {
			gatewayError(c, err, "consumer")
			return
		}

		c.JSON(http.StatusOK, ListKeysResponse{Keys: list, Count: len(list)})
	}
}

// CreateKeyHandler godoc
// @Summary Create API key
// @Tags keys
// @Accept json
// @Produce json
// @Param request body CreateKeyRequest false "optional key value"
// @Success 201 {object} keys.APIKey
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/keys [post]
// @Security BearerAuth
func CreateKeyHandler(manager KeyManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := callerEmail(c)
		if !ok {
			return
		}

		var req CreateKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
			errors.ValidationError(c, err)
			return
		}

		key, err := manager.Create(c.Request.Context(), email, req.Key)
		if err != nil {
			gatewayError(c, err, "consumer")
			return
		}

		c.JSON(http.StatusCreated, key)
	}
}

// RevokeKeyHandler godoc
// @Summary Revoke API key
// @Tags keys
// @Param id path string true "key id"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/keys/{id} [delete]
// @Security BearerAuth
func RevokeKeyHandler(manager KeyManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := callerEmail(c)
		if !ok {
			return
		}

		if err := manager.Revoke(c.Request.Context(), email, c.Param("id")); err != nil {
			gatewayError(c, err, "api key")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// ConsumerHandler godoc
// @Summary Get gateway consumer
// @Description Returns the caller's consumer record and key count
// @Tags keys
// @Produce json
// @Success 200 {object} keys.Info
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/consumer [get]
// @Security BearerAuth
func ConsumerHandler(manager KeyManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := callerEmail(c)
		if !ok {
			return
		}

		info, err := manager.Info(c.Request.Context(), email)
		if err != nil {
			gatewayError(c, err, "consumer")
			return
		}

		c.JSON(http.StatusOK, info)
	}
}

func callerEmail(c *gin.Context) (string, bool) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		errors.Unauthorized(c, "")
		return "", false
	}

	return claims.Email, true
}

// maps typed gateway failures onto client-facing statuses
func gatewayError(c *gin.Context, err error, resource string) {
	var apiErr *kong.APIError
	message := ""
	if stderrors.As(err, &apiErr) {
		message = apiErr.Message
	}

	switch {
	case stderrors.Is(err, consumers.ErrEmptyUsername):
		errors.BadRequest(c, "account has no usable email", err)
	case stderrors.Is(err, keys.ErrNotOwner):
		errors.Forbidden(c, "gateway consumer belongs to another account")
	case kong.IsBadRequest(err):
		errors.BadRequest(c, message, err)
	case kong.IsNotFound(err):
		errors.NotFound(c, resource)
	case kong.IsConflict(err):
		errors.Conflict(c, message)
	default:
		errors.BadGateway(c, "gateway request failed", err)
	}
}
