package webhooks

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"codeberg.org/sbomhub/server/internal/errors"
	"codeberg.org/sbomhub/server/internal/logger"
	"codeberg.org/sbomhub/server/internal/payments"
	"github.com/gin-gonic/gin"
)

const maxPayloadBytes = 64 << 10

// WebhookHandler godoc
// @Summary Payment webhook
// @Description Verifies the Stripe-Signature header and hands the event to the dispatcher
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "t=<unix>,v1=<hex hmac>"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /stripe/webhook [post]
func WebhookHandler(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		if deps.Verifier == nil || !deps.Verifier.Configured() {
			errors.InternalError(c, "webhook secret not configured", payments.ErrNotConfigured)
			return
		}

		header := c.GetHeader(payments.SignatureHeader)
		if header == "" {
			log.Warn("webhook rejected", "reason", "missing signature")
			errors.BadRequest(c, "missing signature", nil)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes)

		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				log.Warn("webhook rejected", "reason", "payload too large", "limit", tooLarge.Limit)
				errors.PayloadTooLarge(c, tooLarge.Limit)
				return
			}
			errors.BadRequest(c, "failed to read payload", err)
			return
		}

		if !json.Valid(payload) {
			log.Warn("webhook rejected", "reason", "invalid json")
			errors.BadRequest(c, "invalid JSON payload", nil)
			return
		}

		event, err := deps.Verifier.ConstructEvent(payload, header)
		if err != nil {
			if stderrors.Is(err, payments.ErrInvalidPayload) {
				log.Warn("webhook rejected", "reason", "invalid event", "error", err)
				errors.BadRequest(c, "invalid event payload", nil)
				return
			}
			log.Warn("webhook signature verification failed", "error", err)
			errors.BadRequest(c, "invalid signature", nil)
			return
		}

		if err := deps.Dispatcher.Dispatch(c.Request.Context(), event); err != nil {
			errors.InternalError(c, "event processing failed", err)
			return
		}

		log.Info("webhook event processed",
			"event_id", event.ID,
			"type", event.Type,
		)

		c.JSON(http.StatusOK, StatusResponse{Status: "success"})
	}
}

// reports whether the webhook endpoint can verify deliveries
func TestHandler(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, TestResponse{
			Status:                  "webhook endpoint active",
			WebhookSecretConfigured: deps.Verifier != nil && deps.Verifier.Configured(),
			Endpoint:                webhookPath,
		})
	}
}
