package webhooks

import "codeberg.org/sbomhub/server/internal/payments"

type Dependencies struct {
	Verifier   *payments.Verifier
	Dispatcher payments.Dispatcher
}

type StatusResponse struct {
	Status string `json:"status"`
}

type TestResponse struct {
	Status                  string `json:"status"`
	WebhookSecretConfigured bool   `json:"webhook_secret_configured"`
	Endpoint                string `json:"endpoint"`
}
