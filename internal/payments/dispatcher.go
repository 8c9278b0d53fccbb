package payments

import (
	"context"

	"codeberg.org/sbomhub/server/internal/logger"
)

// event types the billing side cares about
var knownEvents = map[string]struct{}{
	"payment_intent.succeeded":      {},
	"payment_intent.payment_failed": {},
	"customer.subscription.created": {},
	"customer.subscription.updated": {},
	"customer.subscription.deleted": {},
	"invoice.payment_succeeded":     {},
	"invoice.payment_failed":        {},
}

// acknowledges every event and records it in the log
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, event *Event) error {
	if _, ok := knownEvents[event.Type]; !ok {
		logger.Info("unhandled webhook event type",
			"event_id", event.ID,
			"type", event.Type,
		)
		return nil
	}

	logger.Info("webhook event received",
		"event_id", event.ID,
		"type", event.Type,
		"created", event.Created,
	)

	return nil
}
