// Package notifier defines the outbound notification contract and its
// Slack webhook implementation. Delivery is best effort: callers log
// failures and never retry.
package notifier

import (
	"context"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// Notifier delivers one recognition to an external channel.
type Notifier interface {
	// Deliver sends rec, honoring ctx for cancellation. No latency
	// contract is imposed here; timeouts belong to the transport.
	Deliver(ctx context.Context, rec model.Recognition) error
}
