// Package notifier fans ledger mutations out to connected clients so their
// locally derived unit statuses can be refreshed without polling. Delivery
// is best-effort and at-least-once; subscribers treat events as cues to
// re-derive status, never as deltas to merge.
package notifier

import (
	"context"

	"seatwise/models"
)

// ChangeNotifier is the injected pub/sub capability, keyed by provider.
type ChangeNotifier interface {
	Publish(ctx context.Context, providerID string, event models.ChangeEvent) error
	// Subscribe returns a channel of events for one provider and a cancel
	// function that releases the subscription. The channel is closed after
	// cancel is called.
	Subscribe(ctx context.Context, providerID string) (<-chan models.ChangeEvent, func(), error)
}

// PushSender delivers a direct push notification to one identity (a
// provider being asked to decide, or a requester being told the verdict).
type PushSender interface {
	SendPush(ctx context.Context, recipientID, title, body string, data map[string]string) error
}
