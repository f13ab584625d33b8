// Package gateway wraps the publish/subscribe transport behind a
// capability surface so the underlying broker is swappable.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"scout-exchange/internal/domain"
)

var errSubscriberClosed = errors.New("subscriber is closed")

// Handler receives a decoded, validated envelope. Malformed wire messages
// are dropped before handlers run.
type Handler func(env domain.Envelope)

// Gateway owns the transport connection and channel lifecycle. Routers
// and controllers borrow it; only the composition root constructs or
// closes one.
type Gateway interface {
	// Publish sends an envelope on a channel. It fails with a
	// *DeliveryError on transport rejection or timeout and never retries;
	// duplicate submission must be driven by explicit caller action.
	Publish(ctx context.Context, channel domain.Channel, kind domain.EventKind, env domain.Envelope) error

	// NewSubscriber creates an independent handler registration scope.
	NewSubscriber() Subscriber

	Close() error
}

// Subscriber registers at most one handler per (channel, event kind).
type Subscriber interface {
	// Subscribe registers the handler, replacing any existing handler for
	// the same channel and kind so notifications are never duplicated.
	Subscribe(channel domain.Channel, kind domain.EventKind, handler Handler) error

	// Unsubscribe removes all handlers for the channel. Idempotent.
	Unsubscribe(channel domain.Channel)

	// Close unsubscribes everything. Safe to call more than once.
	Close()
}

// DeliveryError reports a failed or timed-out publish.
type DeliveryError struct {
	Channel domain.Channel
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("publish on %s failed: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
