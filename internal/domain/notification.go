package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationEvent is the in-app notification built from a delivered
// envelope. It is ephemeral: only the most recently received one is kept
// by a router, and it is discarded on dismiss.
type NotificationEvent struct {
	ID         string         `json:"id"`
	Kind       EventKind      `json:"kind"`
	Message    string         `json:"message"`
	Payload    ServiceRequest `json:"payload"`
	ReceivedAt time.Time      `json:"receivedAt"`
}

// NewNotificationEvent converts a delivered envelope into a notification,
// falling back to a generated id and the given time when the envelope
// omits them.
func NewNotificationEvent(env Envelope, now time.Time) NotificationEvent {
	id := env.ID
	if id == "" {
		id = uuid.NewString()
	}

	receivedAt := now
	if env.Timestamp > 0 {
		receivedAt = time.UnixMilli(env.Timestamp)
	}

	title := "Untitled Request"
	payload := ServiceRequest{RequiredDeliverables: []Deliverable{}}
	if env.Data != nil {
		payload = env.Data.Clone()
		if payload.RequestTitle != "" {
			title = payload.RequestTitle
		}
	}

	message := fmt.Sprintf("New service request: %s", title)
	if env.Type == EventCompletedRequest {
		message = fmt.Sprintf("Service request completed: %s", title)
	}

	return NotificationEvent{
		ID:         id,
		Kind:       env.Type,
		Message:    message,
		Payload:    payload,
		ReceivedAt: receivedAt,
	}
}
