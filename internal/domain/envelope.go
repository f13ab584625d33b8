package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Channel is a named publish/subscribe topic on the messaging gateway.
type Channel string

const (
	ChannelServiceRequests    Channel = "service-requests"
	ChannelServiceCompletions Channel = "service-completions"
	// ChannelServiceUpdates is reserved for amendment traffic on existing
	// requests; no current flow publishes to it.
	ChannelServiceUpdates Channel = "service-updates"
)

type EventKind string

const (
	EventNewRequest       EventKind = "new_request"
	EventCompletedRequest EventKind = "completed_request"
	// Reserved kinds for the updates channel.
	EventRequestAssigned EventKind = "request_assigned"
	EventRequestUpdated  EventKind = "request_updated"
)

// ErrMalformedMessage marks an inbound message that lacks a data payload.
// Such messages are dropped at the gateway boundary, never delivered.
var ErrMalformedMessage = errors.New("malformed message: missing data payload")

// Envelope is the wire-level wrapper around a ServiceRequest payload.
// requestedBy/requestedTo carry new_request routing metadata,
// completedBy/notifying carry completed_request metadata; each pair is
// always a role and its complement.
type Envelope struct {
	ID          string          `json:"id"`
	Type        EventKind       `json:"type"`
	Data        *ServiceRequest `json:"data"`
	Timestamp   int64           `json:"timestamp"`
	RequestedBy Role            `json:"requestedBy,omitempty"`
	RequestedTo Role            `json:"requestedTo,omitempty"`
	CompletedBy Role            `json:"completedBy,omitempty"`
	Notifying   Role            `json:"notifying,omitempty"`
}

// NewRequestEnvelope packages an authored request for the
// service-requests channel.
func NewRequestEnvelope(req ServiceRequest, requestedBy Role) Envelope {
	data := req.Clone()
	return Envelope{
		ID:          req.ID,
		Type:        EventNewRequest,
		Data:        &data,
		Timestamp:   time.Now().UnixMilli(),
		RequestedBy: requestedBy,
		RequestedTo: requestedBy.Complement(),
	}
}

// CompletionEnvelope packages a fulfilled request for the
// service-completions channel.
func CompletionEnvelope(req ServiceRequest, completedBy Role) Envelope {
	data := req.Clone()
	return Envelope{
		ID:          req.ID,
		Type:        EventCompletedRequest,
		Data:        &data,
		Timestamp:   time.Now().UnixMilli(),
		CompletedBy: completedBy,
		Notifying:   completedBy.Complement(),
	}
}

// Channel returns the channel this envelope kind travels on.
func (e Envelope) Channel() Channel {
	if e.Type == EventCompletedRequest {
		return ChannelServiceCompletions
	}
	return ChannelServiceRequests
}

// DecodeEnvelope validates an inbound wire message into a typed envelope.
// Undecodable bodies and bodies without a data payload both report
// ErrMalformedMessage.
func DecodeEnvelope(payload []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if env.Data == nil {
		return Envelope{}, ErrMalformedMessage
	}
	env.Data.RequiredDeliverables = dedupeDeliverables(env.Data.RequiredDeliverables)
	return env, nil
}
