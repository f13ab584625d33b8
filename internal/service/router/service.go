// Package router binds a viewer's role to its inbound notification
// channel and maintains the current-notification state machine.
package router

import (
	"sync"
	"time"

	"scout-exchange/internal/domain"
	"scout-exchange/internal/gateway"
)

// State of the notification surface for one viewer.
type State string

const (
	StateIdle      State = "idle"
	StateAnnounced State = "announced"
	StateDetailed  State = "detailed"
)

// Router keeps exactly one live subscription per viewer: external viewers
// listen for new requests, internal viewers for completions. Only the
// most recently delivered notification is retained (last-wins); earlier
// ones are not queued for redisplay.
type Router struct {
	sub gateway.Subscriber

	mu      sync.Mutex
	role    domain.Role
	bound   domain.Channel
	state   State
	current *domain.NotificationEvent
	onOpen  func(domain.ServiceRequest)

	closeOnce sync.Once
}

func NewRouter(role domain.Role, gw gateway.Gateway) (*Router, error) {
	r := &Router{
		sub:   gw.NewSubscriber(),
		state: StateIdle,
	}
	if err := r.Bind(role); err != nil {
		r.sub.Close()
		return nil, err
	}
	return r, nil
}

// OnOpenInForm registers the handoff callback invoked when the viewer
// opens a notification in the form. It fires synchronously from
// OpenInForm.
func (r *Router) OnOpenInForm(fn func(domain.ServiceRequest)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onOpen = fn
}

// Bind subscribes the router to the channel matching the role, tearing
// down any previous subscription first so handlers never accumulate.
func (r *Router) Bind(role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bound != "" {
		r.sub.Unsubscribe(r.bound)
		r.bound = ""
	}

	r.role = role
	channel, kind := routeFor(role)
	if err := r.sub.Subscribe(channel, kind, r.receive); err != nil {
		return err
	}
	r.bound = channel
	return nil
}

// routeFor maps a role to its inbound channel: internal viewers are
// notified of completions, everyone else of new requests.
func routeFor(role domain.Role) (domain.Channel, domain.EventKind) {
	if role == domain.RoleInternal {
		return domain.ChannelServiceCompletions, domain.EventCompletedRequest
	}
	return domain.ChannelServiceRequests, domain.EventNewRequest
}

// receive runs on the gateway's delivery path, in transport order.
func (r *Router) receive(env domain.Envelope) {
	notification := domain.NewNotificationEvent(env, time.Now())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = &notification
	r.state = StateAnnounced
}

func (r *Router) Role() domain.Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.role
}

func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Current returns a copy of the current notification, or nil.
func (r *Router) Current() *domain.NotificationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	out := *r.current
	out.Payload = r.current.Payload.Clone()
	return &out
}

// ViewDetails opens the full-detail view of the announced notification
// and returns it, or nil when nothing is announced.
func (r *Router) ViewDetails() *domain.NotificationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return nil
	}
	r.state = StateDetailed
	out := *r.current
	out.Payload = r.current.Payload.Clone()
	return &out
}

// Dismiss returns to idle from any state, discarding the current
// notification.
func (r *Router) Dismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
	r.state = StateIdle
}

// OpenInForm hands the current notification's payload to the registered
// callback and returns it, then clears the notification state. Returns
// nil when there is nothing to open.
func (r *Router) OpenInForm() *domain.ServiceRequest {
	r.mu.Lock()
	if r.current == nil {
		r.mu.Unlock()
		return nil
	}
	payload := r.current.Payload.Clone()
	onOpen := r.onOpen
	r.current = nil
	r.state = StateIdle
	r.mu.Unlock()

	if onOpen != nil {
		onOpen(payload)
	}
	return &payload
}

// Close tears down the subscription exactly once, regardless of how many
// rebinds happened before.
func (r *Router) Close() {
	r.closeOnce.Do(func() {
		r.sub.Close()
	})
}
