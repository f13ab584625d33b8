package gateway

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"scout-exchange/internal/domain"
)

// MemoryGateway delivers envelopes in-process. It backs tests and the
// degraded single-process mode when Redis is unavailable. Envelopes
// round-trip through the wire encoding so payload validation behaves
// exactly as it does on the Redis path.
type MemoryGateway struct {
	mu          sync.Mutex
	subscribers []*memorySubscriber
	closed      bool
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (g *MemoryGateway) Publish(ctx context.Context, channel domain.Channel, kind domain.EventKind, env domain.Envelope) error {
	if err := ctx.Err(); err != nil {
		return &DeliveryError{Channel: channel, Err: err}
	}

	env.Type = kind
	payload, err := json.Marshal(env)
	if err != nil {
		return &DeliveryError{Channel: channel, Err: err}
	}

	decoded, err := domain.DecodeEnvelope(payload)
	if err != nil {
		log.Printf("gateway: dropping message on %s: %v", channel, err)
		return nil
	}

	g.mu.Lock()
	subscribers := make([]*memorySubscriber, len(g.subscribers))
	copy(subscribers, g.subscribers)
	g.mu.Unlock()

	for _, sub := range subscribers {
		sub.deliver(channel, decoded)
	}
	return nil
}

func (g *MemoryGateway) NewSubscriber() Subscriber {
	sub := &memorySubscriber{
		gateway:  g,
		handlers: make(map[domain.Channel]map[domain.EventKind]Handler),
	}

	g.mu.Lock()
	g.subscribers = append(g.subscribers, sub)
	g.mu.Unlock()

	return sub
}

func (g *MemoryGateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.subscribers = nil
	return nil
}

func (g *MemoryGateway) remove(sub *memorySubscriber) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, candidate := range g.subscribers {
		if candidate == sub {
			g.subscribers = append(g.subscribers[:i], g.subscribers[i+1:]...)
			return
		}
	}
}

type memorySubscriber struct {
	gateway *MemoryGateway

	mu       sync.Mutex
	handlers map[domain.Channel]map[domain.EventKind]Handler
	closed   bool
}

func (s *memorySubscriber) Subscribe(channel domain.Channel, kind domain.EventKind, handler Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errSubscriberClosed
	}
	if s.handlers[channel] == nil {
		s.handlers[channel] = make(map[domain.EventKind]Handler)
	}
	s.handlers[channel][kind] = handler
	return nil
}

func (s *memorySubscriber) Unsubscribe(channel domain.Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handlers, channel)
}

func (s *memorySubscriber) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.handlers = make(map[domain.Channel]map[domain.EventKind]Handler)
	s.mu.Unlock()

	s.gateway.remove(s)
}

// HandlerCount reports the number of registered handlers, for tests.
func (s *memorySubscriber) HandlerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, kinds := range s.handlers {
		count += len(kinds)
	}
	return count
}

func (s *memorySubscriber) deliver(channel domain.Channel, env domain.Envelope) {
	s.mu.Lock()
	handler := s.handlers[channel][env.Type]
	s.mu.Unlock()

	if handler != nil {
		handler(env)
	}
}
