package gateway

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"scout-exchange/internal/domain"
)

// RedisGateway delivers envelopes over Redis PUB/SUB. One instance per
// process; subscribers share the client but own their subscriptions.
type RedisGateway struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisGateway connects to Redis and verifies the connection.
func NewRedisGateway(redisURL string, timeout time.Duration) (*RedisGateway, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisGatewayWithClient(client, timeout), nil
}

// NewRedisGatewayWithClient wraps an existing client.
func NewRedisGatewayWithClient(client *redis.Client, timeout time.Duration) *RedisGateway {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RedisGateway{client: client, timeout: timeout}
}

func (g *RedisGateway) Publish(ctx context.Context, channel domain.Channel, kind domain.EventKind, env domain.Envelope) error {
	env.Type = kind
	payload, err := json.Marshal(env)
	if err != nil {
		return &DeliveryError{Channel: channel, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.client.Publish(ctx, string(channel), payload).Err(); err != nil {
		return &DeliveryError{Channel: channel, Err: err}
	}
	return nil
}

func (g *RedisGateway) NewSubscriber() Subscriber {
	return &redisSubscriber{
		gateway:  g,
		handlers: make(map[domain.Channel]map[domain.EventKind]Handler),
		pubsubs:  make(map[domain.Channel]*redis.PubSub),
	}
}

func (g *RedisGateway) Close() error {
	return g.client.Close()
}

type redisSubscriber struct {
	gateway *RedisGateway

	mu       sync.Mutex
	handlers map[domain.Channel]map[domain.EventKind]Handler
	pubsubs  map[domain.Channel]*redis.PubSub
	closed   bool
}

func (s *redisSubscriber) Subscribe(channel domain.Channel, kind domain.EventKind, handler Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errSubscriberClosed
	}

	if s.handlers[channel] == nil {
		s.handlers[channel] = make(map[domain.EventKind]Handler)
	}
	s.handlers[channel][kind] = handler

	if _, ok := s.pubsubs[channel]; !ok {
		pubsub := s.gateway.client.Subscribe(context.Background(), string(channel))
		s.pubsubs[channel] = pubsub
		go s.listen(channel, pubsub)
	}
	return nil
}

// listen runs until the channel's PubSub is closed. Messages are
// dispatched one at a time in delivery order.
func (s *redisSubscriber) listen(channel domain.Channel, pubsub *redis.PubSub) {
	for msg := range pubsub.Channel() {
		env, err := domain.DecodeEnvelope([]byte(msg.Payload))
		if err != nil {
			log.Printf("gateway: dropping message on %s: %v", channel, err)
			continue
		}

		s.mu.Lock()
		handler := s.handlers[channel][env.Type]
		s.mu.Unlock()

		if handler != nil {
			handler(env)
		}
	}
}

func (s *redisSubscriber) Unsubscribe(channel domain.Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubscribeLocked(channel)
}

func (s *redisSubscriber) unsubscribeLocked(channel domain.Channel) {
	delete(s.handlers, channel)
	if pubsub, ok := s.pubsubs[channel]; ok {
		_ = pubsub.Close()
		delete(s.pubsubs, channel)
	}
}

func (s *redisSubscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for channel := range s.pubsubs {
		s.unsubscribeLocked(channel)
	}
	s.handlers = make(map[domain.Channel]map[domain.EventKind]Handler)
}
