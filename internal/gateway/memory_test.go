package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout-exchange/internal/domain"
)

func newTestEnvelope(title string) domain.Envelope {
	req := domain.InitialState(domain.RoleInternal)
	req.ID = "req-1"
	req.RequestTitle = title
	return domain.NewRequestEnvelope(req, domain.RoleInternal)
}

func TestMemoryGatewayPublishSubscribe(t *testing.T) {
	gw := NewMemoryGateway()
	sub := gw.NewSubscriber()
	defer sub.Close()

	var received []domain.Envelope
	err := sub.Subscribe(domain.ChannelServiceRequests, domain.EventNewRequest, func(env domain.Envelope) {
		received = append(received, env)
	})
	require.NoError(t, err)

	err = gw.Publish(context.Background(), domain.ChannelServiceRequests, domain.EventNewRequest, newTestEnvelope("Storm damage inspection"))
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, "Storm damage inspection", received[0].Data.RequestTitle)
	assert.Equal(t, domain.RoleInternal, received[0].RequestedBy)
	assert.Equal(t, domain.RoleExternal, received[0].RequestedTo)
}

func TestMemoryGatewayIgnoresOtherChannelsAndKinds(t *testing.T) {
	gw := NewMemoryGateway()
	sub := gw.NewSubscriber()
	defer sub.Close()

	calls := 0
	require.NoError(t, sub.Subscribe(domain.ChannelServiceCompletions, domain.EventCompletedRequest, func(domain.Envelope) {
		calls++
	}))

	require.NoError(t, gw.Publish(context.Background(), domain.ChannelServiceRequests, domain.EventNewRequest, newTestEnvelope("a")))
	assert.Zero(t, calls)
}

func TestMemoryGatewaySubscribeReplacesHandler(t *testing.T) {
	gw := NewMemoryGateway()
	sub := gw.NewSubscriber()
	defer sub.Close()

	first, second := 0, 0
	require.NoError(t, sub.Subscribe(domain.ChannelServiceRequests, domain.EventNewRequest, func(domain.Envelope) { first++ }))
	require.NoError(t, sub.Subscribe(domain.ChannelServiceRequests, domain.EventNewRequest, func(domain.Envelope) { second++ }))

	require.NoError(t, gw.Publish(context.Background(), domain.ChannelServiceRequests, domain.EventNewRequest, newTestEnvelope("a")))

	assert.Zero(t, first, "replaced handler must not fire")
	assert.Equal(t, 1, second, "one registration, one delivery")
}

func TestMemoryGatewayUnsubscribeIsIdempotent(t *testing.T) {
	gw := NewMemoryGateway()
	sub := gw.NewSubscriber().(*memorySubscriber)
	defer sub.Close()

	require.NoError(t, sub.Subscribe(domain.ChannelServiceRequests, domain.EventNewRequest, func(domain.Envelope) {}))
	require.Equal(t, 1, sub.HandlerCount())

	sub.Unsubscribe(domain.ChannelServiceRequests)
	sub.Unsubscribe(domain.ChannelServiceRequests)
	assert.Zero(t, sub.HandlerCount())
}

func TestMemoryGatewayCloseStopsDelivery(t *testing.T) {
	gw := NewMemoryGateway()
	sub := gw.NewSubscriber()

	calls := 0
	require.NoError(t, sub.Subscribe(domain.ChannelServiceRequests, domain.EventNewRequest, func(domain.Envelope) { calls++ }))

	sub.Close()
	sub.Close()

	require.NoError(t, gw.Publish(context.Background(), domain.ChannelServiceRequests, domain.EventNewRequest, newTestEnvelope("a")))
	assert.Zero(t, calls)

	assert.Error(t, sub.Subscribe(domain.ChannelServiceRequests, domain.EventNewRequest, func(domain.Envelope) {}))
}

func TestMemoryGatewayDropsPayloadlessEnvelopes(t *testing.T) {
	gw := NewMemoryGateway()
	sub := gw.NewSubscriber()
	defer sub.Close()

	calls := 0
	require.NoError(t, sub.Subscribe(domain.ChannelServiceRequests, domain.EventNewRequest, func(domain.Envelope) { calls++ }))

	env := domain.Envelope{ID: "x", Type: domain.EventNewRequest, Timestamp: 1}
	require.NoError(t, gw.Publish(context.Background(), domain.ChannelServiceRequests, domain.EventNewRequest, env))

	assert.Zero(t, calls)
}

func TestMemoryGatewayCancelledContext(t *testing.T) {
	gw := NewMemoryGateway()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gw.Publish(ctx, domain.ChannelServiceRequests, domain.EventNewRequest, newTestEnvelope("a"))

	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, domain.ChannelServiceRequests, deliveryErr.Channel)
}
