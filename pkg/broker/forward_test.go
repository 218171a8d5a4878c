package broker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shashiranjanraj/orderdesk/pkg/broker"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
	"github.com/shashiranjanraj/orderdesk/pkg/workerpool"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, routingKey string, v any) error {
	args := m.Called(ctx, routingKey, v)
	return args.Error(0)
}

func TestForward_PublishesEveryEvent(t *testing.T) {
	bus := event.NewBus()
	pool := workerpool.New(2)
	pub := new(mockPublisher)

	isEvent := func(name string) any {
		return mock.MatchedBy(func(v any) bool {
			e, ok := v.(event.Event)
			return ok && e.Name == name
		})
	}
	pub.On("PublishJSON", mock.Anything, "order.created", isEvent("order.created")).Return(nil).Once()
	pub.On("PublishJSON", mock.Anything, "order.deleted", isEvent("order.deleted")).Return(errors.New("nack")).Once()

	broker.Forward(bus, pool, pub, time.Second)
	bus.Fire(context.Background(), "order.created", map[string]uint{"id": 1})
	bus.Fire(context.Background(), "order.deleted", map[string]uint{"id": 1})

	pool.Shutdown()
	pub.AssertExpectations(t)
}

func TestForward_ClosedPoolDropsQuietly(t *testing.T) {
	bus := event.NewBus()
	pool := workerpool.New(1)
	pool.Shutdown()
	pub := new(mockPublisher)

	broker.Forward(bus, pool, pub, time.Second)
	assert.NotPanics(t, func() { bus.Fire(context.Background(), "order.created", nil) })
	pub.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything, mock.Anything)
}
