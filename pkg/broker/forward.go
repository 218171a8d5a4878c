package broker

import (
	"context"
	"time"

	"github.com/shashiranjanraj/orderdesk/pkg/event"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
	"github.com/shashiranjanraj/orderdesk/pkg/reqid"
	"github.com/shashiranjanraj/orderdesk/pkg/workerpool"
)

// JSONPublisher is the part of Publisher the forwarder needs.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

// Forward publishes every bus event via pub on pool workers, so request
// handlers never wait on the broker. The event name is the routing key.
// Failures and drops are logged and counted, never returned.
func Forward(bus *event.Bus, pool *workerpool.Pool, pub JSONPublisher, timeout time.Duration) {
	bus.Listen(event.Wildcard, func(ctx context.Context, e event.Event) {
		rid := reqid.FromCtx(ctx)

		err := pool.Submit(func() {
			pctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := pub.PublishJSON(pctx, e.Name, e); err != nil {
				metrics.EventsPublished.WithLabelValues(e.Name, "error").Inc()
				logger.Error("event publish failed", "event", e.Name, "request_id", rid, "error", err.Error())
				return
			}
			metrics.EventsPublished.WithLabelValues(e.Name, "ok").Inc()
		})
		if err != nil {
			metrics.EventsPublished.WithLabelValues(e.Name, "dropped").Inc()
			logger.WithCtx(ctx).Warn().Err(err).Str("event", e.Name).Msg("event dropped")
		}
	})
}
