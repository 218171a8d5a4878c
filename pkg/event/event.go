// Package event provides an in-process domain event bus.
package event

import (
	"context"
	"sync"
	"time"
)

// Wildcard listeners receive every event.
const Wildcard = "*"

// Event is one domain occurrence, e.g. "order.created".
type Event struct {
	Name       string    `json:"name"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Handler receives an event. Handlers run on the firing goroutine and
// should hand slow work elsewhere.
type Handler func(ctx context.Context, e Event)

// Bus dispatches events to registered listeners.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	now      func() time.Time
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}, now: time.Now}
}

// Listen registers a handler for name, or for every event with Wildcard.
func (b *Bus) Listen(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Fire dispatches synchronously: exact-name listeners first, then wildcard
// listeners. A nil Bus is a no-op.
func (b *Bus) Fire(ctx context.Context, name string, payload any) {
	if b == nil {
		return
	}

	b.mu.RLock()
	hs := make([]Handler, 0, len(b.handlers[name])+len(b.handlers[Wildcard]))
	hs = append(hs, b.handlers[name]...)
	hs = append(hs, b.handlers[Wildcard]...)
	b.mu.RUnlock()

	e := Event{Name: name, Payload: payload, OccurredAt: b.now().UTC()}
	for _, h := range hs {
		h(ctx, e)
	}
}
