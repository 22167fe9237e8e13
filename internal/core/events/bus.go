package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

type Handler func(ctx context.Context, event Event) error

// Delivery selects how a subscriber receives events.
type Delivery int

const (
	// Inline subscribers run on the publisher's goroutine, in subscription
	// order, before Publish returns.
	Inline Delivery = iota
	// Background subscribers each run on their own goroutine and never fail
	// the publish.
	Background
)

func (d Delivery) String() string {
	if d == Inline {
		return "inline"
	}
	return "background"
}

type subscription struct {
	handler  Handler
	delivery Delivery
}

// EventBus fans dashboard events out to subscribers. A session publishes
// from its loop goroutine, so inline subscribers see the events of one
// operator in the order the changes were applied.
type EventBus struct {
	subs   map[string][]subscription
	logger *slog.Logger
	mu     sync.RWMutex
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		subs:   make(map[string][]subscription),
		logger: logger,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.subscribe(eventType, handler, Background)
}

func (eb *EventBus) SubscribeInline(eventType string, handler Handler) {
	eb.subscribe(eventType, handler, Inline)
}

func (eb *EventBus) subscribe(eventType string, handler Handler, delivery Delivery) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subs[eventType] = append(eb.subs[eventType], subscription{handler: handler, delivery: delivery})
	eb.logger.Info("event handler registered",
		"event_type", eventType,
		"delivery", delivery.String(),
		"total_handlers", len(eb.subs[eventType]))
}

// Publish runs the inline subscribers of event's type and returns their
// joined errors, then starts the background ones.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	subs := eb.subs[event.EventType()]
	eb.mu.RUnlock()

	if len(subs) == 0 {
		eb.logger.Debug("no handlers for event type", "event_type", event.EventType())
		return nil
	}

	var errs []error
	for _, s := range subs {
		if s.delivery != Inline {
			continue
		}
		if err := s.handler(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("handler failed for event %s: %w", event.EventType(), err))
		}
	}

	// background handlers outlive the publishing call
	bg := context.WithoutCancel(ctx)
	for _, s := range subs {
		if s.delivery != Background {
			continue
		}
		go eb.runBackground(bg, s.handler, event)
	}

	return errors.Join(errs...)
}

func (eb *EventBus) runBackground(ctx context.Context, h Handler, event Event) {
	if err := h(ctx, event); err != nil {
		eb.logger.Error("event handler failed",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
	}
}
