package delivery

import (
	"context"

	"timeblessed/events"
)

// BusSink publishes notifications to the launcher over the event bus.
type BusSink struct {
	Bus events.Publisher
}

func (s BusSink) Deliver(ctx context.Context, n Notification) error {
	if s.Bus == nil {
		return nil
	}
	return s.Bus.Publish(ctx, events.Event{
		Kind:      events.AppAvailable,
		Package:   n.Target,
		Title:     n.Title,
		Body:      n.Body,
		DedupeKey: n.DedupeKey,
	})
}
