package eventpublisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pscheid92/sortlist/internal/domain"
)

const publishTimeout = 2 * time.Second

// Target is one named destination for change events.
type Target struct {
	Name      string
	Publisher domain.EventPublisher
}

// EventPublisher implements domain.EventPublisher by fanning each change out to
// every configured target (the WebSocket hub and, optionally, Redis pub/sub).
type EventPublisher struct {
	targets []Target
}

var _ domain.EventPublisher = (*EventPublisher)(nil)

// New skips targets with a nil publisher.
func New(targets ...Target) *EventPublisher {
	ep := &EventPublisher{}
	for _, t := range targets {
		if t.Publisher != nil {
			ep.targets = append(ep.targets, t)
		}
	}
	return ep
}

// PublishChange delivers event to every target, even when an earlier one fails.
func (ep *EventPublisher) PublishChange(ctx context.Context, event domain.ChangeEvent) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	var errs []error
	for _, t := range ep.targets {
		if err := t.Publisher.PublishChange(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("publish to %s: %w", t.Name, err))
		}
	}
	return errors.Join(errs...)
}
