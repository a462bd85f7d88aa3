package domain

import (
	"context"
	"time"
)

// ChangeKind names which part of the shared state changed.
type ChangeKind string

const (
	ChangeOrder     ChangeKind = "order"
	ChangeSelection ChangeKind = "selection"
)

// ChangeEvent announces that the order or the selection moved to a new revision.
// Clients re-fetch the affected resource; the event carries no payload.
type ChangeEvent struct {
	Kind     ChangeKind `json:"kind"`
	Revision uint64     `json:"revision"`
	At       time.Time  `json:"at"`
}

// EventPublisher publishes domain events to infrastructure.
type EventPublisher interface {
	PublishChange(ctx context.Context, event ChangeEvent) error
}
