package eventpublisher

import (
	"context"
	"errors"
	"testing"

	"github.com/pscheid92/sortlist/internal/domain"
	"github.com/stretchr/testify/assert"
)

type mockPublisher struct {
	events    []domain.ChangeEvent
	publishFn func(ctx context.Context, event domain.ChangeEvent) error
}

func (m *mockPublisher) PublishChange(ctx context.Context, event domain.ChangeEvent) error {
	m.events = append(m.events, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

func TestPublishChange_FansOutToAllTargets(t *testing.T) {
	hub, redis := &mockPublisher{}, &mockPublisher{}
	ep := New(Target{Name: "websocket", Publisher: hub}, Target{Name: "redis", Publisher: redis})

	event := domain.ChangeEvent{Kind: domain.ChangeOrder, Revision: 2}
	assert.NoError(t, ep.PublishChange(context.Background(), event))

	assert.Equal(t, []domain.ChangeEvent{event}, hub.events)
	assert.Equal(t, []domain.ChangeEvent{event}, redis.events)
}

func TestPublishChange_ContinuesAfterFailure(t *testing.T) {
	cause := errors.New("circuit open")
	failing := &mockPublisher{publishFn: func(context.Context, domain.ChangeEvent) error { return cause }}
	hub := &mockPublisher{}
	ep := New(Target{Name: "redis", Publisher: failing}, Target{Name: "websocket", Publisher: hub})

	err := ep.PublishChange(context.Background(), domain.ChangeEvent{Kind: domain.ChangeSelection, Revision: 1})

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "publish to redis")
	assert.Len(t, hub.events, 1)
}

func TestPublishChange_AppliesTimeout(t *testing.T) {
	var hasDeadline bool
	pub := &mockPublisher{publishFn: func(ctx context.Context, _ domain.ChangeEvent) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}}
	ep := New(Target{Name: "websocket", Publisher: pub})

	assert.NoError(t, ep.PublishChange(context.Background(), domain.ChangeEvent{}))
	assert.True(t, hasDeadline)
}

func TestNew_SkipsNilPublishers(t *testing.T) {
	ep := New(Target{Name: "redis"})

	assert.Empty(t, ep.targets)
	assert.NoError(t, ep.PublishChange(context.Background(), domain.ChangeEvent{}))
}
