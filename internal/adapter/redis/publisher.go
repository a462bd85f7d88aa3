package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pscheid92/sortlist/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// ChangesChannel is the pub/sub channel change events are published on.
const ChangesChannel = "sortlist:changes"

// Publisher fans change events out to other instances via Redis pub/sub.
type Publisher struct {
	rdb *goredis.Client
}

var _ domain.EventPublisher = (*Publisher)(nil)

func NewPublisher(rdb *goredis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) PublishChange(ctx context.Context, event domain.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}
	if err := p.rdb.Publish(ctx, ChangesChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable, for readiness checks.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}
