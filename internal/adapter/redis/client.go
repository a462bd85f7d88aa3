package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pscheid92/sortlist/internal/adapter/metrics"
	"github.com/pscheid92/sortlist/internal/platform/retry"
	goredis "github.com/redis/go-redis/v9"
)

var connectPolicy = retry.Policy{
	MaxAttempts:    5,
	InitialBackoff: 200 * time.Millisecond,
	MaxBackoff:     2 * time.Second,
}

// NewClient parses redisURL, installs the metrics and circuit breaker hooks and
// waits until the server answers PING. m may be nil.
func NewClient(ctx context.Context, redisURL string, m *metrics.RedisMetrics) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := goredis.NewClient(opts)
	client.AddHook(NewMetricsHook(m))
	client.AddHook(NewCircuitBreakerHook(m))

	policy := connectPolicy
	policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
		slog.Warn("Redis not ready, retrying", "attempt", attempt, "backoff", backoff, "error", err)
	}

	err = retry.DoVoid(ctx, policy, retry.Always, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Connected to Redis", "addr", opts.Addr)
	return client, nil
}
