package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/pscheid92/sortlist/internal/adapter/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failing(err error) goredis.ProcessHook {
	return func(context.Context, goredis.Cmder) error { return err }
}

func TestCircuitBreakerHook_StaysClosedOnSuccess(t *testing.T) {
	hook := NewCircuitBreakerHook(nil)
	ctx := context.Background()

	process := hook.ProcessHook(failing(nil))
	for range 10 {
		require.NoError(t, process(ctx, goredis.NewIntCmd(ctx, "publish", ChangesChannel, "{}")))
	}

	assert.Equal(t, circuitbreaker.ClosedState, hook.State())
}

func TestCircuitBreakerHook_NilReplyIsNotAFailure(t *testing.T) {
	hook := NewCircuitBreakerHook(nil)
	ctx := context.Background()

	process := hook.ProcessHook(failing(goredis.Nil))
	for range 10 {
		err := process(ctx, goredis.NewStringCmd(ctx, "get", "key"))
		assert.ErrorIs(t, err, goredis.Nil)
	}

	assert.Equal(t, circuitbreaker.ClosedState, hook.State())
}

func TestCircuitBreakerHook_OpensAndFailsFast(t *testing.T) {
	m := metrics.NewRedisMetrics(prometheus.NewRegistry())
	hook := NewCircuitBreakerHook(m)
	ctx := context.Background()

	process := hook.ProcessHook(failing(errors.New("connection refused")))
	for range 5 {
		assert.Error(t, process(ctx, goredis.NewIntCmd(ctx, "publish", ChangesChannel, "{}")))
	}
	require.Equal(t, circuitbreaker.OpenState, hook.State())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CircuitBreakerState))

	called := false
	process = hook.ProcessHook(func(context.Context, goredis.Cmder) error {
		called = true
		return nil
	})
	err := process(ctx, goredis.NewIntCmd(ctx, "publish", ChangesChannel, "{}"))

	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.False(t, called)
}

func TestCircuitBreakerHook_PipelineOpen(t *testing.T) {
	hook := NewCircuitBreakerHook(nil)
	ctx := context.Background()

	pipeline := hook.ProcessPipelineHook(func(context.Context, []goredis.Cmder) error {
		return errors.New("timeout")
	})
	for range 5 {
		assert.Error(t, pipeline(ctx, nil))
	}

	assert.ErrorIs(t, pipeline(ctx, nil), circuitbreaker.ErrOpen)
}

func TestMetricsHook_CountsByStatus(t *testing.T) {
	m := metrics.NewRedisMetrics(prometheus.NewRegistry())
	hook := NewMetricsHook(m)
	ctx := context.Background()

	_ = hook.ProcessHook(failing(nil))(ctx, goredis.NewIntCmd(ctx, "publish", ChangesChannel, "{}"))
	_ = hook.ProcessHook(failing(errors.New("boom")))(ctx, goredis.NewIntCmd(ctx, "publish", ChangesChannel, "{}"))
	_ = hook.ProcessHook(failing(goredis.Nil))(ctx, goredis.NewStringCmd(ctx, "get", "key"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("publish", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("publish", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("get", "success")))
}

func TestMetricsHook_NilMetrics(t *testing.T) {
	hook := NewMetricsHook(nil)
	ctx := context.Background()

	assert.NoError(t, hook.ProcessHook(failing(nil))(ctx, goredis.NewStatusCmd(ctx, "ping")))
}
