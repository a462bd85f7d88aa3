package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthOK(_ context.Context) error { return nil }

func healthErr(msg string) func(context.Context) error {
	return func(_ context.Context) error { return errors.New(msg) }
}

func TestHandleLiveness(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testStart)
	srv := newTestServer(t, &mockListService{}, withClock(clock))
	clock.Advance(90 * time.Second)

	c, rec := newGetContext(srv, "/health/live")
	require.NoError(t, srv.handleLiveness(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.InDelta(t, 90.0, body["uptime"], 0.001)
}

func TestHandleReadiness_NoChecks(t *testing.T) {
	srv := newTestServer(t, &mockListService{})

	c, rec := newGetContext(srv, "/health/ready")
	require.NoError(t, srv.handleReadiness(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_AllHealthy(t *testing.T) {
	srv := newTestServer(t, &mockListService{},
		withHealthChecks(
			HealthCheck{Name: "redis", Check: healthOK},
			HealthCheck{Name: "catalog", Check: healthOK},
		),
	)

	c, rec := newGetContext(srv, "/health/ready")
	require.NoError(t, srv.handleReadiness(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_RedisDown(t *testing.T) {
	srv := newTestServer(t, &mockListService{},
		withHealthChecks(
			HealthCheck{Name: "catalog", Check: healthOK},
			HealthCheck{Name: "redis", Check: healthErr("connection refused")},
		),
	)

	c, rec := newGetContext(srv, "/health/ready")
	require.NoError(t, srv.handleReadiness(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	assert.Contains(t, rec.Body.String(), `"failed_check":"redis"`)
	assert.Contains(t, rec.Body.String(), `"error":"connection refused"`)
}

func TestHandleReadiness_ChecksHaveDeadline(t *testing.T) {
	var hasDeadline bool
	srv := newTestServer(t, &mockListService{},
		withHealthChecks(HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		}}),
	)

	c, _ := newGetContext(srv, "/health/ready")
	require.NoError(t, srv.handleReadiness(c))

	assert.True(t, hasDeadline)
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(t, &mockListService{})

	c, rec := newGetContext(srv, "/version")
	require.NoError(t, srv.handleVersion(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"service":"sortlist"`)
	assert.Contains(t, body, `"version"`)
	assert.Contains(t, body, `"commit"`)
	assert.Contains(t, body, `"build_time"`)
	assert.Contains(t, body, `"go_version"`)
}
