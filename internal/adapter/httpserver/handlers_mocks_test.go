package httpserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/sortlist/internal/domain"
	"github.com/pscheid92/sortlist/internal/platform/config"
)

// --- Mock implementations ---

type mockListService struct {
	listFn       func(ctx context.Context, q domain.ListQuery) (domain.Page, error)
	prioritizeFn func(ctx context.Context, search string) (bool, error)
	reorderFn    func(ctx context.Context, ids []int) error
	selectFn     func(ctx context.Context, ids []int) error
	deselectFn   func(ctx context.Context, ids []int) error
	selectedFn   func(ctx context.Context) ([]int, error)
}

func (m *mockListService) List(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return domain.Page{Items: []domain.Item{}}, nil
}

func (m *mockListService) Prioritize(ctx context.Context, search string) (bool, error) {
	if m.prioritizeFn != nil {
		return m.prioritizeFn(ctx, search)
	}
	return false, nil
}

func (m *mockListService) Reorder(ctx context.Context, ids []int) error {
	if m.reorderFn != nil {
		return m.reorderFn(ctx, ids)
	}
	return nil
}

func (m *mockListService) Select(ctx context.Context, ids []int) error {
	if m.selectFn != nil {
		return m.selectFn(ctx, ids)
	}
	return nil
}

func (m *mockListService) Deselect(ctx context.Context, ids []int) error {
	if m.deselectFn != nil {
		return m.deselectFn(ctx, ids)
	}
	return nil
}

func (m *mockListService) Selected(ctx context.Context) ([]int, error) {
	if m.selectedFn != nil {
		return m.selectedFn(ctx)
	}
	return nil, nil
}

// --- Test helpers ---

var testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		Port:               "0",
		CatalogSize:        1000,
		ListDefaultLimit:   1000,
		ListMaxLimit:       1000,
		CORSAllowedOrigins: "*",
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
	}
}

func newTestServer(t *testing.T, list domain.ListService, opts ...func(*Server)) *Server {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testStart)
	srv := &Server{
		echo:      echo.New(),
		config:    testConfig(),
		list:      list,
		clock:     clock,
		startTime: clock.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

func withClock(clock clockwork.Clock) func(*Server) {
	return func(s *Server) {
		s.clock = clock
		s.startTime = clock.Now()
	}
}

// callHandler invokes a handler through ErrorHandlingMiddleware, matching the
// production middleware chain.
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware(nil)(handler)(c)
}

func newJSONContext(srv *Server, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return srv.echo.NewContext(req, rec), rec
}

func newGetContext(srv *Server, target string) (echo.Context, *httptest.ResponseRecorder) {
	return newJSONContext(srv, http.MethodGet, target, "")
}
