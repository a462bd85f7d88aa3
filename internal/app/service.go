package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/sortlist/internal/adapter/metrics"
	"github.com/pscheid92/sortlist/internal/catalog"
	"github.com/pscheid92/sortlist/internal/domain"
)

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultRejected = "rejected"
)

// Limits bounds page sizes for List.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

// Service is the application service over the shared list state.
type Service struct {
	catalog   domain.Catalog
	store     domain.ListStore
	publisher domain.EventPublisher
	metrics   *metrics.ListMetrics
	clock     clockwork.Clock
	limits    Limits
}

// NewService creates the list service. publisher and m may be nil.
func NewService(cat domain.Catalog, store domain.ListStore, publisher domain.EventPublisher, m *metrics.ListMetrics, clock clockwork.Clock, limits Limits) *Service {
	s := &Service{
		catalog:   cat,
		store:     store,
		publisher: publisher,
		metrics:   m,
		clock:     clock,
		limits:    limits,
	}
	if m != nil {
		m.OrderLength.Set(float64(store.Len()))
		m.SelectionSize.Set(float64(store.SelectedCount()))
	}
	return s
}

// List returns one page of the current order. The search term does not filter.
func (s *Service) List(_ context.Context, q domain.ListQuery) (domain.Page, error) {
	offset, limit := s.normalize(q.Offset, q.Limit)

	ids, total := s.store.Window(offset, limit)
	items := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		item, ok := s.catalog.Lookup(id)
		if !ok {
			// unreachable while the order stays a permutation of the catalog
			slog.Warn("Order contains id missing from catalog", "id", id)
			continue
		}
		items = append(items, item)
	}

	s.count("list", resultOK)
	return domain.Page{Items: items, Total: total}, nil
}

// Prioritize moves the item labelled exactly "Item {search}" to the front.
func (s *Service) Prioritize(ctx context.Context, search string) (bool, error) {
	trimmed := strings.TrimSpace(search)

	item, ok := s.catalog.FindByLabel(catalog.LabelFor(trimmed))
	if !ok {
		s.count("prioritize", resultNotFound)
		return false, nil
	}

	found, changed, revision := s.store.MoveToFront(item.ID)
	if !found {
		s.count("prioritize", resultNotFound)
		return false, nil
	}

	slog.DebugContext(ctx, "Item prioritized", "id", item.ID, "changed", changed)
	s.count("prioritize", resultOK)
	if changed {
		s.publish(ctx, domain.ChangeOrder, revision)
	}
	return true, nil
}

// Reorder replaces the order with ids. ids must be a permutation of the current
// order; otherwise the order is untouched and the error wraps domain.ErrInvalidOrder.
func (s *Service) Reorder(ctx context.Context, ids []int) error {
	revision, err := s.store.ReplaceOrder(ids)
	if err != nil {
		s.count("reorder", resultRejected)
		return fmt.Errorf("reorder: %w", err)
	}

	slog.DebugContext(ctx, "Order replaced", "count", len(ids), "revision", revision)
	s.count("reorder", resultOK)
	s.publish(ctx, domain.ChangeOrder, revision)
	return nil
}

// Select adds ids to the selection. Already selected and unknown ids are accepted.
func (s *Service) Select(ctx context.Context, ids []int) error {
	added, revision := s.store.AddSelected(ids)

	slog.DebugContext(ctx, "Items selected", "requested", len(ids), "added", added)
	s.count("select", resultOK)
	if added > 0 {
		s.publish(ctx, domain.ChangeSelection, revision)
	}
	return nil
}

// Deselect removes ids from the selection. Ids not selected are ignored.
func (s *Service) Deselect(ctx context.Context, ids []int) error {
	removed, revision := s.store.RemoveSelected(ids)

	slog.DebugContext(ctx, "Items deselected", "requested", len(ids), "removed", removed)
	s.count("deselect", resultOK)
	if removed > 0 {
		s.publish(ctx, domain.ChangeSelection, revision)
	}
	return nil
}

// Selected returns the current selection in ascending id order.
func (s *Service) Selected(_ context.Context) ([]int, error) {
	s.count("selected", resultOK)
	return s.store.Selected(), nil
}

func (s *Service) normalize(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = s.limits.DefaultLimit
	}
	if s.limits.MaxLimit > 0 && limit > s.limits.MaxLimit {
		limit = s.limits.MaxLimit
	}
	return offset, limit
}

func (s *Service) count(op, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Operations.WithLabelValues(op, result).Inc()
}

func (s *Service) publish(ctx context.Context, kind domain.ChangeKind, revision uint64) {
	if s.metrics != nil {
		s.metrics.Revision.Set(float64(revision))
		if kind == domain.ChangeSelection {
			s.metrics.SelectionSize.Set(float64(s.store.SelectedCount()))
		}
	}

	if s.publisher == nil {
		return
	}

	event := domain.ChangeEvent{Kind: kind, Revision: revision, At: s.clock.Now()}
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish change event", "kind", kind, "revision", revision, "error", err)
	}
}
