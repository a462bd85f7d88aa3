package store

import (
	"fmt"
	"strings"

	"github.com/pscheid92/sortlist/internal/domain"
)

// maxReportedIDs caps how many offending ids an OrderError lists per category.
const maxReportedIDs = 10

// OrderError describes why a proposed order was rejected.
type OrderError struct {
	ExpectedLen int
	GotLen      int

	DuplicateCount int
	UnknownCount   int
	MissingCount   int

	// Samples of offending ids, at most maxReportedIDs each.
	Duplicates []int
	Unknown    []int
	Missing    []int
}

func (e *OrderError) Error() string {
	var parts []string
	if e.GotLen != e.ExpectedLen {
		parts = append(parts, fmt.Sprintf("expected %d ids, got %d", e.ExpectedLen, e.GotLen))
	}
	if e.DuplicateCount > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicate", e.DuplicateCount))
	}
	if e.UnknownCount > 0 {
		parts = append(parts, fmt.Sprintf("%d unknown", e.UnknownCount))
	}
	if e.MissingCount > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", e.MissingCount))
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidOrder, strings.Join(parts, ", "))
}

func (e *OrderError) Unwrap() error {
	return domain.ErrInvalidOrder
}

func (s *ListStore) checkPermutationLocked(ids []int) error {
	e := &OrderError{ExpectedLen: len(s.order), GotLen: len(ids)}

	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, known := s.position[id]; !known {
			e.UnknownCount++
			e.Unknown = appendSample(e.Unknown, id)
			continue
		}
		if _, dup := seen[id]; dup {
			e.DuplicateCount++
			e.Duplicates = appendSample(e.Duplicates, id)
			continue
		}
		seen[id] = struct{}{}
	}

	if len(seen) != len(s.order) {
		for _, id := range s.order {
			if _, ok := seen[id]; !ok {
				e.MissingCount++
				e.Missing = appendSample(e.Missing, id)
			}
		}
	}

	if e.DuplicateCount == 0 && e.UnknownCount == 0 && e.MissingCount == 0 {
		return nil
	}
	return e
}

func appendSample(ids []int, id int) []int {
	if len(ids) >= maxReportedIDs {
		return ids
	}
	return append(ids, id)
}
