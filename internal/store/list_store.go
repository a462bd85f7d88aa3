package store

import (
	"slices"
	"sync"
)

// ListStore keeps the order as an array plus a position index so that a page read
// copies only the requested window and a move-to-front touches only the ids ahead of
// the moved one.
type ListStore struct {
	mu       sync.RWMutex
	order    []int
	position map[int]int
	selected map[int]struct{}
	revision uint64
}

// New creates a store whose initial order is ids, in the given sequence.
func New(ids []int) *ListStore {
	s := &ListStore{
		selected: make(map[int]struct{}),
	}
	s.setOrderLocked(slices.Clone(ids))
	return s
}

// Window returns a copy of order[offset:offset+limit] and the order length. Offsets
// past the end yield an empty window.
func (s *ListStore) Window(offset, limit int) ([]int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.order)
	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return []int{}, total
	}
	end := min(offset+limit, total)
	return slices.Clone(s.order[offset:end]), total
}

func (s *ListStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// MoveToFront moves id to position 0 keeping the relative order of every other id.
// found is false if id is not part of the order. An id already at the front is found
// but not changed, and keeps the revision.
func (s *ListStore) MoveToFront(id int) (found, changed bool, revision uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.position[id]
	if !ok {
		return false, false, s.revision
	}
	if pos == 0 {
		return true, false, s.revision
	}

	copy(s.order[1:pos+1], s.order[:pos])
	s.order[0] = id
	for i := 0; i <= pos; i++ {
		s.position[s.order[i]] = i
	}
	s.revision++
	return true, true, s.revision
}

// ReplaceOrder swaps in ids as the new order if it is a permutation of the current
// one. Otherwise the order is left untouched and an *OrderError is returned.
func (s *ListStore) ReplaceOrder(ids []int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPermutationLocked(ids); err != nil {
		return s.revision, err
	}

	s.setOrderLocked(slices.Clone(ids))
	s.revision++
	return s.revision, nil
}

// AddSelected adds ids to the selection. Returns how many were not selected before.
func (s *ListStore) AddSelected(ids []int) (int, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, id := range ids {
		if _, ok := s.selected[id]; ok {
			continue
		}
		s.selected[id] = struct{}{}
		added++
	}
	if added > 0 {
		s.revision++
	}
	return added, s.revision
}

// RemoveSelected removes ids from the selection. Returns how many were selected.
func (s *ListStore) RemoveSelected(ids []int) (int, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if _, ok := s.selected[id]; !ok {
			continue
		}
		delete(s.selected, id)
		removed++
	}
	if removed > 0 {
		s.revision++
	}
	return removed, s.revision
}

// Selected returns the selection in ascending id order.
func (s *ListStore) Selected() []int {
	s.mu.RLock()
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

func (s *ListStore) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

func (s *ListStore) setOrderLocked(ids []int) {
	s.order = ids
	s.position = make(map[int]int, len(ids))
	for i, id := range ids {
		s.position[id] = i
	}
}
