package domain

import "context"

// Item is an immutable catalog entry.
type Item struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Catalog is the fixed set of addressable items.
type Catalog interface {
	Lookup(id int) (Item, bool)
	FindByLabel(label string) (Item, bool)
	IDs() []int
	Len() int
}

// ListQuery selects a page of the current order. Search is accepted but does not
// filter the result.
type ListQuery struct {
	Offset int
	Limit  int
	Search string
}

// Page is one window of the ordered collection.
type Page struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

// ListStore owns the mutable order and selection.
type ListStore interface {
	Window(offset, limit int) (ids []int, total int)
	Len() int
	MoveToFront(id int) (found, changed bool, revision uint64)
	ReplaceOrder(ids []int) (revision uint64, err error)
	AddSelected(ids []int) (added int, revision uint64)
	RemoveSelected(ids []int) (removed int, revision uint64)
	Selected() []int
	SelectedCount() int
}

// ListService is the application layer contract used by the HTTP handlers.
type ListService interface {
	List(ctx context.Context, q ListQuery) (Page, error)
	Prioritize(ctx context.Context, search string) (bool, error)
	Reorder(ctx context.Context, ids []int) error
	Select(ctx context.Context, ids []int) error
	Deselect(ctx context.Context, ids []int) error
	Selected(ctx context.Context) ([]int, error)
}
