// Package catalog holds the fixed set of items the list is built from.
package catalog

import (
	"fmt"
	"strconv"

	"github.com/pscheid92/sortlist/internal/domain"
)

const labelPrefix = "Item "

// Catalog is an immutable lookup table built once at startup. Safe for concurrent
// reads without locking.
type Catalog struct {
	items   []domain.Item
	byLabel map[string]int
}

// New builds a catalog with ids 1..size and labels "Item {id}".
func New(size int) (*Catalog, error) {
	if size <= 0 {
		return nil, fmt.Errorf("catalog size must be positive, got %d", size)
	}

	c := &Catalog{
		items:   make([]domain.Item, size),
		byLabel: make(map[string]int, size),
	}
	for i := range size {
		id := i + 1
		c.items[i] = domain.Item{ID: id, Label: Label(id)}
		c.byLabel[c.items[i].Label] = id
	}
	return c, nil
}

// Label formats the label of the item with the given id.
func Label(id int) string {
	return labelPrefix + strconv.Itoa(id)
}

// LabelFor returns the label a search term is matched against.
func LabelFor(search string) string {
	return labelPrefix + search
}

func (c *Catalog) Lookup(id int) (domain.Item, bool) {
	if id < 1 || id > len(c.items) {
		return domain.Item{}, false
	}
	return c.items[id-1], true
}

// FindByLabel matches labels by exact equality.
func (c *Catalog) FindByLabel(label string) (domain.Item, bool) {
	id, ok := c.byLabel[label]
	if !ok {
		return domain.Item{}, false
	}
	return c.items[id-1], true
}

// IDs returns all ids in ascending order.
func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.items))
	for i, item := range c.items {
		ids[i] = item.ID
	}
	return ids
}

func (c *Catalog) Len() int {
	return len(c.items)
}
