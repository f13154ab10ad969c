package catalog

import (
	"fmt"

	"github.com/kailas-cloud/modmatch/internal/domain"
)

// Catalog is an ordered set of items, unique by id.
type Catalog struct {
	items []Item
}

// NewCatalog validates id uniqueness and keeps the input order.
func NewCatalog(items []Item) (Catalog, error) {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.id]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate catalog item id %q", domain.ErrInvalidRequest, it.id)
		}
		seen[it.id] = struct{}{}
	}
	cp := make([]Item, len(items))
	copy(cp, items)
	return Catalog{items: cp}, nil
}

// Items returns the items in catalog order.
func (c *Catalog) Items() []Item { return c.items }

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Composites returns the composite text of every item, in catalog order.
func (c *Catalog) Composites(layout []string) []string {
	out := make([]string, len(c.items))
	for i := range c.items {
		out[i] = c.items[i].Composite(layout)
	}
	return out
}

// Map returns a catalog whose items have fn applied to every non-empty field.
func (c *Catalog) Map(fn func(string) string) Catalog {
	out := make([]Item, len(c.items))
	for i := range c.items {
		out[i] = c.items[i].MapFields(fn)
	}
	return Catalog{items: out}
}
