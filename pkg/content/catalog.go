package content

import (
	"github.com/pkg/errors"
)

// ErrDuplicateID indicates a catalog contained the same identifier twice.
var ErrDuplicateID = errors.New("duplicate item id")

// Catalog is an ordered collection of items of one kind (jobs or projects)
// with O(1) lookup by identifier.
type Catalog struct {
	items []Item
	index map[string]int
}

// NewCatalog builds a catalog from items, rejecting duplicate identifiers.
func NewCatalog(items []Item) (catalog *Catalog, err error) {
	catalog = &Catalog{
		items: items,
		index: make(map[string]int, len(items)),
	}

	for i, item := range items {
		if item.ID == "" {
			err = errors.Errorf("item at index %d missing id", i)
			return catalog, err
		}
		if _, exists := catalog.index[item.ID]; exists {
			err = errors.Wrapf(ErrDuplicateID, "id %q", item.ID)
			return catalog, err
		}
		catalog.index[item.ID] = i
	}

	return catalog, err
}

// Items returns the catalog entries in load order.
func (c *Catalog) Items() (items []Item) {
	items = c.items
	return items
}

// Get returns the item with the given identifier.
func (c *Catalog) Get(id string) (item Item, found bool) {
	i, found := c.index[id]
	if found {
		item = c.items[i]
	}
	return item, found
}

// Has reports whether the identifier exists in the catalog.
func (c *Catalog) Has(id string) (found bool) {
	_, found = c.index[id]
	return found
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() (n int) {
	n = len(c.items)
	return n
}
