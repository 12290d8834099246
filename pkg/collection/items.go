package collection

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
)

// Items is a concurrent safe map of items keyed by id.
type Items struct {
	mu    sync.RWMutex
	items map[string]*Item
}

// ItemsOption defines a function that configures an Items instance.
type ItemsOption func(*Items)

// WithItemsCapacity sets the initial capacity of the items map.
func WithItemsCapacity(capacity int) ItemsOption {
	return func(i *Items) {
		i.items = make(map[string]*Item, capacity)
	}
}

// WithItemsList initializes the collection from an existing slice.
func WithItemsList(items []*Item) ItemsOption {
	return func(i *Items) {
		i.items = make(map[string]*Item, len(items))
		for _, item := range items {
			if item != nil && item.ID != "" {
				i.items[item.ID] = item
			}
		}
	}
}

// NewItems creates a new Items collection with optional configuration.
func NewItems(opts ...ItemsOption) *Items {
	i := &Items{
		items: make(map[string]*Item),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Get returns an item by id and whether it exists.
func (i *Items) Get(id string) (*Item, bool) {
	i.mu.RLock()
	item, ok := i.items[id]
	i.mu.RUnlock()
	return item, ok
}

// Set sets an item by id. Returns an error if item is nil.
func (i *Items) Set(id string, item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.items[id] = item
	return nil
}

// Add adds an item, returning an error if it already exists.
func (i *Items) Add(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if _, exists := i.items[item.ID]; exists {
		return fmt.Errorf("item with ID %s already exists", item.ID)
	}

	i.items[item.ID] = item
	return nil
}

// Delete removes an item by id, reporting whether it was present.
func (i *Items) Delete(id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, exists := i.items[id]; !exists {
		return false
	}

	delete(i.items, id)
	return true
}

// Exists checks if an item exists without returning it.
func (i *Items) Exists(id string) bool {
	i.mu.RLock()
	_, exists := i.items[id]
	i.mu.RUnlock()
	return exists
}

// Len returns the number of items.
func (i *Items) Len() int {
	i.mu.RLock()
	length := len(i.items)
	i.mu.RUnlock()
	return length
}

// List returns a slice of all items sorted by id for stable iteration.
func (i *Items) List() []*Item {
	i.mu.RLock()
	items := make([]*Item, 0, len(i.items))
	for _, item := range i.items {
		items = append(items, item)
	}
	i.mu.RUnlock()

	sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })
	return items
}

// Map returns a copy of the underlying map.
func (i *Items) Map() map[string]*Item {
	i.mu.RLock()
	defer i.mu.RUnlock()

	result := make(map[string]*Item, len(i.items))
	maps.Copy(result, i.items)
	return result
}

// ForEach applies a function to each item. The function should not modify
// the collection. If the function returns false, iteration stops early.
func (i *Items) ForEach(fn func(id string, item *Item) bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	for id, item := range i.items {
		if !fn(id, item) {
			break
		}
	}
}

// Filter returns all items for which fn returns true, sorted by id.
func (i *Items) Filter(fn func(item *Item) bool) []*Item {
	i.mu.RLock()
	matched := make([]*Item, 0)
	for _, item := range i.items {
		if fn(item) {
			matched = append(matched, item)
		}
	}
	i.mu.RUnlock()

	sort.Slice(matched, func(a, b int) bool { return matched[a].ID < matched[b].ID })
	return matched
}

// FindByNote returns the first item whose notes contain the given substring,
// or nil. The scan is case-sensitive; provenance markers are written
// verbatim, so callers search for the exact marker text.
func (i *Items) FindByNote(substr string) *Item {
	if substr == "" {
		return nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	for _, item := range i.items {
		if strings.Contains(item.Notes, substr) {
			return item
		}
	}
	return nil
}

// Replace swaps the entire contents of the collection with the given items.
func (i *Items) Replace(items []*Item) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.items = make(map[string]*Item, len(items))
	for _, item := range items {
		if item != nil && item.ID != "" {
			i.items[item.ID] = item
		}
	}
}
