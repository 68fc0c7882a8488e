// Package store provides the in-memory entity store: one ordered collection
// per entity kind, replaced wholesale on every mutation.
package store

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("record id already exists")
	ErrMissingID   = errors.New("record id is required")
)

// Collection is an insertion-ordered set of records keyed by a string id.
//
// Every successful mutation builds a new backing slice and swaps it in, so a
// slice returned by Snapshot is never modified afterwards and a changed
// backing array is the change signal.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(*T) string
}

// NewCollection creates an empty collection. idOf extracts the record id.
func NewCollection[T any](idOf func(*T) string) *Collection[T] {
	return &Collection[T]{idOf: idOf}
}

// Seed replaces the collection content with records, keeping their order.
func (c *Collection[T]) Seed(records ...T) error {
	next := make([]T, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i := range records {
		id := c.idOf(&records[i])
		if id == "" {
			return ErrMissingID
		}
		if seen[id] {
			return ErrDuplicateID
		}
		seen[id] = true
		next = append(next, records[i])
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = next
	return nil
}

func (c *Collection[T]) Create(_ context.Context, v *T) error {
	id := c.idOf(v)
	if id == "" {
		return ErrMissingID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) >= 0 {
		return ErrDuplicateID
	}
	next := make([]T, len(c.items), len(c.items)+1)
	copy(next, c.items)
	c.items = append(next, *v)
	return nil
}

func (c *Collection[T]) GetByID(_ context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := c.items[i]
	return &out, nil
}

// Update replaces the record with the same id. An unknown id leaves the
// collection untouched and returns ErrNotFound.
func (c *Collection[T]) Update(_ context.Context, v *T) error {
	id := c.idOf(v)

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	next := make([]T, len(c.items))
	copy(next, c.items)
	next[i] = *v
	c.items = next
	return nil
}

// Delete removes the record with the given id. An unknown id leaves the
// collection untouched and returns ErrNotFound.
func (c *Collection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	c.items = next
	return nil
}

// List returns copies of all records in insertion order.
func (c *Collection[T]) List(_ context.Context) ([]*T, error) {
	snap := c.Snapshot()
	out := make([]*T, len(snap))
	for i := range snap {
		v := snap[i]
		out[i] = &v
	}
	return out, nil
}

// Find returns a copy of the first record matching pred.
func (c *Collection[T]) Find(_ context.Context, pred func(*T) bool) (*T, error) {
	snap := c.Snapshot()
	for i := range snap {
		if pred(&snap[i]) {
			out := snap[i]
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// Snapshot returns the current backing slice. Callers must treat it as
// read-only.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) indexOf(id string) int {
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			return i
		}
	}
	return -1
}
