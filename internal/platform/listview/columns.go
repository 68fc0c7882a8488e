// Package listview derives what a management screen shows from a full
// collection: a search filter, an optional ordering and a column mask.
package listview

import (
	"errors"
	"fmt"
)

var ErrUnknownColumn = errors.New("unknown column")

// Column is one entry of a screen's column-visibility map.
type Column[K ~string] struct {
	Key     K      `json:"key"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// Columns is the ordered, closed set of columns of one screen. Values are
// immutable: every setter returns a new Columns.
type Columns[K ~string] struct {
	cols []Column[K]
}

func NewColumns[K ~string](cols ...Column[K]) Columns[K] {
	out := make([]Column[K], len(cols))
	copy(out, cols)
	return Columns[K]{cols: out}
}

// All returns every column, visible or not, in display order.
func (c Columns[K]) All() []Column[K] {
	out := make([]Column[K], len(c.cols))
	copy(out, c.cols)
	return out
}

// Visible returns the visible columns in display order.
func (c Columns[K]) Visible() []Column[K] {
	out := make([]Column[K], 0, len(c.cols))
	for _, col := range c.cols {
		if col.Visible {
			out = append(out, col)
		}
	}
	return out
}

func (c Columns[K]) Has(key K) bool {
	return c.index(key) >= 0
}

func (c Columns[K]) IsVisible(key K) bool {
	i := c.index(key)
	return i >= 0 && c.cols[i].Visible
}

// Parse converts a raw key into a column key of this set.
func (c Columns[K]) Parse(raw string) (K, error) {
	key := K(raw)
	if !c.Has(key) {
		return key, fmt.Errorf("%w: %q", ErrUnknownColumn, raw)
	}
	return key, nil
}

func (c Columns[K]) SetVisible(key K, visible bool) (Columns[K], error) {
	i := c.index(key)
	if i < 0 {
		return c, fmt.Errorf("%w: %q", ErrUnknownColumn, string(key))
	}
	next := c.All()
	next[i].Visible = visible
	return Columns[K]{cols: next}, nil
}

func (c Columns[K]) Toggle(key K) (Columns[K], error) {
	i := c.index(key)
	if i < 0 {
		return c, fmt.Errorf("%w: %q", ErrUnknownColumn, string(key))
	}
	return c.SetVisible(key, !c.cols[i].Visible)
}

// WithHidden applies stored preferences: keys mapped to true are hidden,
// keys mapped to false are shown. Keys outside the set are ignored.
func (c Columns[K]) WithHidden(hidden map[string]bool) Columns[K] {
	if len(hidden) == 0 {
		return c
	}
	next := c.All()
	for i := range next {
		if h, ok := hidden[string(next[i].Key)]; ok {
			next[i].Visible = !h
		}
	}
	return Columns[K]{cols: next}
}

func (c Columns[K]) index(key K) int {
	for i := range c.cols {
		if c.cols[i].Key == key {
			return i
		}
	}
	return -1
}
