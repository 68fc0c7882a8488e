package listview

import (
	"context"
)

// Preferences stores column visibility per user and screen. Keys mapped to
// true are hidden.
type Preferences interface {
	HiddenColumns(ctx context.Context, userID, screen string) (map[string]bool, error)
	SetColumnVisible(ctx context.Context, userID, screen, key string, visible bool) error
}

// Screen binds a screen name to its default column set.
type Screen[K ~string] struct {
	Name     string
	Defaults Columns[K]
}

// Columns returns the defaults with the user's stored preferences applied.
// A nil store or empty user id yields the defaults.
func (s Screen[K]) Columns(ctx context.Context, prefs Preferences, userID string) (Columns[K], error) {
	if prefs == nil || userID == "" {
		return s.Defaults, nil
	}
	hidden, err := prefs.HiddenColumns(ctx, userID, s.Name)
	if err != nil {
		return s.Defaults, err
	}
	return s.Defaults.WithHidden(hidden), nil
}

// Toggle flips the visibility of key for the user and persists the result.
func (s Screen[K]) Toggle(ctx context.Context, prefs Preferences, userID, rawKey string) (Columns[K], error) {
	key, err := s.Defaults.Parse(rawKey)
	if err != nil {
		return s.Defaults, err
	}
	cols, err := s.Columns(ctx, prefs, userID)
	if err != nil {
		return cols, err
	}
	next, err := cols.Toggle(key)
	if err != nil {
		return cols, err
	}
	if prefs != nil && userID != "" {
		if err := prefs.SetColumnVisible(ctx, userID, s.Name, rawKey, next.IsVisible(key)); err != nil {
			return cols, err
		}
	}
	return next, nil
}
