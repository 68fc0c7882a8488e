package listview

import (
	"slices"
	"strings"
)

// Row is one projected record: its id and one cell per visible column.
type Row struct {
	ID    string         `json:"id"`
	Cells map[string]any `json:"cells"`
}

// View is the rendered form of a screen.
type View[K ~string] struct {
	Columns      []Column[K] `json:"columns"`
	Rows         []Row       `json:"rows"`
	Total        int         `json:"total"`
	Empty        bool        `json:"empty"`
	EmptyMessage string      `json:"empty_message,omitempty"`
}

// Page narrows Rows to a window; Total and Empty keep describing the full
// match set.
func (v View[K]) Page(limit, offset int) View[K] {
	if offset < 0 {
		offset = 0
	}
	if offset > len(v.Rows) {
		offset = len(v.Rows)
	}
	end := len(v.Rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := v
	out.Rows = v.Rows[offset:end]
	return out
}

// Projector describes how one screen projects records of type T.
type Projector[T any, K ~string] struct {
	// Search returns the fields the search term is matched against.
	Search func(T) []string
	// Keep is an optional filter applied before the search.
	Keep func(T) bool
	// Compare orders the result; nil keeps the input order.
	Compare func(a, b T) int
	// Limit truncates the result when positive.
	Limit int
	ID    func(T) string
	Cell  func(T, K) any
	// EmptyMessage is reported when nothing matches.
	EmptyMessage string
}

// Records returns the filtered, ordered, truncated record sequence. It does
// not depend on column visibility.
func (p Projector[T, K]) Records(rows []T, term string) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if p.Keep != nil && !p.Keep(r) {
			continue
		}
		out = append(out, r)
	}
	if p.Search != nil {
		out = Filter(out, term, p.Search)
	}
	if p.Compare != nil {
		slices.SortStableFunc(out, p.Compare)
	}
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out
}

// Project builds the view. It is a pure function of its arguments.
func (p Projector[T, K]) Project(rows []T, term string, cols Columns[K]) View[K] {
	records := p.Records(rows, term)
	visible := cols.Visible()

	view := View[K]{
		Columns: visible,
		Rows:    make([]Row, 0, len(records)),
		Total:   len(records),
	}
	for _, r := range records {
		cells := make(map[string]any, len(visible))
		for _, col := range visible {
			cells[string(col.Key)] = p.Cell(r, col.Key)
		}
		view.Rows = append(view.Rows, Row{ID: p.ID(r), Cells: cells})
	}
	if len(records) == 0 {
		view.Empty = true
		view.EmptyMessage = p.EmptyMessage
	}
	return view
}

// Filter keeps rows where at least one field contains term, ignoring case.
// An empty term keeps every row. Input order is preserved.
func Filter[T any](rows []T, term string, fields func(T) []string) []T {
	if term == "" {
		out := make([]T, len(rows))
		copy(out, rows)
		return out
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		for _, f := range fields(r) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
