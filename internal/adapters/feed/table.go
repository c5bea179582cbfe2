// Package feed fetches externally hosted tabular feeds and maps their
// rows onto domain models.
package feed

import "strings"

// Table is a read-only named-column view over fetched rows. Column names
// match case-insensitively with surrounding whitespace stripped, so header
// drift in the sheet ("Due Date" vs "due date ") does not break lookups.
// The lookup index is built once per fetch.
type Table struct {
	headers []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header row and data rows. On duplicate
// headers the first column wins.
func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{
		headers: headers,
		index:   make(map[string]int, len(headers)),
		rows:    rows,
	}
	for i, h := range headers {
		key := normalizeHeader(h)
		if _, exists := t.index[key]; !exists {
			t.index[key] = i
		}
	}
	return t
}

// Empty returns a zero-row table carrying the expected column set. Used as
// the fallback for unreachable or malformed feeds.
func Empty(columns ...string) *Table {
	return NewTable(columns, nil)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Headers returns the raw header row.
func (t *Table) Headers() []string {
	if t == nil {
		return nil
	}
	return t.headers
}

// HasColumn reports whether the named column is present.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[normalizeHeader(name)]
	return ok
}

// Value returns the trimmed cell at row for the named column. Absent
// columns and ragged rows yield the empty default rather than an error.
func (t *Table) Value(row int, name string) string {
	if t == nil || row < 0 || row >= len(t.rows) {
		return ""
	}
	idx, ok := t.index[normalizeHeader(name)]
	if !ok || idx >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][idx])
}

// Column returns every value of the named column. An absent column yields
// an empty-string series of full length, so a missing logical field never
// fails the whole fetch.
func (t *Table) Column(name string) []string {
	out := make([]string, t.Len())
	for i := range out {
		out[i] = t.Value(i, name)
	}
	return out
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
