// Package view holds the pure view-model functions behind the dashboard:
// windowed pagination, compressed page-indicator sequences, and the
// grade/status tier classifiers. Every function here is total and free of
// side effects, so callers may recompute on every request without
// coordination.
package view

import "encoding/json"

// PageItem is one entry of a compressed pager sequence: a 1-based page
// number, or Ellipsis standing in for an omitted run of pages.
type PageItem int

// Ellipsis marks an elided run of page numbers. It serializes as "..."
// so the rendering layer receives the same mixed sequence the pager
// control expects.
const Ellipsis PageItem = -1

// MarshalJSON renders page numbers as integers and the elision marker as
// the literal string "...".
func (p PageItem) MarshalJSON() ([]byte, error) {
	if p == Ellipsis {
		return []byte(`"..."`), nil
	}
	return json.Marshal(int(p))
}

// TotalPages returns ceil(totalItems/pageSize), and 0 when there are no
// items or the page size is not positive.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Clamp forces a requested page into [1, max(totalPages, 1)].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// VisibleSlice returns the window of items shown on the given 1-based page,
// clipped to the collection bounds. Pages beyond the available range and
// non-positive inputs yield an empty slice.
func VisibleSlice[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize <= 0 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageIndicators produces the compressed pager sequence for the given
// current page: always page 1, the middle range [current-delta,
// current+delta] clipped to (1, total), always the last page, with a
// single Ellipsis wherever a run of pages is omitted. When total <= 1 the
// pager is suppressed entirely and nil is returned.
func PageIndicators(current, total, delta int) []PageItem {
	if total <= 1 {
		return nil
	}

	seq := []PageItem{1}

	lo := max(2, current-delta)
	hi := min(total-1, current+delta)

	if current-delta > 2 {
		seq = append(seq, Ellipsis)
	}
	for i := lo; i <= hi; i++ {
		seq = append(seq, PageItem(i))
	}
	if current+delta < total-1 {
		seq = append(seq, Ellipsis)
	}

	return append(seq, PageItem(total))
}
