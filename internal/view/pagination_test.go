package view

import (
	"encoding/json"
	"testing"
)

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestVisibleSlicePartition(t *testing.T) {
	// Every valid page together must cover the collection in order, with
	// disjoint slices.
	for _, tc := range []struct{ items, pageSize int }{
		{0, 5}, {1, 5}, {5, 5}, {12, 5}, {13, 5}, {100, 7}, {3, 1},
	} {
		items := intRange(tc.items)
		total := TotalPages(tc.items, tc.pageSize)

		var gathered []int
		for p := 1; p <= total; p++ {
			gathered = append(gathered, VisibleSlice(items, p, tc.pageSize)...)
		}
		if len(gathered) != tc.items {
			t.Fatalf("items=%d pageSize=%d: gathered %d elements", tc.items, tc.pageSize, len(gathered))
		}
		for i, v := range gathered {
			if v != i+1 {
				t.Fatalf("items=%d pageSize=%d: element %d = %d, order broken", tc.items, tc.pageSize, i, v)
			}
		}
	}
}

func TestVisibleSliceWindow(t *testing.T) {
	items := intRange(12)

	// 12 items at 5 per page: page 2 holds elements 6-10.
	got := VisibleSlice(items, 2, 5)
	if len(got) != 5 || got[0] != 6 || got[4] != 10 {
		t.Fatalf("page 2 = %v, want [6 7 8 9 10]", got)
	}

	// Last page is partial.
	got = VisibleSlice(items, 3, 5)
	if len(got) != 2 || got[0] != 11 || got[1] != 12 {
		t.Fatalf("page 3 = %v, want [11 12]", got)
	}
}

func TestVisibleSliceOutOfRange(t *testing.T) {
	items := intRange(12)

	for _, tc := range []struct{ page, pageSize int }{
		{4, 5},  // beyond totalPages
		{99, 5}, // far beyond
		{0, 5},  // page < 1
		{-1, 5},
		{1, 0}, // degenerate page size
	} {
		if got := VisibleSlice(items, tc.page, tc.pageSize); len(got) != 0 {
			t.Errorf("VisibleSlice(12 items, %d, %d) = %v, want empty", tc.page, tc.pageSize, got)
		}
	}

	if got := VisibleSlice([]int{}, 1, 5); len(got) != 0 {
		t.Errorf("VisibleSlice(empty, 1, 5) = %v, want empty", got)
	}
}

func TestTotalPages(t *testing.T) {
	for _, tc := range []struct{ items, pageSize, want int }{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{10, 0, 0},
	} {
		if got := TotalPages(tc.items, tc.pageSize); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.items, tc.pageSize, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	for _, tc := range []struct{ page, total, want int }{
		{0, 3, 1},
		{-5, 3, 1},
		{1, 3, 1},
		{3, 3, 3},
		{4, 3, 3},
		{2, 0, 1}, // empty collection still pins to page 1
	} {
		if got := Clamp(tc.page, tc.total); got != tc.want {
			t.Errorf("Clamp(%d, %d) = %d, want %d", tc.page, tc.total, got, tc.want)
		}
	}
}

func TestPageIndicators(t *testing.T) {
	e := Ellipsis
	tests := []struct {
		name                  string
		current, total, delta int
		want                  []PageItem
	}{
		{"suppressed single page", 1, 1, 2, nil},
		{"suppressed empty", 1, 0, 2, nil},
		{"two pages", 1, 2, 2, []PageItem{1, 2}},
		{"range fully covered", 2, 3, 2, []PageItem{1, 2, 3}},
		{"middle of long run", 5, 10, 2, []PageItem{1, e, 3, 4, 5, 6, 7, e, 10}},
		{"near start", 2, 10, 2, []PageItem{1, 2, 3, 4, e, 10}},
		{"near end", 9, 10, 2, []PageItem{1, e, 7, 8, 9, 10}},
		{"first page long run", 1, 10, 2, []PageItem{1, 2, 3, e, 10}},
		{"last page long run", 10, 10, 2, []PageItem{1, e, 8, 9, 10}},
		{"delta one", 5, 9, 1, []PageItem{1, e, 4, 5, 6, e, 9}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PageIndicators(tc.current, tc.total, tc.delta)
			if len(got) != len(tc.want) {
				t.Fatalf("PageIndicators(%d,%d,%d) = %v, want %v", tc.current, tc.total, tc.delta, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("PageIndicators(%d,%d,%d) = %v, want %v", tc.current, tc.total, tc.delta, got, tc.want)
				}
			}
		})
	}
}

func TestPageIndicatorsShape(t *testing.T) {
	// For any clamped current page the sequence starts at 1, ends at the
	// last page, and never emits two consecutive ellipses.
	for total := 2; total <= 25; total++ {
		for current := 1; current <= total; current++ {
			seq := PageIndicators(current, total, 2)
			if len(seq) == 0 {
				t.Fatalf("total=%d current=%d: empty sequence", total, current)
			}
			if seq[0] != 1 {
				t.Fatalf("total=%d current=%d: starts with %v", total, current, seq[0])
			}
			if seq[len(seq)-1] != PageItem(total) {
				t.Fatalf("total=%d current=%d: ends with %v", total, current, seq[len(seq)-1])
			}
			for i := 1; i < len(seq); i++ {
				if seq[i] == Ellipsis && seq[i-1] == Ellipsis {
					t.Fatalf("total=%d current=%d: consecutive ellipses in %v", total, current, seq)
				}
			}
		}
	}
}

func TestPageItemJSON(t *testing.T) {
	raw, err := json.Marshal([]PageItem{1, Ellipsis, 3})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `[1,"...",3]` {
		t.Errorf("marshal = %s, want [1,\"...\",3]", raw)
	}
}
