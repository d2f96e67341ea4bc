package pagination

import "testing"

func TestNormalizeSize(t *testing.T) {
	if got := NormalizeSize(0); got != DefaultPageSize {
		t.Fatalf("expected default size, got %d", got)
	}
	if got := NormalizeSize(-3); got != DefaultPageSize {
		t.Fatalf("expected default size for negative input, got %d", got)
	}
	if got := NormalizeSize(500); got != MaxPageSize {
		t.Fatalf("expected max size cap, got %d", got)
	}
	if got := NormalizeSize(24); got != 24 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 12, 1},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{24, 12, 2},
		{25, 12, 3},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total, tc.size); got != tc.want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestPaginateSlices(t *testing.T) {
	items := make([]int, 30)
	for i := range items {
		items[i] = i
	}

	page1, meta := Paginate(items, 1, 12)
	if len(page1) != 12 || page1[0] != 0 || page1[11] != 11 {
		t.Fatalf("unexpected first page %v", page1)
	}
	if meta.PageCount != 3 || meta.Total != 30 {
		t.Fatalf("unexpected meta %+v", meta)
	}

	page3, meta := Paginate(items, 3, 12)
	if len(page3) != 6 || page3[0] != 24 {
		t.Fatalf("unexpected last page %v", page3)
	}
	if meta.Number != 3 {
		t.Fatalf("unexpected page number %d", meta.Number)
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	items := []string{"a", "b", "c"}

	got, meta := Paginate(items, 99, 2)
	if len(got) != 0 {
		t.Fatalf("expected empty slice for out-of-range page, got %v", got)
	}
	if meta.Number != 99 || meta.PageCount != 2 {
		t.Fatalf("unexpected meta %+v", meta)
	}

	got, meta = Paginate(items, 0, 2)
	if len(got) != 2 || meta.Number != 1 {
		t.Fatalf("expected page 1, got %v meta %+v", got, meta)
	}
}

func TestPaginateEmpty(t *testing.T) {
	got, meta := Paginate([]int(nil), 1, 12)
	if len(got) != 0 {
		t.Fatalf("expected empty page, got %v", got)
	}
	if meta.PageCount != 1 || meta.Number != 1 {
		t.Fatalf("empty list should still report one page, got %+v", meta)
	}
}
