package pagination

const (
	// DefaultPageSize is the storefront grid page size.
	DefaultPageSize = 12
	// MaxPageSize caps how many items any page request can ask for.
	MaxPageSize = 48
)

// Page describes a resolved page of a larger list.
type Page struct {
	Number    int `json:"page"`
	Size      int `json:"pageSize"`
	Total     int `json:"total"`
	PageCount int `json:"pageCount"`
}

// NormalizeSize enforces the configured default and maximum page sizes.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// NormalizePage clamps a requested page number to 1 or above.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// PageCount returns how many pages a list of total items spans. An empty list
// still has one page so the grid always renders page 1.
func PageCount(total, size int) int {
	size = NormalizeSize(size)
	count := (total + size - 1) / size
	if count < 1 {
		return 1
	}
	return count
}

// Paginate slices items down to the requested 1-indexed page. A page past
// the end returns an empty slice, not an error. Callers showing a stale
// page index reset it to 1 when the selection changes instead of relying
// on clamping here.
func Paginate[T any](items []T, page, size int) ([]T, Page) {
	size = NormalizeSize(size)
	count := PageCount(len(items), size)
	page = NormalizePage(page)

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], Page{
		Number:    page,
		Size:      size,
		Total:     len(items),
		PageCount: count,
	}
}
