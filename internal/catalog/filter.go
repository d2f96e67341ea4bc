package catalog

import (
	"sort"
	"strings"

	pkgcatalog "github.com/zenskecarape/storefront-api/pkg/catalog"
)

// Selection holds the active filter choices. Within a dimension the values
// combine with OR; across dimensions they combine with AND. An empty dimension
// does not constrain the result.
type Selection struct {
	Colors       []string `json:"colors,omitempty"`
	Sizes        []string `json:"sizes,omitempty"`
	Deniers      []string `json:"deniers,omitempty"`
	ProductTypes []string `json:"productTypes,omitempty"`
	Features     []string `json:"features,omitempty"`
	Query        string   `json:"query,omitempty"`
	InStockOnly  bool     `json:"inStockOnly,omitempty"`
}

// IsZero reports whether no filter is active.
func (s Selection) IsZero() bool {
	return len(s.Colors) == 0 && len(s.Sizes) == 0 && len(s.Deniers) == 0 &&
		len(s.ProductTypes) == 0 && len(s.Features) == 0 &&
		s.Query == "" && !s.InStockOnly
}

// Key returns a stable identity for the selection, used for page-reset
// detection and cache keys. Value order within a dimension does not matter.
func (s Selection) Key() string {
	var b strings.Builder
	for _, dim := range [][]string{s.Colors, s.Sizes, s.Deniers, s.ProductTypes, s.Features} {
		sorted := append([]string(nil), dim...)
		sort.Strings(sorted)
		b.WriteString(strings.Join(sorted, ","))
		b.WriteByte('|')
	}
	b.WriteString(strings.ToLower(strings.TrimSpace(s.Query)))
	b.WriteByte('|')
	if s.InStockOnly {
		b.WriteString("instock")
	}
	return b.String()
}

// Matches reports whether a product passes every active dimension.
func (s Selection) Matches(p pkgcatalog.Product) bool {
	if s.InStockOnly && !p.InStock {
		return false
	}
	if len(s.Colors) > 0 && !matchesAny(s.Colors, p.HasColor) {
		return false
	}
	if len(s.Sizes) > 0 && !matchesAny(s.Sizes, p.HasSize) {
		return false
	}
	if len(s.Deniers) > 0 {
		if p.Denier == nil {
			return false
		}
		if !matchesAny(s.Deniers, func(id string) bool { return p.Denier.ID == id }) {
			return false
		}
	}
	if len(s.ProductTypes) > 0 && !intersects(s.ProductTypes, p.ProductTypes) {
		return false
	}
	if len(s.Features) > 0 && !intersects(s.Features, p.Features) {
		return false
	}
	if q := strings.TrimSpace(s.Query); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			return false
		}
	}
	return true
}

func intersects(want, have []string) bool {
	for _, w := range want {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}

func matchesAny(ids []string, has func(string) bool) bool {
	for _, id := range ids {
		if has(id) {
			return true
		}
	}
	return false
}

// Apply filters products down to those matching the selection, preserving
// input order.
func Apply(products []pkgcatalog.Product, sel Selection) []pkgcatalog.Product {
	if sel.IsZero() {
		return products
	}
	out := make([]pkgcatalog.Product, 0, len(products))
	for _, p := range products {
		if sel.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
