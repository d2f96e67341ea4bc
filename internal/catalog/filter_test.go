package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgcatalog "github.com/zenskecarape/storefront-api/pkg/catalog"
)

func product(id string, colors []string, sizes []string, denier string, inStock bool) pkgcatalog.Product {
	p := pkgcatalog.Product{ID: id, Name: id, Slug: id, InStock: inStock}
	p.Colors = pkgcatalog.ResolveColors(colors)
	p.Sizes = pkgcatalog.ResolveSizes(sizes)
	p.Denier = pkgcatalog.ResolveDenier(denier)
	return p
}

func testProducts() []pkgcatalog.Product {
	return []pkgcatalog.Product{
		product("p1", []string{"crna"}, []string{"s", "m"}, "20", true),
		product("p2", []string{"bez", "crna"}, []string{"m"}, "40", true),
		product("p3", []string{"bela"}, []string{"l"}, "20", false),
		product("p4", []string{"teget"}, []string{"one-size"}, "", true),
	}
}

func ids(products []pkgcatalog.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyEmptySelectionReturnsAll(t *testing.T) {
	got := Apply(testProducts(), Selection{})
	assert.Len(t, got, 4)
}

func TestApplyColorsCombineWithOr(t *testing.T) {
	got := Apply(testProducts(), Selection{Colors: []string{"crna", "bela"}})
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(got))
}

func TestApplyDimensionsCombineWithAnd(t *testing.T) {
	got := Apply(testProducts(), Selection{Colors: []string{"crna"}, Sizes: []string{"m"}, Deniers: []string{"20"}})
	assert.Equal(t, []string{"p1"}, ids(got))
}

func TestApplyDenierExcludesProductsWithoutOne(t *testing.T) {
	got := Apply(testProducts(), Selection{Deniers: []string{"20", "40"}})
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(got))
}

func TestApplyInStockOnly(t *testing.T) {
	got := Apply(testProducts(), Selection{InStockOnly: true})
	assert.Equal(t, []string{"p1", "p2", "p4"}, ids(got))
}

func TestApplyPreservesOrder(t *testing.T) {
	got := Apply(testProducts(), Selection{Sizes: []string{"m", "l"}})
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(got))
}

func TestApplyQueryMatchesNameSubstring(t *testing.T) {
	products := []pkgcatalog.Product{
		{ID: "p1", Name: "Hulahopke 20 Den"},
		{ID: "p2", Name: "Samostojeće čarape"},
		{ID: "p3", Name: "Sokne"},
	}
	got := Apply(products, Selection{Query: "hulahopke"})
	assert.Equal(t, []string{"p1"}, ids(got))

	got = Apply(products, Selection{Query: "  ČARAPE "})
	assert.Equal(t, []string{"p2"}, ids(got))

	got = Apply(products, Selection{Query: "dokolenice"})
	assert.Empty(t, ids(got))
}

func TestApplyFeaturesCombineWithOr(t *testing.T) {
	products := []pkgcatalog.Product{
		{ID: "p1", Name: "a", Features: []string{"sa-uzorkom"}},
		{ID: "p2", Name: "b", Features: []string{"bez-sava", "pojacane"}},
		{ID: "p3", Name: "c"},
	}
	got := Apply(products, Selection{Features: []string{"bez-sava", "sa-uzorkom"}})
	assert.Equal(t, []string{"p1", "p2"}, ids(got))
}

func TestSelectionKeyIgnoresValueOrder(t *testing.T) {
	a := Selection{Colors: []string{"crna", "bela"}, Sizes: []string{"m"}}
	b := Selection{Colors: []string{"bela", "crna"}, Sizes: []string{"m"}}
	assert.Equal(t, a.Key(), b.Key())

	c := Selection{Colors: []string{"crna"}}
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestSelectionKeySeparatesDimensions(t *testing.T) {
	a := Selection{Colors: []string{"m"}}
	b := Selection{Sizes: []string{"m"}}
	assert.NotEqual(t, a.Key(), b.Key())
}
