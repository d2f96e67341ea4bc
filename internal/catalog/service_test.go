package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgcatalog "github.com/zenskecarape/storefront-api/pkg/catalog"
	"github.com/zenskecarape/storefront-api/pkg/config"
	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/metrics"
)

type fakeSource struct {
	products     []pkgcatalog.Product
	listCalls    int
	bySlugCalls  int
	failListWith error
}

func (f *fakeSource) ListProducts(ctx context.Context) ([]pkgcatalog.Product, error) {
	f.listCalls++
	if f.failListWith != nil {
		return nil, f.failListWith
	}
	return f.products, nil
}

func (f *fakeSource) GetProductBySlug(ctx context.Context, slug string) (pkgcatalog.Product, error) {
	f.bySlugCalls++
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return pkgcatalog.Product{}, errors.New("not found")
}

func (f *fakeSource) ListCategories(ctx context.Context) ([]pkgcatalog.Category, error) {
	return []pkgcatalog.Category{{ID: "c1", Name: "Čarape", Slug: "carape"}}, nil
}

func (f *fakeSource) GetCategoryWithProducts(ctx context.Context, slug string) (pkgcatalog.Category, error) {
	return pkgcatalog.Category{ID: "c1", Slug: slug, Products: f.products}, nil
}

func (f *fakeSource) GetHomepage(ctx context.Context) (pkgcatalog.Homepage, error) {
	return pkgcatalog.Homepage{HeroTitle: "Nova kolekcija"}, nil
}

type fakeCache struct {
	store map[string]string
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.store[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.sets++
	switch v := value.(type) {
	case []byte:
		f.store[key] = string(v)
	case string:
		f.store[key] = v
	}
	return nil
}

func (f *fakeCache) CacheKey(parts ...string) string {
	return "carape:cache:" + strings.Join(parts, ":")
}

func testService(t *testing.T, source *fakeSource, cache *fakeCache) *Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	cfg := config.CatalogConfig{CacheTTL: time.Minute, PageSize: 12}
	if cache == nil {
		return NewService(source, nil, cfg, metrics.NewStorefrontMetrics(nil), logg)
	}
	return NewService(source, cache, cfg, metrics.NewStorefrontMetrics(nil), logg)
}

func TestProductsCachesAfterFirstRead(t *testing.T) {
	source := &fakeSource{products: manyProducts(3)}
	cache := newFakeCache()
	svc := testService(t, source, cache)

	first, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 3)
	assert.Equal(t, 1, source.listCalls)
	assert.Contains(t, cache.store, "carape:cache:catalog:products")

	second, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 3)
	assert.Equal(t, 1, source.listCalls, "second read should come from cache")
}

func TestProductsWithoutCacheHitsSourceEveryTime(t *testing.T) {
	source := &fakeSource{products: manyProducts(2)}
	svc := testService(t, source, nil)

	_, err := svc.Products(context.Background())
	require.NoError(t, err)
	_, err = svc.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.listCalls)
}

func TestProductsSourceFailurePropagates(t *testing.T) {
	source := &fakeSource{failListWith: errors.New("upstream down")}
	svc := testService(t, source, newFakeCache())

	_, err := svc.Products(context.Background())
	require.Error(t, err)
}

func TestBrowseFiltersAndPaginates(t *testing.T) {
	source := &fakeSource{products: manyProducts(30)}
	svc := testService(t, source, newFakeCache())

	res, err := svc.Browse(context.Background(), Selection{Colors: []string{"bela"}}, 2)
	require.NoError(t, err)
	assert.Len(t, res.Products, 3)
	assert.Equal(t, 2, res.Page.Number)
	assert.Equal(t, 15, res.Page.Total)
	assert.Equal(t, 2, res.Page.PageCount)
}

func TestBrowsePageSizeDefaultsToGrid(t *testing.T) {
	source := &fakeSource{products: manyProducts(13)}
	svc := testService(t, source, newFakeCache())

	res, err := svc.Browse(context.Background(), Selection{}, 1)
	require.NoError(t, err)
	assert.Len(t, res.Products, 12)
	assert.Equal(t, 2, res.Page.PageCount)
}

func TestProductBySlugCachesPerSlug(t *testing.T) {
	source := &fakeSource{products: manyProducts(3)}
	cache := newFakeCache()
	svc := testService(t, source, cache)

	p, err := svc.ProductBySlug(context.Background(), "p01")
	require.NoError(t, err)
	assert.Equal(t, "p01", p.ID)
	assert.Contains(t, cache.store, "carape:cache:catalog:product:p01")

	_, err = svc.ProductBySlug(context.Background(), "p01")
	require.NoError(t, err)
	assert.Equal(t, 1, source.bySlugCalls)
}

func TestFilterFacetsListsEveryDimension(t *testing.T) {
	svc := testService(t, &fakeSource{}, nil)
	facets := svc.FilterFacets()
	assert.Len(t, facets.Colors, 15)
	assert.Len(t, facets.Sizes, 12)
	assert.Len(t, facets.Deniers, 12)
}
