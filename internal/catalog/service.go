package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/zenskecarape/storefront-api/pkg/catalog"
	"github.com/zenskecarape/storefront-api/pkg/config"
	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/metrics"
	"github.com/zenskecarape/storefront-api/pkg/pagination"
)

// Source provides catalog documents, normally the CMS client.
type Source interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (catalog.Product, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	GetCategoryWithProducts(ctx context.Context, slug string) (catalog.Category, error)
	GetHomepage(ctx context.Context) (catalog.Homepage, error)
}

// cacheStore is the slice of the redis client the service needs.
type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Service serves catalog reads through a short-lived cache so product grids
// do not hit the content platform on every request. Entries expire on their
// own; the revalidation webhook purges them early.
type Service struct {
	source  Source
	cache   cacheStore
	ttl     time.Duration
	size    int
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
}

// NewService wires the catalog read path.
func NewService(source Source, cache cacheStore, cfg config.CatalogConfig, m *metrics.StorefrontMetrics, logg *logger.Logger) *Service {
	return &Service{
		source:  source,
		cache:   cache,
		ttl:     cfg.CacheTTL,
		size:    pagination.NormalizeSize(cfg.PageSize),
		metrics: m,
		logg:    logg,
	}
}

// BrowseResult is one page of the filtered product grid.
type BrowseResult struct {
	Products  []catalog.Product `json:"products"`
	Page      pagination.Page   `json:"pagination"`
	Selection Selection         `json:"selection"`
}

// Browse filters the full product list and returns the requested page.
func (s *Service) Browse(ctx context.Context, sel Selection, page int) (BrowseResult, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return BrowseResult{}, err
	}
	filtered := Apply(products, sel)
	items, meta := pagination.Paginate(filtered, page, s.size)
	return BrowseResult{Products: items, Page: meta, Selection: sel}, nil
}

// Products returns the full product list, newest first.
func (s *Service) Products(ctx context.Context) ([]catalog.Product, error) {
	return readThrough(ctx, s, "product", s.cacheKey("products"), func(ctx context.Context) ([]catalog.Product, error) {
		return s.source.ListProducts(ctx)
	})
}

// ProductBySlug returns a single product or CodeNotFound.
func (s *Service) ProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	return readThrough(ctx, s, "product", s.cacheKey("product", slug), func(ctx context.Context) (catalog.Product, error) {
		return s.source.GetProductBySlug(ctx, slug)
	})
}

// Categories returns the navigation categories in display order.
func (s *Service) Categories(ctx context.Context) ([]catalog.Category, error) {
	return readThrough(ctx, s, "category", s.cacheKey("categories"), func(ctx context.Context) ([]catalog.Category, error) {
		return s.source.ListCategories(ctx)
	})
}

// CategoryWithProducts returns a category and its products, or CodeNotFound.
func (s *Service) CategoryWithProducts(ctx context.Context, slug string) (catalog.Category, error) {
	return readThrough(ctx, s, "category", s.cacheKey("category", slug), func(ctx context.Context) (catalog.Category, error) {
		return s.source.GetCategoryWithProducts(ctx, slug)
	})
}

// Homepage returns the CMS-managed landing page content.
func (s *Service) Homepage(ctx context.Context) (catalog.Homepage, error) {
	return readThrough(ctx, s, "homepage", s.cacheKey("homepage"), func(ctx context.Context) (catalog.Homepage, error) {
		return s.source.GetHomepage(ctx)
	})
}

// Facets lists every filterable facet for the storefront filter panel.
type Facets struct {
	Colors  []catalog.Color  `json:"colors"`
	Sizes   []catalog.Size   `json:"sizes"`
	Deniers []catalog.Denier `json:"deniers"`
}

// FilterFacets returns the filter panel options.
func (s *Service) FilterFacets() Facets {
	return Facets{
		Colors:  catalog.AllColors(),
		Sizes:   catalog.AllSizes(),
		Deniers: catalog.AllDeniers(),
	}
}

func (s *Service) cacheKey(parts ...string) string {
	if s.cache == nil {
		return ""
	}
	return s.cache.CacheKey(append([]string{"catalog"}, parts...)...)
}

// readThrough serves from cache when possible and falls back to the source.
// Cache failures degrade to a source read rather than erroring the request.
func readThrough[T any](ctx context.Context, s *Service, entity, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		if err == nil {
			var cached T
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				s.metrics.IncCacheHit(entity)
				return cached, nil
			}
		}
		s.metrics.IncCacheMiss(entity)
	}

	value, err := load(ctx)
	if err != nil {
		return zero, err
	}

	if s.cache != nil {
		encoded, err := json.Marshal(value)
		if err == nil {
			if err := s.cache.Set(ctx, key, encoded, s.ttl); err != nil {
				s.logg.Warn(ctx, "catalog cache write failed")
			}
		}
	}
	return value, nil
}
