package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	catalogsvc "github.com/zenskecarape/storefront-api/internal/catalog"
	pkgcatalog "github.com/zenskecarape/storefront-api/pkg/catalog"
	"github.com/zenskecarape/storefront-api/pkg/config"
	"github.com/zenskecarape/storefront-api/pkg/metrics"
)

type stubCatalogSource struct {
	products []pkgcatalog.Product
}

func (s *stubCatalogSource) ListProducts(ctx context.Context) ([]pkgcatalog.Product, error) {
	return s.products, nil
}

func (s *stubCatalogSource) GetProductBySlug(ctx context.Context, slug string) (pkgcatalog.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return pkgcatalog.Product{}, fmt.Errorf("no product %q", slug)
}

func (s *stubCatalogSource) ListCategories(ctx context.Context) ([]pkgcatalog.Category, error) {
	return []pkgcatalog.Category{{ID: "c1", Name: "Čarape", Slug: "carape", Order: 1}}, nil
}

func (s *stubCatalogSource) GetCategoryWithProducts(ctx context.Context, slug string) (pkgcatalog.Category, error) {
	return pkgcatalog.Category{ID: "c1", Slug: slug, Products: s.products}, nil
}

func (s *stubCatalogSource) GetHomepage(ctx context.Context) (pkgcatalog.Homepage, error) {
	return pkgcatalog.Homepage{HeroTitle: "Nova kolekcija"}, nil
}

func catalogFixture(n int) []pkgcatalog.Product {
	out := make([]pkgcatalog.Product, n)
	for i := range out {
		p := pkgcatalog.Product{
			ID:      fmt.Sprintf("p%02d", i),
			Name:    fmt.Sprintf("Proizvod %02d", i),
			Slug:    fmt.Sprintf("proizvod-%02d", i),
			InStock: true,
		}
		color := "crna"
		if i%2 == 1 {
			color = "bela"
		}
		p.Colors = pkgcatalog.ResolveColors([]string{color})
		out[i] = p
	}
	return out
}

func newCatalogService(products []pkgcatalog.Product) *catalogsvc.Service {
	cfg := config.CatalogConfig{PageSize: 12}
	return catalogsvc.NewService(&stubCatalogSource{products: products}, nil, cfg, metrics.NewStorefrontMetrics(nil), testLogger())
}

func TestListProductsFirstPage(t *testing.T) {
	handler := ListProducts(newCatalogService(catalogFixture(30)), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data catalogsvc.BrowseResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Products) != 12 {
		t.Fatalf("expected 12 products, got %d", len(envelope.Data.Products))
	}
	if envelope.Data.Page.PageCount != 3 {
		t.Fatalf("expected 3 pages, got %d", envelope.Data.Page.PageCount)
	}
}

func TestListProductsFilterAndPage(t *testing.T) {
	handler := ListProducts(newCatalogService(catalogFixture(30)), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?colors=bela&page=2", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	var envelope struct {
		Data catalogsvc.BrowseResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Page.Total != 15 {
		t.Fatalf("expected 15 matches, got %d", envelope.Data.Page.Total)
	}
	if envelope.Data.Page.Number != 2 || len(envelope.Data.Products) != 3 {
		t.Fatalf("unexpected page: %+v", envelope.Data.Page)
	}
}

func TestListProductsCommaSeparatedFilters(t *testing.T) {
	handler := ListProducts(newCatalogService(catalogFixture(10)), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?colors=crna,bela", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	var envelope struct {
		Data catalogsvc.BrowseResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Page.Total != 10 {
		t.Fatalf("expected every product to match, got %d", envelope.Data.Page.Total)
	}
}

func TestListProductsRejectsBadPage(t *testing.T) {
	handler := ListProducts(newCatalogService(catalogFixture(5)), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=abc", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetProductBySlug(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/products/{slug}", GetProduct(newCatalogService(catalogFixture(3)), testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/proizvod-01", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data pkgcatalog.Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Slug != "proizvod-01" {
		t.Fatalf("unexpected product: %+v", envelope.Data)
	}
}

func TestGetFacets(t *testing.T) {
	handler := GetFacets(newCatalogService(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/facets", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	var envelope struct {
		Data catalogsvc.Facets `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Colors) != 15 || len(envelope.Data.Sizes) != 12 || len(envelope.Data.Deniers) != 12 {
		t.Fatalf("unexpected facet counts: %d/%d/%d",
			len(envelope.Data.Colors), len(envelope.Data.Sizes), len(envelope.Data.Deniers))
	}
}
