package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenskecarape/storefront-api/pkg/config"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		baseURL: srv.URL,
		token:   "test-token",
		project: "abc123",
		dataset: "production",
		httpc:   &http.Client{Timeout: time.Second},
	}
}

func TestNewRequiresProjectID(t *testing.T) {
	_, err := New(config.CMSConfig{}, nil)
	require.Error(t, err)
}

func TestNewBuildsQueryEndpoint(t *testing.T) {
	c, err := New(config.CMSConfig{
		ProjectID:  "abc123",
		Dataset:    "production",
		APIVersion: "2024-01-01",
		UseCDN:     true,
		Timeout:    time.Second,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://abc123.apicdn.sanity.io/v2024-01-01/data/query/production", c.baseURL)
	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production", c.imageBaseURL())
}

func TestQuerySendsEncodedParamsAndAuth(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Query().Get("query"), "slug.current == $slug")
		assert.Equal(t, `"klasicne-20-den"`, r.URL.Query().Get("$slug"))
		w.Write([]byte(`{"result": {"_id": "p1", "name": "Klasične 20 Den", "slug": {"current": "klasicne-20-den"}}}`))
	})

	p, err := c.GetProductBySlug(context.Background(), "klasicne-20-den")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "klasicne-20-den", p.Slug)
}

func TestQueryNullResultIsNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": null}`))
	})

	_, err := c.GetProductBySlug(context.Background(), "nema")
	require.Error(t, err)
	ae := pkgerrors.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, pkgerrors.CodeNotFound, ae.Code())
}

func TestQueryUpstreamFailureIsDependencyError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "query parse error", http.StatusBadRequest)
	})

	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	ae := pkgerrors.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, pkgerrors.CodeDependency, ae.Code())
}

func TestListProductsDecodesLegacyDocuments(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": [{
			"_id": "p-legacy",
			"name": "Hulahopke 40 Den",
			"slug": "hulahopke-40-den",
			"images": [{"asset": {"_ref": "image-deadbeef-800x1200-webp"}}],
			"priceRSD": 590,
			"colors": ["crna", "nepostojeca", "bez"],
			"sizes": ["m", "l"],
			"denier": "40",
			"inStock": true
		}]}`))
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "hulahopke-40-den", p.Slug)
	require.Len(t, p.Images, 1)
	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production/deadbeef-800x1200.webp", p.Images[0])
	require.NotNil(t, p.PriceRSD)
	assert.Equal(t, "590", p.PriceRSD.String())
	require.Len(t, p.Colors, 2)
	assert.Equal(t, "Crna", p.Colors[0].Name)
	assert.Equal(t, "#F5F5DC", p.Colors[1].Hex)
	require.Len(t, p.Sizes, 2)
	require.NotNil(t, p.Denier)
	assert.Equal(t, "40 Den", p.Denier.Label)
	assert.True(t, p.InStock)
}

func TestListProductsDecodesNormalizedDocuments(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": [{
			"_id": "p-new",
			"name": "Samodržeće 15 Den",
			"slug": {"current": "samodrzece-15-den"},
			"images": [{"asset": {"_id": "img", "url": "https://cdn.sanity.io/images/abc123/production/cafe-600x900.jpg"}}],
			"priceRSD": 790.5,
			"priceEUR": 6.9,
			"colors": [{"_id": "color-crna", "name": "Crna", "hexCode": "#000000"}],
			"sizes": [{"_id": "size-s", "name": "S"}],
			"denier": {"_id": "15", "value": "15 Den"},
			"isNew": true,
			"inStock": true
		}]}`))
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "samodrzece-15-den", p.Slug)
	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production/cafe-600x900.jpg", p.Images[0])
	assert.Equal(t, "790.5", p.PriceRSD.String())
	assert.Equal(t, "6.9", p.PriceEUR.String())
	assert.Equal(t, "color-crna", p.Colors[0].ID)
	assert.Equal(t, "S", p.Sizes[0].Name)
	assert.Equal(t, "15 Den", p.Denier.Label)
	assert.True(t, p.IsNew)
}

func TestGetCategoryWithProducts(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `"carape"`, r.URL.Query().Get("$slug"))
		w.Write([]byte(`{"result": {
			"_id": "cat-1",
			"name": "Čarape",
			"slug": {"current": "carape"},
			"order": 2,
			"products": [{"_id": "p1", "name": "A", "slug": "a"}, {"_id": "p2", "name": "B", "slug": "b"}]
		}}`))
	})

	cat, err := c.GetCategoryWithProducts(context.Background(), "carape")
	require.NoError(t, err)
	assert.Equal(t, "Čarape", cat.Name)
	assert.Equal(t, 2, cat.Order)
	require.Len(t, cat.Products, 2)
	assert.Equal(t, "p2", cat.Products[1].ID)
}

func TestGetHomepage(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": {
			"heroTitle": "Nova kolekcija",
			"heroSubtitle": "Proleće 2026",
			"heroImage": {"asset": {"_ref": "image-hero-1920x800-jpg"}},
			"featuredProducts": [{"_id": "p1", "name": "A", "slug": "a"}]
		}}`))
	})

	home, err := c.GetHomepage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nova kolekcija", home.HeroTitle)
	assert.Equal(t, "https://cdn.sanity.io/images/abc123/production/hero-1920x800.jpg", home.HeroImage)
	require.Len(t, home.FeaturedProducts, 1)
}
