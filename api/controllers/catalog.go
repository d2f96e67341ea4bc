package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zenskecarape/storefront-api/api/responses"
	"github.com/zenskecarape/storefront-api/api/validators"
	catalogsvc "github.com/zenskecarape/storefront-api/internal/catalog"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
)

// ListProducts serves the filterable product grid. Filters arrive as
// comma-separated query values; a change of filter is a new request, so the
// page parameter simply defaults to 1.
func ListProducts(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sel := catalogsvc.Selection{
			Colors:       queryList(r, "colors"),
			Sizes:        queryList(r, "sizes"),
			Deniers:      queryList(r, "deniers"),
			ProductTypes: queryList(r, "types"),
			Features:     queryList(r, "features"),
			Query:        strings.TrimSpace(r.URL.Query().Get("q")),
			InStockOnly:  validators.ParseQueryBool(r, "inStock", false),
		}

		result, err := svc.Browse(r.Context(), sel, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetProduct serves a single product by slug.
func GetProduct(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug required"))
			return
		}
		product, err := svc.ProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ListCategories serves the navigation categories.
func ListCategories(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// GetCategory serves one category with its products.
func GetCategory(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category slug required"))
			return
		}
		category, err := svc.CategoryWithProducts(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// GetHomepage serves the CMS-managed landing page content.
func GetHomepage(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		home, err := svc.Homepage(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, home)
	}
}

// GetFacets serves the filter panel options.
func GetFacets(svc *catalogsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.FilterFacets())
	}
}

func queryList(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
