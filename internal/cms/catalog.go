package cms

import (
	"context"

	"github.com/zenskecarape/storefront-api/pkg/catalog"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
)

const productProjection = `{
  _id,
  name,
  slug,
  images[]{asset->{_id, url}},
  priceRSD,
  priceEUR,
  colors[]->{_id, name, hexCode},
  sizes[]->{_id, name},
  denier->{_id, value},
  productTypes,
  features,
  description,
  isNew,
  inStock,
  comingSoon
}`

const (
	queryProducts = `*[_type == "product"] | order(_createdAt desc) ` + productProjection

	queryProductBySlug = `*[_type == "product" && slug.current == $slug][0] ` + productProjection

	queryCategories = `*[_type == "category"] | order(order asc) {
  _id,
  name,
  slug,
  image{asset->{_id, url}},
  order
}`

	queryCategoryWithProducts = `*[_type == "category" && slug.current == $slug][0] {
  _id,
  name,
  slug,
  image{asset->{_id, url}},
  order,
  "products": *[_type == "product" && references(^._id)] | order(_createdAt desc) ` + productProjection + `
}`

	queryHomepage = `*[_type == "homepage"][0] {
  heroTitle,
  heroSubtitle,
  heroImage{asset->{_id, url}},
  featuredProducts[]->` + productProjection + `
}`
)

// ListProducts returns every storefront product, newest first.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var docs []productDocument
	if err := c.query(ctx, queryProducts, nil, &docs); err != nil {
		if ae := pkgerrors.As(err); ae != nil && ae.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	out := make([]catalog.Product, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toProduct(c.imageBaseURL()))
	}
	return out, nil
}

// GetProductBySlug returns a single product or CodeNotFound.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	var doc productDocument
	if err := c.query(ctx, queryProductBySlug, map[string]string{"slug": slug}, &doc); err != nil {
		return catalog.Product{}, err
	}
	return doc.toProduct(c.imageBaseURL()), nil
}

// ListCategories returns the navigation categories in display order.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var docs []categoryDocument
	if err := c.query(ctx, queryCategories, nil, &docs); err != nil {
		if ae := pkgerrors.As(err); ae != nil && ae.Code() == pkgerrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	out := make([]catalog.Category, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toCategory(c.imageBaseURL()))
	}
	return out, nil
}

// GetCategoryWithProducts returns a category and its products, or CodeNotFound.
func (c *Client) GetCategoryWithProducts(ctx context.Context, slug string) (catalog.Category, error) {
	var doc categoryDocument
	if err := c.query(ctx, queryCategoryWithProducts, map[string]string{"slug": slug}, &doc); err != nil {
		return catalog.Category{}, err
	}
	return doc.toCategory(c.imageBaseURL()), nil
}

// GetHomepage returns the CMS-managed landing page content.
func (c *Client) GetHomepage(ctx context.Context) (catalog.Homepage, error) {
	var doc homepageDocument
	if err := c.query(ctx, queryHomepage, nil, &doc); err != nil {
		return catalog.Homepage{}, err
	}
	return doc.toHomepage(c.imageBaseURL()), nil
}
