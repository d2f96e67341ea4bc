package catalog

import "github.com/shopspring/decimal"

// Color is a resolved color facet with its display swatch.
type Color struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hexCode"`
}

// Size is a resolved size facet.
type Size struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Denier is the hosiery thickness facet. Single-valued per product.
type Denier struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Product is the canonical storefront product shape. Whatever schema era the
// content platform returns, products are normalized into this shape once at
// ingestion and never re-interpreted downstream.
type Product struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Images       []string         `json:"images"`
	PriceRSD     *decimal.Decimal `json:"priceRSD,omitempty"`
	PriceEUR     *decimal.Decimal `json:"priceEUR,omitempty"`
	Colors       []Color          `json:"colors"`
	Sizes        []Size           `json:"sizes"`
	Denier       *Denier          `json:"denier,omitempty"`
	ProductTypes []string         `json:"productTypes,omitempty"`
	Features     []string         `json:"features,omitempty"`
	Description  string           `json:"description,omitempty"`
	IsNew        bool             `json:"isNew"`
	InStock      bool             `json:"inStock"`
	ComingSoon   bool             `json:"comingSoon"`
}

// HasColor reports whether the product carries the given color facet id.
func (p Product) HasColor(id string) bool {
	for _, c := range p.Colors {
		if c.ID == id {
			return true
		}
	}
	return false
}

// HasSize reports whether the product carries the given size facet id.
func (p Product) HasSize(id string) bool {
	for _, s := range p.Sizes {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Category groups products for the storefront navigation.
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Image    string    `json:"image,omitempty"`
	Order    int       `json:"order"`
	Products []Product `json:"products,omitempty"`
}

// Homepage holds the CMS-managed landing page content.
type Homepage struct {
	HeroTitle        string    `json:"heroTitle"`
	HeroSubtitle     string    `json:"heroSubtitle"`
	HeroImage        string    `json:"heroImage,omitempty"`
	FeaturedProducts []Product `json:"featuredProducts,omitempty"`
}
