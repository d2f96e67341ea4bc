package cms

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zenskecarape/storefront-api/pkg/catalog"
)

// slugField decodes both the platform's {"current": "..."} slug object and a
// bare string.
type slugField string

func (s *slugField) UnmarshalJSON(data []byte) error {
	var obj struct {
		Current string `json:"current"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Current != "" {
		*s = slugField(obj.Current)
		return nil
	}
	var plain string
	if err := json.Unmarshal(data, &plain); err != nil {
		return fmt.Errorf("decoding slug: %w", err)
	}
	*s = slugField(plain)
	return nil
}

// imageField decodes a platform image object down to its asset reference.
type imageField struct {
	Asset struct {
		Ref string `json:"_ref"`
		URL string `json:"url"`
	} `json:"asset"`
}

// assetURL turns an asset reference like
// "image-abc123-800x1200-webp" into a CDN URL. Resolved URLs pass through.
func (img imageField) assetURL(base string) string {
	if img.Asset.URL != "" {
		return img.Asset.URL
	}
	ref := img.Asset.Ref
	if !strings.HasPrefix(ref, "image-") {
		return ""
	}
	parts := strings.Split(strings.TrimPrefix(ref, "image-"), "-")
	if len(parts) < 3 {
		return ""
	}
	ext := parts[len(parts)-1]
	name := strings.Join(parts[:len(parts)-1], "-")
	return fmt.Sprintf("%s/%s.%s", base, name, ext)
}

// facetRef decodes either a legacy inline string enum or a resolved reference
// document. Exactly one of the two forms is populated.
type facetRef struct {
	legacy string
	ID     string
	Name   string
	Hex    string
	Value  string
}

func (f *facetRef) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		f.legacy = plain
		return nil
	}
	var obj struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Hex   string `json:"hexCode"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding facet: %w", err)
	}
	f.ID = obj.ID
	f.Name = obj.Name
	f.Hex = obj.Hex
	f.Value = obj.Value
	return nil
}

// productDocument mirrors the raw product shape across both schema eras.
type productDocument struct {
	ID           string       `json:"_id"`
	Name         string       `json:"name"`
	Slug         slugField    `json:"slug"`
	Images       []imageField `json:"images"`
	PriceRSD     *float64     `json:"priceRSD"`
	PriceEUR     *float64     `json:"priceEUR"`
	Colors       []facetRef   `json:"colors"`
	Sizes        []facetRef   `json:"sizes"`
	Denier       *facetRef    `json:"denier"`
	ProductTypes []string     `json:"productTypes"`
	Features     []string     `json:"features"`
	Description  string       `json:"description"`
	IsNew        bool         `json:"isNew"`
	InStock      bool         `json:"inStock"`
	ComingSoon   bool         `json:"comingSoon"`
}

// toProduct normalizes a raw document into the canonical catalog shape.
// Legacy string facets resolve through the fixed lookup tables; unknown legacy
// keys are dropped.
func (doc productDocument) toProduct(imageBase string) catalog.Product {
	p := catalog.Product{
		ID:           doc.ID,
		Name:         doc.Name,
		Slug:         string(doc.Slug),
		ProductTypes: doc.ProductTypes,
		Features:     doc.Features,
		Description:  doc.Description,
		IsNew:        doc.IsNew,
		InStock:      doc.InStock,
		ComingSoon:   doc.ComingSoon,
	}

	for _, img := range doc.Images {
		if u := img.assetURL(imageBase); u != "" {
			p.Images = append(p.Images, u)
		}
	}

	if doc.PriceRSD != nil {
		d := decimal.NewFromFloat(*doc.PriceRSD)
		p.PriceRSD = &d
	}
	if doc.PriceEUR != nil {
		d := decimal.NewFromFloat(*doc.PriceEUR)
		p.PriceEUR = &d
	}

	for _, ref := range doc.Colors {
		if ref.legacy != "" {
			if c, ok := catalog.ColorByID(ref.legacy); ok {
				p.Colors = append(p.Colors, c)
			}
			continue
		}
		if ref.ID != "" {
			p.Colors = append(p.Colors, catalog.Color{ID: ref.ID, Name: ref.Name, Hex: ref.Hex})
		}
	}

	for _, ref := range doc.Sizes {
		if ref.legacy != "" {
			if s, ok := catalog.SizeByID(ref.legacy); ok {
				p.Sizes = append(p.Sizes, s)
			}
			continue
		}
		if ref.ID != "" {
			p.Sizes = append(p.Sizes, catalog.Size{ID: ref.ID, Name: ref.Name})
		}
	}

	if doc.Denier != nil {
		if doc.Denier.legacy != "" {
			p.Denier = catalog.ResolveDenier(doc.Denier.legacy)
		} else if doc.Denier.ID != "" {
			label := doc.Denier.Value
			if label == "" {
				label = fmt.Sprintf("%s Den", doc.Denier.ID)
			}
			p.Denier = &catalog.Denier{ID: doc.Denier.ID, Label: label}
		}
	}

	return p
}

type categoryDocument struct {
	ID       string            `json:"_id"`
	Name     string            `json:"name"`
	Slug     slugField         `json:"slug"`
	Image    *imageField       `json:"image"`
	Order    int               `json:"order"`
	Products []productDocument `json:"products"`
}

func (doc categoryDocument) toCategory(imageBase string) catalog.Category {
	c := catalog.Category{
		ID:    doc.ID,
		Name:  doc.Name,
		Slug:  string(doc.Slug),
		Order: doc.Order,
	}
	if doc.Image != nil {
		c.Image = doc.Image.assetURL(imageBase)
	}
	for _, p := range doc.Products {
		c.Products = append(c.Products, p.toProduct(imageBase))
	}
	return c
}

type homepageDocument struct {
	HeroTitle        string            `json:"heroTitle"`
	HeroSubtitle     string            `json:"heroSubtitle"`
	HeroImage        *imageField       `json:"heroImage"`
	FeaturedProducts []productDocument `json:"featuredProducts"`
}

func (doc homepageDocument) toHomepage(imageBase string) catalog.Homepage {
	h := catalog.Homepage{
		HeroTitle:    doc.HeroTitle,
		HeroSubtitle: doc.HeroSubtitle,
	}
	if doc.HeroImage != nil {
		h.HeroImage = doc.HeroImage.assetURL(imageBase)
	}
	for _, p := range doc.FeaturedProducts {
		h.FeaturedProducts = append(h.FeaturedProducts, p.toProduct(imageBase))
	}
	return h
}
