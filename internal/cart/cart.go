package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zenskecarape/storefront-api/pkg/catalog"
)

// Outcome tells the storefront which confirmation to show after an add.
type Outcome string

const (
	// OutcomeAdded means a new line appeared in the cart.
	OutcomeAdded Outcome = "added"
	// OutcomeQuantityUpdated means an existing line absorbed the quantity.
	OutcomeQuantityUpdated Outcome = "quantity_updated"
)

// ItemRef identifies a cart line. The same product in a different color or
// size is a different line; an unselected variant dimension stays empty.
type ItemRef struct {
	ProductID string `json:"productId"`
	ColorID   string `json:"colorId,omitempty"`
	SizeID    string `json:"sizeId,omitempty"`
}

// Key returns the line identity used for merging and lookups.
func (r ItemRef) Key() string {
	return fmt.Sprintf("%s|%s|%s", r.ProductID, r.ColorID, r.SizeID)
}

// LineItem is one line of the cart, carrying a snapshot of the product at the
// moment it was added.
type LineItem struct {
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	Image     string           `json:"image,omitempty"`
	PriceRSD  *decimal.Decimal `json:"priceRSD,omitempty"`
	PriceEUR  *decimal.Decimal `json:"priceEUR,omitempty"`
	Color     *catalog.Color   `json:"selectedColor,omitempty"`
	Size      *catalog.Size    `json:"selectedSize,omitempty"`
	Quantity  int              `json:"quantity"`
}

// Ref returns the line's identity.
func (i LineItem) Ref() ItemRef {
	ref := ItemRef{ProductID: i.ProductID}
	if i.Color != nil {
		ref.ColorID = i.Color.ID
	}
	if i.Size != nil {
		ref.SizeID = i.Size.ID
	}
	return ref
}

// Cart is the full cart contents for one token.
type Cart struct {
	Items []LineItem `json:"items"`
}

// add merges the item into an existing line or appends a new one.
func (c *Cart) add(item LineItem) Outcome {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	key := item.Ref().Key()
	for idx := range c.Items {
		if c.Items[idx].Ref().Key() == key {
			c.Items[idx].Quantity += item.Quantity
			return OutcomeQuantityUpdated
		}
	}
	c.Items = append(c.Items, item)
	return OutcomeAdded
}

// setQuantity replaces a line's quantity. Zero or below removes the line.
func (c *Cart) setQuantity(ref ItemRef, quantity int) {
	if quantity <= 0 {
		c.remove(ref)
		return
	}
	key := ref.Key()
	for idx := range c.Items {
		if c.Items[idx].Ref().Key() == key {
			c.Items[idx].Quantity = quantity
			return
		}
	}
}

// remove drops a line. Removing an absent line is a no-op.
func (c *Cart) remove(ref ItemRef) {
	key := ref.Key()
	for idx := range c.Items {
		if c.Items[idx].Ref().Key() == key {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return
		}
	}
}

// TotalItems sums quantities across all lines.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalRSD sums line totals in dinars. Lines without a dinar price count as
// zero rather than failing the whole total.
func (c Cart) TotalRSD() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		if item.PriceRSD == nil {
			continue
		}
		total = total.Add(item.PriceRSD.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalEUR sums line totals in euros, with the same missing-price rule.
func (c Cart) TotalEUR() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		if item.PriceEUR == nil {
			continue
		}
		total = total.Add(item.PriceEUR.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
