package catalog

import (
	pkgcatalog "github.com/zenskecarape/storefront-api/pkg/catalog"
	"github.com/zenskecarape/storefront-api/pkg/pagination"
)

// Browser tracks a shopper's position in the filtered product grid. Changing
// the filter selection always snaps back to the first page so the shopper
// never lands on a page that no longer exists under the new filter.
//
// The HTTP browse endpoint is stateless and applies the same reset on the
// client side; Browser is the embeddable session model for callers that
// hold grid state server-side, not part of the request path.
type Browser struct {
	selection Selection
	page      int
	size      int
}

// NewBrowser starts at page 1 with no filter.
func NewBrowser(pageSize int) *Browser {
	return &Browser{page: 1, size: pagination.NormalizeSize(pageSize)}
}

// Selection returns the active filter choices.
func (b *Browser) Selection() Selection {
	return b.selection
}

// Page returns the current page number.
func (b *Browser) Page() int {
	return b.page
}

// SetSelection replaces the filter. A changed selection resets to page 1; an
// identical one keeps the current page.
func (b *Browser) SetSelection(sel Selection) {
	if sel.Key() == b.selection.Key() {
		return
	}
	b.selection = sel
	b.page = 1
}

// SetPage moves to the given page, clamped to 1 or above.
func (b *Browser) SetPage(page int) {
	b.page = pagination.NormalizePage(page)
}

// View filters and paginates the product list at the browser's position.
func (b *Browser) View(products []pkgcatalog.Product) ([]pkgcatalog.Product, pagination.Page) {
	filtered := Apply(products, b.selection)
	return pagination.Paginate(filtered, b.page, b.size)
}
