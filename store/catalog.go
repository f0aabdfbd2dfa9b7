// Package store holds the catalog and cart state of a storefront session.
package store

import (
	"storefront/domain"
)

const (
	// PageSize is the number of products revealed per pagination step.
	PageSize = 10
	// DefaultScrollThreshold is the distance from the bottom, in pixels, within
	// which a scroll signal loads the next page.
	DefaultScrollThreshold = 500
)

// Catalog owns the full product set and the visible window derived from it.
// It is not safe for concurrent use; a single session owns and mutates it.
type Catalog struct {
	all          []domain.Product
	query        string
	priceSort    domain.SortDirection
	ratingSort   domain.SortDirection
	activeSort   domain.SortKind
	visibleCount int

	// derived on every mutation
	filtered []domain.Product
	visible  []domain.Product

	// scroll trigger fires once per crossing into the threshold
	armed bool
}

// NewCatalog constructs an empty Catalog
func NewCatalog() *Catalog {
	c := &Catalog{visibleCount: PageSize, armed: true}
	c.recompute()
	return c
}

// Load replaces the product set and resets pagination.
func (c *Catalog) Load(products []domain.Product) {
	c.all = make([]domain.Product, len(products))
	copy(c.all, products)
	c.visibleCount = PageSize
	c.armed = true
	c.recompute()
}

// SetSearchQuery sets the title filter. The current visible count is kept, so
// a narrower result may show fewer than a page.
func (c *Catalog) SetSearchQuery(q string) {
	c.query = q
	c.recompute()
}

// SetSort sets the direction of one sort criterion and marks it active.
// SortNone clears that criterion.
func (c *Catalog) SetSort(kind domain.SortKind, dir domain.SortDirection) {
	switch kind {
	case domain.SortByPrice:
		c.priceSort = dir
	case domain.SortByRating:
		c.ratingSort = dir
	default:
		return
	}
	c.activeSort = kind
	c.recompute()
}

// LoadMore grows the visible window by one page, clamped to the number of
// matches. It reports whether new products were revealed.
func (c *Catalog) LoadMore() bool {
	if c.visibleCount >= len(c.filtered) {
		return false
	}
	c.visibleCount += PageSize
	if c.visibleCount > len(c.filtered) {
		c.visibleCount = len(c.filtered)
	}
	c.visible = Window(c.filtered, c.visibleCount)
	return true
}

// OnScrollNearBottom handles a scroll signal reporting the distance between the
// viewport and the end of the list. Within threshold it loads one page, then
// stays quiet until the distance leaves the threshold again. A threshold of
// zero or less uses DefaultScrollThreshold.
func (c *Catalog) OnScrollNearBottom(distanceFromBottomPx, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultScrollThreshold
	}
	if distanceFromBottomPx > threshold {
		c.armed = true
		return false
	}
	if !c.armed || !c.HasMore() {
		return false
	}
	c.armed = false
	return c.LoadMore()
}

func (c *Catalog) recompute() {
	c.filtered = Derive(c.all, Criteria{
		Query:      c.query,
		PriceSort:  c.priceSort,
		RatingSort: c.ratingSort,
	})
	c.visible = Window(c.filtered, c.visibleCount)
}

// Get returns the product with the given id from the full product set.
func (c *Catalog) Get(id int) (domain.Product, error) {
	for _, p := range c.all {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.NewProductNotFoundError(id)
}

// Visible returns the current visible window.
func (c *Catalog) Visible() []domain.Product {
	out := make([]domain.Product, len(c.visible))
	copy(out, c.visible)
	return out
}

// Filtered returns every product matching the current criteria, in display order.
func (c *Catalog) Filtered() []domain.Product {
	out := make([]domain.Product, len(c.filtered))
	copy(out, c.filtered)
	return out
}

// All returns the full product set in feed order.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.all))
	copy(out, c.all)
	return out
}

func (c *Catalog) Len() int { return len(c.all) }

// Matches is the number of products passing the current search.
func (c *Catalog) Matches() int { return len(c.filtered) }

func (c *Catalog) VisibleCount() int { return c.visibleCount }

// HasMore reports whether LoadMore would reveal further products.
func (c *Catalog) HasMore() bool { return len(c.visible) < len(c.filtered) }

func (c *Catalog) SearchQuery() string { return c.query }

func (c *Catalog) PriceSort() domain.SortDirection { return c.priceSort }

func (c *Catalog) RatingSort() domain.SortDirection { return c.ratingSort }

// ActiveSort returns the sort kind set most recently, if any.
func (c *Catalog) ActiveSort() (domain.SortKind, bool) {
	return c.activeSort, c.activeSort != 0
}
