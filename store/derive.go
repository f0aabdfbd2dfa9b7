package store

import (
	"sort"
	"strings"

	"storefront/domain"

	"golang.org/x/text/cases"
)

// Criteria are the inputs of a derivation besides the product list itself
type Criteria struct {
	Query      string
	PriceSort  domain.SortDirection
	RatingSort domain.SortDirection
}

// Derive filters products by title and applies the sort steps in fixed order:
// price first, then rating. Each step is an independent stable sort over the
// previous result, so when both are set the rating order wins and price only
// breaks rating ties. The input slice is never modified.
func Derive(products []domain.Product, c Criteria) []domain.Product {
	fold := cases.Fold()
	query := fold.String(c.Query)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(fold.String(p.Title), query) {
			continue
		}
		out = append(out, p)
	}

	switch c.PriceSort {
	case domain.SortAscending:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case domain.SortDescending:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.GreaterThan(out[j].Price)
		})
	}

	switch c.RatingSort {
	case domain.SortAscending:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating < out[j].Rating
		})
	case domain.SortDescending:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	}

	return out
}

// Window returns the first n elements of derived (all of them when n exceeds
// its length) as a new slice.
func Window(derived []domain.Product, n int) []domain.Product {
	if n < 0 {
		n = 0
	}
	if n > len(derived) {
		n = len(derived)
	}
	out := make([]domain.Product, n)
	copy(out, derived[:n])
	return out
}
