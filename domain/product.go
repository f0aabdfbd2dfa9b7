// Package domain defines core catalog types and interfaces.
package domain

import (
	"context"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MaxRating is the upper bound of a product rating.
const MaxRating = 5.0

// Product represents a catalog product as delivered by the feed
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Image       string          `json:"image,omitempty"`
	Rating      float64         `json:"rating"`
}

// FeedSource supplies the full product list once per session
type FeedSource interface {
	Fetch(ctx context.Context) ([]Product, error)
}

// ValidateProduct checks the field constraints of a single product.
func ValidateProduct(p Product) error {
	if p.Title == "" {
		return NewInvalidProductError("title", "cannot be empty", p.Title)
	}
	if p.Price.IsNegative() {
		return NewInvalidProductError("price", "must be non-negative", p.Price.String())
	}
	if _, err := currency.ParseISO(p.Currency); err != nil {
		return NewInvalidProductError("currency", "must be an ISO 4217 code", p.Currency)
	}
	if math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > MaxRating {
		return NewInvalidProductError("rating", "must be within [0,5]", p.Rating)
	}
	return nil
}
