package store

import (
	"storefront/domain"

	"github.com/shopspring/decimal"
)

// Cart accumulates products added by the user. Adding the same product twice
// yields two entries.
type Cart struct {
	items []domain.Product
}

// NewCart constructs an empty Cart
func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) AddItem(p domain.Product) {
	c.items = append(c.items, p)
}

// Items returns the cart entries in the order they were added.
func (c *Cart) Items() []domain.Product {
	out := make([]domain.Product, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) TotalItems() int {
	return len(c.items)
}

// TotalPrice sums item prices as plain amounts. Currencies are not converted;
// use Currencies to detect a mixed total.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.items {
		total = total.Add(p.Price)
	}
	return total
}

// Currencies lists the distinct currencies in the cart in order of first use.
func (c *Cart) Currencies() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.items {
		if _, ok := seen[p.Currency]; ok {
			continue
		}
		seen[p.Currency] = struct{}{}
		out = append(out, p.Currency)
	}
	return out
}
