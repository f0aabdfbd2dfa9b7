package store

import (
	"fmt"

	"storefront/domain"

	"github.com/shopspring/decimal"
)

func product(id int, title, price string, rating float64) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    title,
		Price:    decimal.RequireFromString(price),
		Currency: "USD",
		Rating:   rating,
	}
}

// numbered builds n products titled "Product 1".."Product n" with rising prices.
func numbered(n int) []domain.Product {
	out := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, product(i, fmt.Sprintf("Product %d", i), fmt.Sprintf("%d.99", i), float64(i%5)))
	}
	return out
}

func ids(products []domain.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func titles(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}
