package feed

import (
	"context"

	"storefront/domain"
)

// StaticSource serves a fixed product list
type StaticSource struct {
	products []domain.Product
}

// compile-time assertion
var _ domain.FeedSource = (*StaticSource)(nil)

func NewStaticSource(products []domain.Product) *StaticSource {
	cp := make([]domain.Product, len(products))
	copy(cp, products)
	return &StaticSource{products: cp}
}

// Fetch validates and returns a copy of the list, so static feeds obey the
// same boundary checks as remote ones.
func (s *StaticSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Validate(s.products); err != nil {
		return nil, err
	}
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}
