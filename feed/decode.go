// Package feed fetches the product list and rejects malformed payloads before
// they reach the catalog.
package feed

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"storefront/domain"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

const maxLineBytes = 1 << 20

// record mirrors domain.Product with pointers so absent fields can be told
// apart from zero values.
type record struct {
	ID          *int             `json:"id"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency"`
	Image       *string          `json:"image"`
	Rating      *float64         `json:"rating"`
}

func (r record) product(index int) (domain.Product, error) {
	missing := func(field string) error {
		return &domain.InvalidProductError{Index: index, Field: field, Reason: "is required"}
	}
	switch {
	case r.ID == nil:
		return domain.Product{}, missing("id")
	case r.Title == nil:
		return domain.Product{}, missing("title")
	case r.Price == nil:
		return domain.Product{}, missing("price")
	case r.Currency == nil:
		return domain.Product{}, missing("currency")
	case r.Rating == nil:
		return domain.Product{}, missing("rating")
	}

	p := domain.Product{
		ID:       *r.ID,
		Title:    *r.Title,
		Price:    *r.Price,
		Currency: *r.Currency,
		Rating:   *r.Rating,
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
	return p, nil
}

// Decode accepts either a JSON array or NDJSON (one product per line).
func Decode(data []byte) ([]domain.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return DecodeArray(trimmed)
	}
	return DecodeLines(trimmed)
}

// DecodeArray decodes a flat JSON array of products.
func DecodeArray(data []byte) ([]domain.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, domain.NewMalformedFeedError("empty payload", nil)
	}
	if trimmed[0] != '[' {
		return nil, domain.NewMalformedFeedError("expected a JSON array", nil)
	}

	var records []record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, domain.NewMalformedFeedError("decode array", err)
	}
	return build(records)
}

// DecodeLines decodes newline-delimited JSON objects, skipping blank lines.
func DecodeLines(data []byte) ([]domain.Product, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.NewMalformedFeedError("empty payload", nil)
	}

	var records []record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var r record
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, domain.NewMalformedFeedError(fmt.Sprintf("decode line %d", line), err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewMalformedFeedError("scan lines", err)
	}
	return build(records)
}

func build(records []record) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(records))
	for i, r := range records {
		p, err := r.product(i)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := Validate(products); err != nil {
		return nil, err
	}
	return products, nil
}

// Validate checks every product against the schema and rejects duplicate ids.
func Validate(products []domain.Product) error {
	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		if err := domain.ValidateProduct(p); err != nil {
			var ipe *domain.InvalidProductError
			if errors.As(err, &ipe) {
				ipe.Index = i
			}
			return err
		}
		if _, ok := seen[p.ID]; ok {
			return domain.NewDuplicateProductError(p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
