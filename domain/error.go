// Package domain defines error types for the catalog engine.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when a product with the given ID is not in the catalog
type ProductNotFoundError struct {
	ProductID int
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%d", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InvalidProductError is returned when a feed record violates the product schema.
// Index is the position of the record in the feed, or -1 when unknown.
type InvalidProductError struct {
	Index  int
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidProductError
func (e *InvalidProductError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid product: index=%d, field=%s, reason=%s, value=%v", e.Index, e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidProductError) Is(target error) bool {
	_, ok := target.(*InvalidProductError)
	return ok
}

// DuplicateProductError is returned when a feed contains the same ID twice
type DuplicateProductError struct {
	ProductID int
}

// Error implements the error interface for DuplicateProductError
func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product: id=%d appears more than once", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// MalformedFeedError is returned when a feed payload is not a list of product records
type MalformedFeedError struct {
	Reason string
	Err    error
}

// Error implements the error interface for MalformedFeedError
func (e *MalformedFeedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed feed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed feed: %s", e.Reason)
}

// Unwrap returns the underlying decode error, if any
func (e *MalformedFeedError) Unwrap() error {
	return e.Err
}

// Is allows proper error type checking with errors.Is()
func (e *MalformedFeedError) Is(target error) bool {
	_, ok := target.(*MalformedFeedError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID int) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewInvalidProductError creates a new InvalidProductError without a feed position
func NewInvalidProductError(field, reason string, value interface{}) error {
	return &InvalidProductError{
		Index:  -1,
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewDuplicateProductError creates a new DuplicateProductError
func NewDuplicateProductError(productID int) error {
	return &DuplicateProductError{ProductID: productID}
}

// NewMalformedFeedError creates a new MalformedFeedError
func NewMalformedFeedError(reason string, err error) error {
	return &MalformedFeedError{Reason: reason, Err: err}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsInvalidProductError checks if an error is an InvalidProductError
func IsInvalidProductError(err error) bool {
	var ipe *InvalidProductError
	return errors.As(err, &ipe)
}

// IsDuplicateProductError checks if an error is a DuplicateProductError
func IsDuplicateProductError(err error) bool {
	var dpe *DuplicateProductError
	return errors.As(err, &dpe)
}

// IsMalformedFeedError checks if an error is a MalformedFeedError
func IsMalformedFeedError(err error) bool {
	var mfe *MalformedFeedError
	return errors.As(err, &mfe)
}
