// Package util provides small helpers shared by the storefront packages.
package util

import "github.com/google/uuid"

// NewSessionID returns a random (v4) identifier for a storefront session.
func NewSessionID() string {
	return uuid.NewString()
}
