package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionID_Format(t *testing.T) {
	u := NewSessionID()
	// simple regex for UUID v4 format
	r := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	assert.Regexp(t, r, u)
	assert.NotEqual(t, u, NewSessionID())
}
