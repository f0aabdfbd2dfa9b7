package feed

import (
	"time"

	"storefront/domain"

	"github.com/go-faster/errors"
)

// NewSource constructs a domain.FeedSource by kind: "http" (or "url") or "file".
// location is the URL or the file path respectively.
func NewSource(kind, location string, timeout time.Duration) (domain.FeedSource, error) {
	switch kind {
	case "http", "url":
		if location == "" {
			return nil, errors.New("feed url required for http feed")
		}
		return NewHTTPSource(location, timeout), nil
	case "file":
		if location == "" {
			return nil, errors.New("file path required for file feed")
		}
		return NewFileSource(location), nil
	default:
		return nil, errors.Errorf("unknown feed kind: %s", kind)
	}
}
