package feed

import (
	"context"
	"os"

	"storefront/domain"

	"github.com/go-faster/errors"
)

// FileSource reads products from a local JSON array or NDJSON file
type FileSource struct {
	path string
}

// compile-time assertion
var _ domain.FeedSource = (*FileSource)(nil)

// NewFileSource constructs a FileSource for the given path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read feed file %s", s.path)
	}
	return Decode(b)
}
