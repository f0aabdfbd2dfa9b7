package feed

import (
	"context"
	"io"
	"net/http"
	"time"

	"storefront/domain"
	"storefront/logger"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// DefaultURL is the public JSON server the storefront was built against.
const DefaultURL = "https://my-json-server.typicode.com/hninosanchez/nextjs-ecommerce-challenge-08-19-24/products"

const maxFeedBytes = 32 << 20

// HTTPSource fetches a JSON array of products with a single GET request
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// compile-time assertion
var _ domain.FeedSource = (*HTTPSource)(nil)

// NewHTTPSource constructs an HTTPSource. A zero timeout leaves the client
// bounded only by the request context.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("feed_url", s.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build feed request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch feed %s", s.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch feed %s: unexpected status %d", s.url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read feed body")
	}
	log.Debug("feed response received", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))

	return DecodeArray(body)
}
