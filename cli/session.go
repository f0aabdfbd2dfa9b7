package cli

import (
	"context"

	"storefront/domain"
	"storefront/logger"
	"storefront/store"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Session is the state behind one storefront run: the catalog, the cart and the
// scroll gate. Commands of a shell share one Session.
type Session struct {
	ID        string
	Feed      string
	Catalog   *store.Catalog
	Cart      *store.Cart
	Threshold int

	scrollGate *rate.Limiter
}

// NewSession constructs an empty Session. A scrollRate of zero disables the
// scroll gate.
func NewSession(id string, threshold int, scrollRate float64, scrollBurst int) *Session {
	s := &Session{
		ID:        id,
		Catalog:   store.NewCatalog(),
		Cart:      store.NewCart(),
		Threshold: threshold,
	}
	if scrollRate > 0 {
		s.scrollGate = rate.NewLimiter(rate.Limit(scrollRate), scrollBurst)
	}
	return s
}

// logContext attaches the session's log fields to ctx.
func (s *Session) logContext(ctx context.Context) context.Context {
	ctx = logger.WithSessionID(ctx, s.ID)
	if s.Feed != "" {
		ctx = logger.WithFields(ctx, zap.String("feed", s.Feed))
	}
	return ctx
}

// Scroll passes one scroll signal through the gate to the catalog. accepted is
// false when the gate dropped the signal; loaded reports a new page.
func (s *Session) Scroll(distanceFromBottomPx, threshold int) (accepted, loaded bool) {
	if s.scrollGate != nil && !s.scrollGate.Allow() {
		return false, false
	}
	if threshold <= 0 {
		threshold = s.Threshold
	}
	return true, s.Catalog.OnScrollNearBottom(distanceFromBottomPx, threshold)
}

// AddToCart adds the catalog product with the given id to the cart.
func (s *Session) AddToCart(id int) (domain.Product, error) {
	p, err := s.Catalog.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	s.Cart.AddItem(p)
	return p, nil
}
