package checkout

import (
	"context"
	"errors"
	"sync/atomic"

	"bistro-kart/internal/cart"
	"bistro-kart/internal/model"

	"github.com/rs/zerolog"
)

// ErrSubmissionPending is returned when Submit is called while another
// submission of the same session is still in flight.
var ErrSubmissionPending = errors.New("checkout: a submission is already in progress")

// Submitter sends a built submission to the intake service.
type Submitter interface {
	CreateOrder(ctx context.Context, sub *model.OrderSubmission) (*model.OrderCreated, error)
}

// Session drives the checkout of one cart.
type Session struct {
	store     *cart.Store
	builder   *Builder
	submitter Submitter
	pending   atomic.Bool
	logger    zerolog.Logger
}

// NewSession creates a checkout session over store.
func NewSession(store *cart.Store, builder *Builder, submitter Submitter, logger zerolog.Logger) *Session {
	return &Session{
		store:     store,
		builder:   builder,
		submitter: submitter,
		logger:    logger.With().Str("component", "checkout").Logger(),
	}
}

// Pending reports whether a submission is in flight.
func (s *Session) Pending() bool {
	return s.pending.Load()
}

// Submit builds a submission from the current cart and sends it. The cart is
// cleared only once the service has confirmed the order; on any error it is
// left as it was.
func (s *Session) Submit(ctx context.Context, contact model.Contact) (*model.OrderCreated, error) {
	if !s.pending.CompareAndSwap(false, true) {
		return nil, ErrSubmissionPending
	}
	defer s.pending.Store(false)

	sub, err := s.builder.Build(s.store.Lines(), contact)
	if err != nil {
		s.logger.Debug().Err(err).Msg("checkout form rejected")
		return nil, err
	}

	created, err := s.submitter.CreateOrder(ctx, sub)
	if err != nil {
		s.logger.Warn().Err(err).Msg("order submission failed")
		return nil, err
	}

	s.store.ClearCart()

	s.logger.Info().
		Str("order_id", created.ID).
		Str("ttc", sub.Totals.TTC.StringFixed(2)).
		Msg("order confirmed")

	return created, nil
}
