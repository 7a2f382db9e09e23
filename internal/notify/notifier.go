package notify

import (
	"context"

	"bistro-kart/internal/model"

	"github.com/rs/zerolog"
)

// Notifier tells the customer that their order was recorded.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *model.OrderRecord) error
}

// nopNotifier only logs.
type nopNotifier struct {
	logger zerolog.Logger
}

// NewNopNotifier returns a Notifier that sends nothing.
func NewNopNotifier(logger zerolog.Logger) Notifier {
	return &nopNotifier{logger: logger.With().Str("component", "notifier").Logger()}
}

func (n *nopNotifier) OrderPlaced(ctx context.Context, order *model.OrderRecord) error {
	n.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("mail disabled, skipping order confirmation")
	return nil
}
