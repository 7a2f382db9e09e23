package service

import (
	"context"
	"fmt"
	"time"

	"bistro-kart/internal/model"
	"bistro-kart/internal/notify"
	"bistro-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	notifier  notify.Notifier
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	notifier notify.Notifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		notifier:  notifier,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder validates the request and records it in a single transaction.
// Totals are stored as submitted.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderCreated, error) {
	valid, err := validateOrderRequest(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("order request rejected")
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	// TIMESTAMPTZ keeps microseconds; the response must match the stored value.
	now := time.Now().UTC().Truncate(time.Microsecond)
	order := &model.OrderRecord{
		ID:        uuid.New(),
		ShopID:    valid.shopID,
		ShopName:  valid.shopName,
		FullName:  valid.fullName,
		Email:     valid.email,
		Phone:     valid.phone,
		Cart:      valid.cart,
		HT:        model.RoundMoney(valid.totals.HT),
		VAT:       model.RoundMoney(valid.totals.VAT),
		TTC:       model.RoundMoney(valid.totals.TTC),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("shop_id", order.ShopID).
		Str("ttc", order.TTC.StringFixed(2)).
		Msg("order created successfully")

	if nerr := s.notifier.OrderPlaced(ctx, order); nerr != nil {
		s.logger.Warn().Err(nerr).Str("order_id", order.ID.String()).Msg("order confirmation not sent")
	}

	return &model.OrderCreated{
		ID:        order.ID.String(),
		CreatedAt: order.CreatedAt,
	}, nil
}

// GetByID retrieves a recorded order.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderRecord, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}
