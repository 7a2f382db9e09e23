package repository

import (
	"context"
	"errors"
	"fmt"

	"bistro-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction. The cart is
// stored as received.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.OrderRecord) error {
	query := `
		INSERT INTO orders (id, shop_id, shop_name, full_name, email, phone, cart_json, ht, vat, ttc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.ShopID,
		order.ShopName,
		order.FullName,
		order.Email,
		order.Phone,
		[]byte(order.Cart),
		order.HT,
		order.VAT,
		order.TTC,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("shop_id", order.ShopID).
		Msg("order created successfully")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderRecord, error) {
	query := `
		SELECT id, shop_id, shop_name, full_name, email, phone, cart_json, ht, vat, ttc, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var (
		order model.OrderRecord
		cart  []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.ShopID,
		&order.ShopName,
		&order.FullName,
		&order.Email,
		&order.Phone,
		&cart,
		&order.HT,
		&order.VAT,
		&order.TTC,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	order.Cart = cart

	return &order, nil
}

// CountByShop returns how many orders were recorded for a shop.
func (r *orderRepository) CountByShop(ctx context.Context, shopID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE shop_id = $1`, shopID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
