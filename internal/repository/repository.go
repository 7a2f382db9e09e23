package repository

import (
	"context"

	"bistro-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.OrderRecord) error

	// GetByID retrieves an order by its ID. It returns nil, nil when no
	// order has that ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderRecord, error)

	// CountByShop returns how many orders were recorded for a shop.
	CountByShop(ctx context.Context, shopID string) (int, error)
}
