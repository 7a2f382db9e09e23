package service

import (
	"context"

	"bistro-kart/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines read operations on the shop's menu.
type CatalogService interface {
	// Menu returns the whole menu document.
	Menu(ctx context.Context) model.Shop

	// List retrieves products with pagination, optionally filtered by category.
	List(ctx context.Context, category string, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int) (*model.Product, error)
}

// OrderService defines operations for order intake.
type OrderService interface {
	// CreateOrder validates the request and records it as a new order.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderCreated, error)

	// GetByID retrieves a recorded order.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderRecord, error)
}
