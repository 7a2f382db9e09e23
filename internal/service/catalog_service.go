package service

import (
	"context"

	"bistro-kart/internal/catalog"
	"bistro-kart/internal/model"

	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// catalogService implements CatalogService over an in-memory catalog.
type catalogService struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(c *catalog.Catalog, logger zerolog.Logger) CatalogService {
	return &catalogService{
		catalog: c,
		logger:  logger.With().Str("service", "catalog").Logger(),
	}
}

// Menu returns the whole menu document.
func (s *catalogService) Menu(ctx context.Context) model.Shop {
	return s.catalog.Shop()
}

// List retrieves products with pagination.
func (s *catalogService) List(ctx context.Context, category string, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	products := s.catalog.Page(category, limit, offset)

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", category).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *catalogService) GetByID(ctx context.Context, id int) (*model.Product, error) {
	product, ok := s.catalog.Product(id)
	if !ok {
		s.logger.Debug().Int("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return &product, nil
}
