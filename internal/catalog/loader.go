package catalog

import (
	"context"
	"fmt"
	"os"

	"bistro-kart/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for menu documents on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a JSON menu document from the local file system.
func (l *fileLoader) Load(ctx context.Context, path string) (*model.Shop, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", path).Msg("loading menu file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open menu file")
		return nil, fmt.Errorf("failed to open menu file %s: %w", path, err)
	}
	defer file.Close()

	shop, err := decodeShop(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode menu file")
		return nil, fmt.Errorf("failed to decode menu file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Str("shop_id", shop.ShopID).
		Int("products_loaded", len(shop.Products)).
		Msg("menu file loaded successfully")

	return shop, nil
}
