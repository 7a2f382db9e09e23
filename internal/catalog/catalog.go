package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"bistro-kart/internal/model"
)

// Loader defines the interface for loading the menu document.
type Loader interface {
	// Load reads the menu document at path and returns the shop it describes.
	Load(ctx context.Context, path string) (*model.Shop, error)
}

// Catalog is the read-only product list of one shop for the whole session.
type Catalog struct {
	shop  model.Shop
	index map[int]int
}

// New validates shop and builds a catalog from it. Products keep the
// document order.
func New(shop model.Shop) (*Catalog, error) {
	if shop.ShopID == "" {
		return nil, fmt.Errorf("catalog: shopId is required")
	}

	products := make([]model.Product, len(shop.Products))
	copy(products, shop.Products)

	index := make(map[int]int, len(products))
	for i, p := range products {
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("catalog: product %d has a negative price", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("catalog: product %d has a negative stock", p.ID)
		}
		index[p.ID] = i
	}

	shop.Products = products
	return &Catalog{shop: shop, index: index}, nil
}

// Shop returns a copy of the menu document.
func (c *Catalog) Shop() model.Shop {
	s := c.shop
	s.Products = c.Products()
	return s
}

// Products returns all products in document order.
func (c *Catalog) Products() []model.Product {
	out := make([]model.Product, len(c.shop.Products))
	copy(out, c.shop.Products)
	return out
}

// Product looks up a product by id.
func (c *Catalog) Product(id int) (model.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Product{}, false
	}
	return c.shop.Products[i], true
}

// Page returns up to limit products starting at offset, optionally restricted
// to one category.
func (c *Catalog) Page(category string, limit, offset int) []model.Product {
	out := make([]model.Product, 0, limit)
	skipped := 0
	for _, p := range c.shop.Products {
		if category != "" && p.Category != category {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out
}

// ClampQuantity applies the product detail rule: nothing can be added when
// the product is out of stock, otherwise the requested quantity is brought
// into [1, stock].
func ClampQuantity(p model.Product, requested int) (int, error) {
	if !p.InStock() {
		return 0, model.ErrOutOfStock
	}
	if requested < 1 {
		return 1, nil
	}
	if requested > p.Stock {
		return p.Stock, nil
	}
	return requested, nil
}

func decodeShop(r io.Reader) (*model.Shop, error) {
	var shop model.Shop
	if err := json.NewDecoder(r).Decode(&shop); err != nil {
		return nil, err
	}
	return &shop, nil
}
