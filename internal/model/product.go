package model

import "github.com/shopspring/decimal"

// Product represents a dish or drink in the shop menu.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Shop is the catalog document: one shop and its ordered product list.
type Shop struct {
	ShopID   string    `json:"shopId"`
	ShopName string    `json:"shopName"`
	Products []Product `json:"products"`
}
