package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contact holds the customer fields collected at checkout.
type Contact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// OrderSubmission is the payload sent to create an order.
// Cart and Totals are snapshots taken when the submission was built.
type OrderSubmission struct {
	ShopID   string     `json:"shopId"`
	ShopName string     `json:"shopName"`
	FullName string     `json:"fullName"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Cart     []CartLine `json:"cart"`
	Totals   Totals     `json:"totals"`
}

// OrderRequest is the order creation payload as received by the intake
// service. Fields stay raw so that each one can be validated on its own.
type OrderRequest struct {
	ShopID   json.RawMessage `json:"shopId"`
	ShopName json.RawMessage `json:"shopName"`
	FullName json.RawMessage `json:"fullName"`
	Email    json.RawMessage `json:"email"`
	Phone    json.RawMessage `json:"phone"`
	Cart     json.RawMessage `json:"cart"`
	Totals   json.RawMessage `json:"totals"`
}

// OrderRecord is a persisted order.
type OrderRecord struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	ShopID    string          `json:"shopId" db:"shop_id"`
	ShopName  string          `json:"shopName" db:"shop_name"`
	FullName  string          `json:"fullName" db:"full_name"`
	Email     string          `json:"email" db:"email"`
	Phone     string          `json:"phone" db:"phone"`
	Cart      json.RawMessage `json:"cart" db:"cart_json"`
	HT        decimal.Decimal `json:"ht" db:"ht"`
	VAT       decimal.Decimal `json:"vat" db:"vat"`
	TTC       decimal.Decimal `json:"ttc" db:"ttc"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderCreated is the response body of a successful order creation.
type OrderCreated struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
