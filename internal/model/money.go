package model

import "github.com/shopspring/decimal"

func init() {
	// Money travels as a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// VATRate is the fixed value-added tax rate applied to the pre-tax subtotal.
var VATRate = decimal.RequireFromString("0.20")

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
