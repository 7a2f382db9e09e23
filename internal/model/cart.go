package model

import "github.com/shopspring/decimal"

// CartLine is one product-quantity pairing in the cart.
// Name and UnitPrice are copied from the product when the line is created.
type CartLine struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Qty       int             `json:"qty"`
}

// Subtotal returns UnitPrice × Qty.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Totals holds the derived amounts of a cart.
type Totals struct {
	HT  decimal.Decimal `json:"ht"`
	VAT decimal.Decimal `json:"vat"`
	TTC decimal.Decimal `json:"ttc"`
}

// ComputeTotals derives HT, VAT and TTC from the given lines.
// Every amount is rounded to two decimals; VAT is taken on the rounded HT.
func ComputeTotals(lines []CartLine) Totals {
	ht := decimal.Zero
	for _, l := range lines {
		ht = ht.Add(l.Subtotal())
	}
	ht = RoundMoney(ht)
	vat := RoundMoney(ht.Mul(VATRate))

	return Totals{
		HT:  ht,
		VAT: vat,
		TTC: RoundMoney(ht.Add(vat)),
	}
}
