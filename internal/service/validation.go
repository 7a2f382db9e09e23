package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"bistro-kart/internal/model"

	"github.com/shopspring/decimal"
)

const (
	msgRequired     = "is required"
	msgNotString    = "must be a string"
	msgInvalidEmail = "must be a valid email address"
	msgNotArray     = "must be an array"
	msgEmptyCart    = "must contain at least one line"
	msgNotObject    = "must be an object"
	msgNotNumber    = "must be a number"
	msgNegative     = "must not be negative"
	msgOutOfRange   = "is out of range"
)

// maxAmount is the largest value a NUMERIC(10,2) column holds.
var maxAmount = decimal.RequireFromString("99999999.99")

// validOrder is an order request whose fields all passed validation.
type validOrder struct {
	shopID   string
	shopName string
	fullName string
	email    string
	phone    string
	cart     json.RawMessage
	totals   model.Totals
}

// validateOrderRequest checks every field of req and reports all offending
// fields at once.
func validateOrderRequest(req *model.OrderRequest) (*validOrder, error) {
	verr := model.NewValidationError()
	if req == nil {
		req = &model.OrderRequest{}
	}

	v := &validOrder{
		shopID:   requiredString(verr, "shopId", req.ShopID),
		shopName: requiredString(verr, "shopName", req.ShopName),
		fullName: requiredString(verr, "fullName", req.FullName),
		email:    requiredString(verr, "email", req.Email),
		phone:    requiredString(verr, "phone", req.Phone),
		cart:     requiredCart(verr, req.Cart),
		totals:   requiredTotals(verr, req.Totals),
	}

	if v.email != "" && !model.ValidEmail(v.email) {
		verr.Add("email", msgInvalidEmail)
	}

	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	return v, nil
}

func isMissing(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func requiredString(verr *model.ValidationError, field string, raw json.RawMessage) string {
	if isMissing(raw) {
		verr.Add(field, msgRequired)
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		verr.Add(field, msgNotString)
		return ""
	}

	s = strings.TrimSpace(s)
	if s == "" {
		verr.Add(field, msgRequired)
	}
	return s
}

func requiredCart(verr *model.ValidationError, raw json.RawMessage) json.RawMessage {
	if isMissing(raw) {
		verr.Add("cart", msgRequired)
		return nil
	}

	var lines []json.RawMessage
	if err := json.Unmarshal(raw, &lines); err != nil {
		verr.Add("cart", msgNotArray)
		return nil
	}
	if len(lines) == 0 {
		verr.Add("cart", msgEmptyCart)
		return nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		verr.Add("cart", msgNotArray)
		return nil
	}
	return compact.Bytes()
}

func requiredTotals(verr *model.ValidationError, raw json.RawMessage) model.Totals {
	var totals model.Totals

	fields := map[string]json.RawMessage{}
	if !isMissing(raw) {
		if err := json.Unmarshal(raw, &fields); err != nil {
			verr.Add("totals", msgNotObject)
			return totals
		}
	}

	totals.HT = requiredAmount(verr, "totals.ht", fields["ht"])
	totals.VAT = requiredAmount(verr, "totals.vat", fields["vat"])
	totals.TTC = requiredAmount(verr, "totals.ttc", fields["ttc"])
	return totals
}

// requiredAmount accepts a JSON number or a string holding a number.
func requiredAmount(verr *model.ValidationError, field string, raw json.RawMessage) decimal.Decimal {
	if isMissing(raw) {
		verr.Add(field, msgRequired)
		return decimal.Zero
	}

	text := string(bytes.TrimSpace(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			verr.Add(field, msgNotNumber)
			return decimal.Zero
		}
		text = strings.TrimSpace(s)
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		verr.Add(field, msgNotNumber)
		return decimal.Zero
	}
	if amount.IsNegative() {
		verr.Add(field, msgNegative)
		return decimal.Zero
	}
	if model.RoundMoney(amount).GreaterThan(maxAmount) {
		verr.Add(field, msgOutOfRange)
		return decimal.Zero
	}
	return amount
}
