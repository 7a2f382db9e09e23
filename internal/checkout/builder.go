package checkout

import (
	"strings"

	"bistro-kart/internal/model"
)

// Field messages shared by the builder and the intake service.
const (
	msgRequired     = "is required"
	msgInvalidEmail = "must be a valid email address"
	msgEmptyCart    = "must contain at least one line"
)

// Builder assembles order submissions for a single shop.
type Builder struct {
	shopID   string
	shopName string
}

// NewBuilder creates a builder bound to the deployment's shop.
func NewBuilder(shopID, shopName string) *Builder {
	return &Builder{shopID: shopID, shopName: shopName}
}

// Build validates the contact and the cart, then snapshots lines and their
// totals into a submission. Nothing is sent; on a validation failure the
// returned error is a *model.ValidationError.
func (b *Builder) Build(lines []model.CartLine, contact model.Contact) (*model.OrderSubmission, error) {
	fullName := strings.TrimSpace(contact.FullName)
	email := strings.TrimSpace(contact.Email)
	phone := strings.TrimSpace(contact.Phone)

	verr := model.NewValidationError()
	if fullName == "" {
		verr.Add("fullName", msgRequired)
	}
	if email == "" {
		verr.Add("email", msgRequired)
	} else if !model.ValidEmail(email) {
		verr.Add("email", msgInvalidEmail)
	}
	if phone == "" {
		verr.Add("phone", msgRequired)
	}
	if len(lines) == 0 {
		verr.Add("cart", msgEmptyCart)
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	snapshot := make([]model.CartLine, len(lines))
	copy(snapshot, lines)

	return &model.OrderSubmission{
		ShopID:   b.shopID,
		ShopName: b.shopName,
		FullName: fullName,
		Email:    email,
		Phone:    phone,
		Cart:     snapshot,
		Totals:   model.ComputeTotals(snapshot),
	}, nil
}
