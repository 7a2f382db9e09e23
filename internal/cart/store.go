package cart

import (
	"bistro-kart/internal/model"

	"github.com/rs/zerolog"
)

// Store holds the cart of one session. It is owned by the session root and
// passed by reference to whatever needs the cart. A Store is not safe for
// concurrent use.
type Store struct {
	state  State
	logger zerolog.Logger
}

// NewStore creates an empty cart store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		logger: logger.With().Str("component", "cart").Logger(),
	}
}

// Dispatch applies cmd to the current state.
func (s *Store) Dispatch(cmd Command) {
	s.state = Apply(s.state, cmd)

	s.logger.Debug().
		Str("command", commandName(cmd)).
		Int("lines", len(s.state.Lines)).
		Int("items", s.GetTotalItems()).
		Msg("cart updated")
}

// AddItem adds quantity units of product to the cart.
func (s *Store) AddItem(product model.Product, quantity int) {
	s.Dispatch(AddItem{Product: product, Quantity: quantity})
}

// RemoveItem removes the line for productID.
func (s *Store) RemoveItem(productID int) {
	s.Dispatch(RemoveItem{ProductID: productID})
}

// UpdateQuantity replaces the quantity of the line for productID.
func (s *Store) UpdateQuantity(productID, quantity int) {
	s.Dispatch(UpdateQuantity{ProductID: productID, Quantity: quantity})
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.Dispatch(ClearCart{})
}

// Lines returns a copy of the current lines in cart order.
func (s *Store) Lines() []model.CartLine {
	return cloneLines(s.state.Lines)
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	return len(s.state.Lines) == 0
}

// GetTotalItems returns the sum of all line quantities.
func (s *Store) GetTotalItems() int {
	total := 0
	for _, l := range s.state.Lines {
		total += l.Qty
	}
	return total
}

// GetTotals computes HT, VAT and TTC from the current lines.
func (s *Store) GetTotals() model.Totals {
	return model.ComputeTotals(s.state.Lines)
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case AddItem:
		return "add_item"
	case RemoveItem:
		return "remove_item"
	case UpdateQuantity:
		return "update_quantity"
	case ClearCart:
		return "clear_cart"
	default:
		return "unknown"
	}
}
