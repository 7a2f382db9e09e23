package cart

import "bistro-kart/internal/model"

// Command is a cart transition. The set is closed: AddItem, RemoveItem,
// UpdateQuantity and ClearCart.
type Command interface {
	isCommand()
}

// AddItem adds Quantity units of Product. A quantity of zero or less counts as 1.
type AddItem struct {
	Product  model.Product
	Quantity int
}

// RemoveItem deletes the line for ProductID, if any.
type RemoveItem struct {
	ProductID int
}

// UpdateQuantity sets the quantity of the line for ProductID.
// A quantity of zero or less removes the line.
type UpdateQuantity struct {
	ProductID int
	Quantity  int
}

// ClearCart empties the cart.
type ClearCart struct{}

func (AddItem) isCommand()        {}
func (RemoveItem) isCommand()     {}
func (UpdateQuantity) isCommand() {}
func (ClearCart) isCommand()      {}
