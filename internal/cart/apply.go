package cart

import "bistro-kart/internal/model"

// State is the ordered list of cart lines. New lines are appended; existing
// lines keep their position when their quantity changes.
type State struct {
	Lines []model.CartLine
}

// Apply returns the state that results from applying cmd to s.
// s itself is never modified. Unknown commands leave the state unchanged.
func Apply(s State, cmd Command) State {
	switch c := cmd.(type) {
	case AddItem:
		return addItem(s, c)
	case RemoveItem:
		return removeItem(s, c.ProductID)
	case UpdateQuantity:
		if c.Quantity <= 0 {
			return removeItem(s, c.ProductID)
		}
		return updateQuantity(s, c)
	case ClearCart:
		return State{}
	default:
		return s
	}
}

func addItem(s State, c AddItem) State {
	qty := c.Quantity
	if qty <= 0 {
		qty = 1
	}

	lines := cloneLines(s.Lines)
	if i := indexOf(lines, c.Product.ID); i >= 0 {
		lines[i].Qty += qty
		return State{Lines: lines}
	}

	lines = append(lines, model.CartLine{
		ProductID: c.Product.ID,
		Name:      c.Product.Name,
		UnitPrice: c.Product.Price,
		Qty:       qty,
	})
	return State{Lines: lines}
}

func removeItem(s State, productID int) State {
	if indexOf(s.Lines, productID) < 0 {
		return s
	}

	lines := make([]model.CartLine, 0, len(s.Lines)-1)
	for _, l := range s.Lines {
		if l.ProductID != productID {
			lines = append(lines, l)
		}
	}
	return State{Lines: lines}
}

func updateQuantity(s State, c UpdateQuantity) State {
	i := indexOf(s.Lines, c.ProductID)
	if i < 0 {
		return s
	}

	lines := cloneLines(s.Lines)
	lines[i].Qty = c.Quantity
	return State{Lines: lines}
}

func indexOf(lines []model.CartLine, productID int) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func cloneLines(lines []model.CartLine) []model.CartLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out
}
