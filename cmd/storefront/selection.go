package main

import (
	"fmt"
	"strconv"
	"strings"
)

// selection is one -add flag value.
type selection struct {
	productID int
	quantity  int
}

// selectionList collects repeated -add flags.
type selectionList []selection

func (l *selectionList) String() string {
	parts := make([]string, len(*l))
	for i, s := range *l {
		parts[i] = fmt.Sprintf("%d:%d", s.productID, s.quantity)
	}
	return strings.Join(parts, ",")
}

// Set parses "id" or "id:qty". A missing quantity means 1.
func (l *selectionList) Set(value string) error {
	idPart, qtyPart, hasQty := strings.Cut(strings.TrimSpace(value), ":")

	id, err := strconv.Atoi(idPart)
	if err != nil {
		return fmt.Errorf("invalid product id %q", idPart)
	}

	qty := 1
	if hasQty {
		qty, err = strconv.Atoi(qtyPart)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", qtyPart)
		}
	}

	*l = append(*l, selection{productID: id, quantity: qty})
	return nil
}
