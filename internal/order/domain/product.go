package domain

import (
	"errors"
	"fmt"
)

// Product is an inventory record. Quantity is only ever mutated through the
// store's conditional decrement and never goes negative.
type Product struct {
	ProductID  string
	Name       string
	PriceCents int64
	Quantity   int64
}

// Store-level outcomes of the conditional decrement.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// FormatPrice renders integer cents as a decimal string, e.g. 5997 -> "59.97".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
