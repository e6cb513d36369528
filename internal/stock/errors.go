package stock

import (
	"errors"
	"fmt"
)

// Caller-input and lookup failures surfaced by the mutation operations.
// Handlers translate these into HTTP responses; anything else coming out of
// the stock package is a storage failure and rolls the whole unit of work
// back.
var (
	// ErrProductNotFound covers both a nonexistent product and a product
	// belonging to another shop. The two cases are deliberately
	// indistinguishable so a tenant cannot probe for other shops' ids.
	ErrProductNotFound = errors.New("product not found")

	ErrInvalidQuantity  = errors.New("quantity must be a positive number")
	ErrInvalidDirection = errors.New("adjustment type must be 'add' or 'remove'")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidCartLine  = errors.New("invalid cart item")
)

// InsufficientStockError aborts a mutation that would drive stock_quantity
// negative. Available carries the quantity at lock time for caller messaging.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (available: %d)", e.ProductName, e.Available)
}
