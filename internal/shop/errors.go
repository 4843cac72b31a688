package shop

import (
	"errors"
	"fmt"
)

// Input validation failures. These surface verbatim to the client.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingCustomer = errors.New("missing customer information")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// ProductNotFoundError reports a cart entry referencing a product that does
// not exist in the catalog.
type ProductNotFoundError struct {
	ID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ID)
}

// InsufficientStockError reports a requested quantity exceeding the stock
// available at commit time.
type InsufficientStockError struct {
	ProductID int64
	Title     string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.Title, e.Requested, e.Available)
}

// IsUserError reports whether err is a checkout failure the caller can fix,
// as opposed to a storage failure that must not leak its detail.
func IsUserError(err error) bool {
	var notFound *ProductNotFoundError
	var noStock *InsufficientStockError
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrMissingCustomer) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.As(err, &notFound) ||
		errors.As(err, &noStock)
}
