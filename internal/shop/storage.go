package shop

import (
	"context"
	"strings"
)

// Store is the durable side of the shop: the catalog plus the order ledger.
// PlaceOrder is the only mutation; everything else is read-only.
type Store interface {
	// ListProducts returns the catalog, most-recently-created first.
	ListProducts(ctx context.Context) ([]Product, error)

	// GetProduct returns a product or *ProductNotFoundError.
	GetProduct(ctx context.Context, id int64) (Product, error)

	// PlaceOrder validates the cart against live stock, computes the total
	// from current prices, and atomically persists the order, its line items
	// and the stock decrements. Any failure leaves the store untouched.
	// Concurrent calls competing for the same stock never jointly oversell.
	PlaceOrder(ctx context.Context, items []ItemInput, customer Customer) (PlacedOrder, error)

	// ListOrders returns all orders newest first, with line items attached.
	ListOrders(ctx context.Context) ([]Order, error)

	Close() error
}

// ValidateCheckout rejects bad input before any storage work happens.
// Store implementations call it at the top of PlaceOrder.
func ValidateCheckout(items []ItemInput, customer Customer) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if strings.TrimSpace(customer.Name) == "" ||
		strings.TrimSpace(customer.Email) == "" ||
		strings.TrimSpace(customer.Address) == "" {
		return ErrMissingCustomer
	}
	return nil
}
