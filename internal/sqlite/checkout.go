package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trendhive/storefront/internal/shop"
)

// PlaceOrder runs the whole checkout in one transaction: validate every cart
// entry against live stock, price the order from current catalog prices,
// then insert the order, its line items and the stock decrements together.
// Any failure rolls the transaction back and the store is left untouched.
func (s *Store) PlaceOrder(ctx context.Context, items []shop.ItemInput, customer shop.Customer) (shop.PlacedOrder, error) {
	if err := shop.ValidateCheckout(items, customer); err != nil {
		return shop.PlacedOrder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return shop.PlacedOrder{}, fmt.Errorf("begin checkout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	type line struct {
		productID int64
		quantity  int
		priceEach int64
	}
	lines := make([]line, 0, len(items))
	var total int64
	for _, it := range items {
		var title string
		var price int64
		var stock int
		err := tx.QueryRowContext(ctx,
			`SELECT title, price, stock FROM products WHERE id = ?`, it.ProductID,
		).Scan(&title, &price, &stock)
		if errors.Is(err, sql.ErrNoRows) {
			return shop.PlacedOrder{}, &shop.ProductNotFoundError{ID: it.ProductID}
		}
		if err != nil {
			return shop.PlacedOrder{}, fmt.Errorf("read product %d: %w", it.ProductID, err)
		}
		if stock < it.Quantity {
			return shop.PlacedOrder{}, &shop.InsufficientStockError{
				ProductID: it.ProductID, Title: title, Requested: it.Quantity, Available: stock,
			}
		}
		total += price * int64(it.Quantity)
		lines = append(lines, line{productID: it.ProductID, quantity: it.Quantity, priceEach: price})
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (customer_name, customer_email, customer_address, total_amount, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		customer.Name, customer.Email, customer.Address, total, time.Now().UTC().Format(timeFormat))
	if err != nil {
		return shop.PlacedOrder{}, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return shop.PlacedOrder{}, fmt.Errorf("order id: %w", err)
	}

	for _, l := range lines {
		// The decrement re-checks stock at write time. A cart listing the
		// same product twice is caught here even though each entry passed
		// validation on its own.
		uc, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`,
			l.quantity, l.productID, l.quantity)
		if err != nil {
			return shop.PlacedOrder{}, fmt.Errorf("decrement stock for product %d: %w", l.productID, err)
		}
		if n, err := uc.RowsAffected(); err != nil {
			return shop.PlacedOrder{}, fmt.Errorf("decrement stock for product %d: %w", l.productID, err)
		} else if n != 1 {
			return shop.PlacedOrder{}, shortfall(ctx, tx, l.productID, l.quantity)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_each)
			VALUES (?, ?, ?, ?)`,
			orderID, l.productID, l.quantity, l.priceEach); err != nil {
			return shop.PlacedOrder{}, fmt.Errorf("insert line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return shop.PlacedOrder{}, fmt.Errorf("commit checkout: %w", err)
	}
	return shop.PlacedOrder{OrderID: orderID, TotalAmount: total}, nil
}

// shortfall re-reads the product so the error names the stock actually left.
func shortfall(ctx context.Context, tx *sql.Tx, productID int64, requested int) error {
	var title string
	var stock int
	if err := tx.QueryRowContext(ctx,
		`SELECT title, stock FROM products WHERE id = ?`, productID,
	).Scan(&title, &stock); err != nil {
		return fmt.Errorf("read product %d: %w", productID, err)
	}
	return &shop.InsufficientStockError{
		ProductID: productID, Title: title, Requested: requested, Available: stock,
	}
}
