package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/trendhive/storefront/internal/shop"
)

// PlaceOrder validates and commits the checkout in one transaction. Product
// rows are locked with FOR UPDATE in cart order, so two checkouts competing
// for the same stock serialize on the row and the loser sees the decremented
// count. The decrement itself is still conditional on sufficient stock.
func (s *Store) PlaceOrder(ctx context.Context, items []shop.ItemInput, customer shop.Customer) (shop.PlacedOrder, error) {
	if err := shop.ValidateCheckout(items, customer); err != nil {
		return shop.PlacedOrder{}, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return shop.PlacedOrder{}, fmt.Errorf("begin checkout: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

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
		err := tx.QueryRow(ctx,
			`SELECT title, price, stock FROM products WHERE id = $1 FOR UPDATE`, it.ProductID,
		).Scan(&title, &price, &stock)
		if errors.Is(err, pgx.ErrNoRows) {
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

	var orderID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (customer_name, customer_email, customer_address, total_amount)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		customer.Name, customer.Email, customer.Address, total,
	).Scan(&orderID); err != nil {
		return shop.PlacedOrder{}, fmt.Errorf("insert order: %w", err)
	}

	for _, l := range lines {
		ct, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
			l.quantity, l.productID)
		if err != nil {
			return shop.PlacedOrder{}, fmt.Errorf("decrement stock for product %d: %w", l.productID, err)
		}
		if ct.RowsAffected() != 1 {
			// A duplicate cart entry for the same product drained the row
			// inside this transaction.
			return shop.PlacedOrder{}, shortfall(ctx, tx, l.productID, l.quantity)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_each)
			VALUES ($1, $2, $3, $4)`,
			orderID, l.productID, l.quantity, l.priceEach); err != nil {
			return shop.PlacedOrder{}, fmt.Errorf("insert line item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return shop.PlacedOrder{}, fmt.Errorf("commit checkout: %w", err)
	}
	return shop.PlacedOrder{OrderID: orderID, TotalAmount: total}, nil
}

func shortfall(ctx context.Context, tx pgx.Tx, productID int64, requested int) error {
	var title string
	var stock int
	if err := tx.QueryRow(ctx,
		`SELECT title, stock FROM products WHERE id = $1`, productID,
	).Scan(&title, &stock); err != nil {
		return fmt.Errorf("read product %d: %w", productID, err)
	}
	return &shop.InsufficientStockError{
		ProductID: productID, Title: title, Requested: requested, Available: stock,
	}
}
