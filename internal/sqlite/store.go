// Package sqlite provides an embedded shop.Store backed by SQLite. It is the
// default backend for local development and the backend exercised by tests.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/trendhive/storefront/internal/shop"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

const timeFormat = time.RFC3339Nano

type Store struct {
	db *sql.DB

	// Serializes checkouts within the process. SQLite allows a single writer
	// anyway; the lock keeps "read stock then decrement" from interleaving
	// across goroutines instead of surfacing as busy errors.
	mu sync.Mutex
}

// Open opens (or creates) the store at path, applies the schema and seeds the
// catalog when empty.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{db: db}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if err := s.seed(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) seed() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	base := time.Now().UTC()
	for i, p := range shop.SeedProducts {
		createdAt := base.Add(time.Duration(i) * time.Millisecond)
		if _, err := s.db.Exec(
			`INSERT INTO products (title, description, price, image, stock, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			p.Title, p.Description, p.Price, p.Image, p.Stock, createdAt.Format(timeFormat),
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context) ([]shop.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, price, image, stock, created_at
		FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []shop.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id int64) (shop.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, price, image, stock, created_at
		FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return shop.Product{}, &shop.ProductNotFoundError{ID: id}
	}
	if err != nil {
		return shop.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]shop.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_name, customer_email, customer_address, total_amount, created_at
		FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []shop.Order{}
	for rows.Next() {
		var o shop.Order
		var createdAt string
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerAddress, &o.TotalAmount, &createdAt); err != nil {
			return nil, err
		}
		if o.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
			return nil, fmt.Errorf("parse order %d created_at: %w", o.ID, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := s.orderItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (s *Store) orderItems(ctx context.Context, orderID int64) ([]shop.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price_each
		FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list items for order %d: %w", orderID, err)
	}
	defer rows.Close()

	items := []shop.LineItem{}
	for rows.Next() {
		var it shop.LineItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PriceEach); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (shop.Product, error) {
	var p shop.Product
	var createdAt string
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Image, &p.Stock, &createdAt); err != nil {
		return shop.Product{}, err
	}
	t, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return shop.Product{}, fmt.Errorf("parse product %d created_at: %w", p.ID, err)
	}
	p.CreatedAt = t
	return p, nil
}

var _ shop.Store = (*Store)(nil)
