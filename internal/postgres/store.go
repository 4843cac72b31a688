// Package postgres provides the production shop.Store backed by Postgres.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trendhive/storefront/internal/shop"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres, applies the schema and seeds the catalog when
// empty.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := &Store{pool: pool}
	// One statement per Exec: pgx's extended protocol rejects batches.
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if stmt = strings.TrimSpace(stmt); stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	if err := s.seed(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) seed(ctx context.Context) error {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, p := range shop.SeedProducts {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO products (title, description, price, image, stock) VALUES ($1, $2, $3, $4, $5)`,
			p.Title, p.Description, p.Price, p.Image, p.Stock,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context) ([]shop.Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description, price, image, stock, created_at
		FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []shop.Product{}
	for rows.Next() {
		var p shop.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Image, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id int64) (shop.Product, error) {
	var p shop.Product
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, description, price, image, stock, created_at
		FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Image, &p.Stock, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return shop.Product{}, &shop.ProductNotFoundError{ID: id}
	}
	if err != nil {
		return shop.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]shop.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, customer_name, customer_email, customer_address, total_amount, created_at
		FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []shop.Order{}
	for rows.Next() {
		var o shop.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerAddress, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, err
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
	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price_each
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
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

var _ shop.Store = (*Store)(nil)
