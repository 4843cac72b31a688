package shop

import "time"

// Product is a catalog entry. Price is in paise; Stock never goes below zero.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Image       string    `json:"image"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// Order is immutable once persisted. TotalAmount always equals the sum of
// PriceEach*Quantity over its items.
type Order struct {
	ID              int64      `json:"id"`
	CustomerName    string     `json:"customer_name"`
	CustomerEmail   string     `json:"customer_email"`
	CustomerAddress string     `json:"customer_address"`
	TotalAmount     int64      `json:"total_amount"`
	CreatedAt       time.Time  `json:"created_at"`
	Items           []LineItem `json:"items"`
}

// LineItem records the product price at order time, decoupled from later
// catalog price changes.
type LineItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	PriceEach int64 `json:"price_each"`
}

// ItemInput is one cart entry as submitted at checkout. Client-cached prices
// are never trusted; the store re-reads the current price.
type ItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// PlacedOrder is the result of a committed checkout.
type PlacedOrder struct {
	OrderID     int64
	TotalAmount int64
}
