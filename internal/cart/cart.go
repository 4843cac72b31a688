// Package cart implements the client-local shopping cart: an ordered list of
// items serialized wholesale under one well-known key. It has no consistency
// relationship with server-side stock; checkout is the reconciliation point.
package cart

import (
	"encoding/json"
	"fmt"

	"github.com/trendhive/storefront/internal/shop"
)

// DefaultKey is the well-known storage key the whole cart lives under.
const DefaultKey = "trendhive_cart"

// Item is one cart entry. Title and Price are cached at add time for display
// only; the server re-prices everything at checkout.
type Item struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Storage persists one opaque blob per key.
type Storage interface {
	// Load returns the blob for key, or nil when nothing is stored.
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(key string) error
}

// Cart reads and writes the whole item list on every mutation.
type Cart struct {
	storage Storage
	key     string
}

func New(storage Storage, key string) *Cart {
	if key == "" {
		key = DefaultKey
	}
	return &Cart{storage: storage, key: key}
}

// Items returns the current cart contents.
func (c *Cart) Items() ([]Item, error) {
	return c.load()
}

// Add puts qty units of p in the cart, merging into an existing entry for the
// same product by summing quantities.
func (c *Cart) Add(p shop.Product, qty int) error {
	if qty <= 0 {
		return shop.ErrInvalidQuantity
	}
	items, err := c.load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ProductID == p.ID {
			items[i].Quantity += qty
			return c.save(items)
		}
	}
	items = append(items, Item{ProductID: p.ID, Title: p.Title, Price: p.Price, Quantity: qty})
	return c.save(items)
}

// SetQuantity replaces the quantity of an existing entry.
func (c *Cart) SetQuantity(productID int64, qty int) error {
	if qty <= 0 {
		return shop.ErrInvalidQuantity
	}
	items, err := c.load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = qty
			return c.save(items)
		}
	}
	return fmt.Errorf("product %d is not in the cart", productID)
}

// Remove drops the entry for productID; removing an absent product is a no-op.
func (c *Cart) Remove(productID int64) error {
	items, err := c.load()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	return c.save(kept)
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	return c.storage.Delete(c.key)
}

// CheckoutItems converts the cart into the checkout request shape.
func (c *Cart) CheckoutItems() ([]shop.ItemInput, error) {
	items, err := c.load()
	if err != nil {
		return nil, err
	}
	out := make([]shop.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, shop.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out, nil
}

func (c *Cart) load() ([]Item, error) {
	data, err := c.storage.Load(c.key)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(data) == 0 {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (c *Cart) save(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.storage.Save(c.key, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
