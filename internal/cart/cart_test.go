package cart

import (
	"errors"
	"testing"

	"github.com/trendhive/storefront/internal/shop"
)

var (
	tee    = shop.Product{ID: 1, Title: "Classic Tee", Price: 59900, Stock: 25}
	hoodie = shop.Product{ID: 2, Title: "Comfy Hoodie", Price: 199900, Stock: 15}
)

func TestAddMergesSameProduct(t *testing.T) {
	c := New(NewMemory(), "")

	if err := c.Add(tee, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(tee, 3); err != nil {
		t.Fatalf("add again: %v", err)
	}

	items, err := c.Items()
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single merged entry, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	if items[0].Title != "Classic Tee" || items[0].Price != 59900 {
		t.Fatalf("unexpected cached fields: %+v", items[0])
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	c := New(NewMemory(), "")
	if err := c.Add(tee, 0); !errors.Is(err, shop.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestSetQuantityRemoveClear(t *testing.T) {
	c := New(NewMemory(), "")
	if err := c.Add(tee, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(hoodie, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := c.SetQuantity(tee.ID, 4); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if err := c.SetQuantity(99, 1); err == nil {
		t.Fatal("expected error setting quantity of absent product")
	}
	if err := c.SetQuantity(tee.ID, 0); !errors.Is(err, shop.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	if err := c.Remove(hoodie.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, err := c.Items()
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != tee.ID || items[0].Quantity != 4 {
		t.Fatalf("unexpected cart: %+v", items)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	items, err = c.Items()
	if err != nil {
		t.Fatalf("items after clear: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestCheckoutItems(t *testing.T) {
	c := New(NewMemory(), "")
	if err := c.Add(tee, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := c.CheckoutItems()
	if err != nil {
		t.Fatalf("checkout items: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 1 || got[0].Quantity != 3 {
		t.Fatalf("unexpected checkout items: %+v", got)
	}
}

func TestFileStoragePersistsWholesale(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("new file storage: %v", err)
	}

	c := New(fs, "")
	if err := c.Add(tee, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A fresh Cart over the same directory sees the persisted list.
	c2 := New(fs, "")
	items, err := c2.Items()
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected persisted cart: %+v", items)
	}

	if err := c2.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	// Clearing an already-empty cart is fine.
	if err := c2.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
