package shop

import "testing"

func TestFormatPaise(t *testing.T) {
	cases := []struct {
		paise int64
		want  string
	}{
		{0, "₹0.00"},
		{5, "₹0.05"},
		{59900, "₹599.00"},
		{179700, "₹1797.00"},
		{199901, "₹1999.01"},
	}
	for _, c := range cases {
		if got := FormatPaise(c.paise); got != c.want {
			t.Errorf("FormatPaise(%d) = %q, want %q", c.paise, got, c.want)
		}
	}
}

func TestValidateCheckout(t *testing.T) {
	customer := Customer{Name: "Asha", Email: "asha@example.com", Address: "12 MG Road"}
	items := []ItemInput{{ProductID: 1, Quantity: 2}}

	if err := ValidateCheckout(nil, customer); err != ErrEmptyCart {
		t.Fatalf("empty cart: got %v, want ErrEmptyCart", err)
	}
	if err := ValidateCheckout([]ItemInput{{ProductID: 1, Quantity: 0}}, customer); err != ErrInvalidQuantity {
		t.Fatalf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}
	for _, c := range []Customer{
		{Email: "a@b.c", Address: "x"},
		{Name: "a", Address: "x"},
		{Name: "a", Email: "a@b.c"},
		{Name: "  ", Email: "a@b.c", Address: "x"},
	} {
		if err := ValidateCheckout(items, c); err != ErrMissingCustomer {
			t.Fatalf("customer %+v: got %v, want ErrMissingCustomer", c, err)
		}
	}
	if err := ValidateCheckout(items, customer); err != nil {
		t.Fatalf("valid input: unexpected error %v", err)
	}
}

func TestIsUserError(t *testing.T) {
	for _, err := range []error{
		ErrEmptyCart,
		ErrMissingCustomer,
		ErrInvalidQuantity,
		&ProductNotFoundError{ID: 9},
		&InsufficientStockError{ProductID: 1, Title: "Classic Tee", Requested: 3, Available: 1},
	} {
		if !IsUserError(err) {
			t.Errorf("IsUserError(%v) = false, want true", err)
		}
	}
	if IsUserError(errDB) {
		t.Errorf("IsUserError should be false for storage errors")
	}
}

var errDB = &fakeStorageErr{}

type fakeStorageErr struct{}

func (*fakeStorageErr) Error() string { return "write conflict" }
