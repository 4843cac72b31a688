package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendhive/storefront/internal/shop"
	"github.com/trendhive/storefront/internal/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	r := chi.NewRouter()
	h := &Handler{Store: store, Service: "storefront-test"}
	h.Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload["error"]
}

func validCustomer() shop.Customer {
	return shop.Customer{Name: "Asha", Email: "asha@example.com", Address: "12 MG Road"}
}

func TestListProducts(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []shop.Product
	require.NoError(t, json.Unmarshal(body, &products))
	require.Len(t, products, 4)
	assert.Equal(t, "Running Shoes", products[0].Title, "newest seeded product first")
	assert.Equal(t, "Classic Tee", products[3].Title)
	assert.EqualValues(t, 59900, products[3].Price)
}

func TestGetProduct(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/products/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p shop.Product
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "Classic Tee", p.Title)
	assert.Equal(t, 25, p.Stock)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/products/999", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product not found", errorMessage(t, body))

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/products/abc", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateOrder(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/orders", CreateOrderReq{
		Items:    []shop.ItemInput{{ProductID: 1, Quantity: 3}},
		Customer: validCustomer(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

	var placed CreateOrderResp
	require.NoError(t, json.Unmarshal(body, &placed))
	assert.True(t, placed.OK)
	assert.EqualValues(t, 179700, placed.TotalAmount)
	assert.Equal(t, "₹1797.00", placed.TotalReadable)
	assert.NotZero(t, placed.OrderID)

	// Stock dropped 25 -> 22.
	_, body = doJSON(t, http.MethodGet, srv.URL+"/api/products/1", nil)
	var p shop.Product
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, 22, p.Stock)

	// Admin listing carries the nested line item.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []shop.Order
	require.NoError(t, json.Unmarshal(body, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, placed.OrderID, orders[0].ID)
	assert.Equal(t, "Asha", orders[0].CustomerName)
	require.Len(t, orders[0].Items, 1)
	assert.EqualValues(t, 59900, orders[0].Items[0].PriceEach)
	assert.Equal(t, 3, orders[0].Items[0].Quantity)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/orders", CreateOrderReq{
		Items:    []shop.ItemInput{},
		Customer: validCustomer(),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, body), "empty")

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/orders", CreateOrderReq{
		Items: []shop.ItemInput{{ProductID: 1, Quantity: 1}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, shop.ErrMissingCustomer.Error(), errorMessage(t, body))

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/orders", CreateOrderReq{
		Items:    []shop.ItemInput{{ProductID: 404, Quantity: 1}},
		Customer: validCustomer(),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "product 404 not found", errorMessage(t, body))

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/orders", CreateOrderReq{
		Items:    []shop.ItemInput{{ProductID: 1, Quantity: 26}},
		Customer: validCustomer(),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, body), "insufficient stock for Classic Tee")

	// No rows were written by any of the rejected requests.
	_, body = doJSON(t, http.MethodGet, srv.URL+"/api/orders", nil)
	var orders []shop.Order
	require.NoError(t, json.Unmarshal(body, &orders))
	assert.Empty(t, orders)
}

func TestCreateOrderRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/orders", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(NewRouter(""))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
