package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/trendhive/storefront/internal/redisx"
	"github.com/trendhive/storefront/internal/shop"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if body, ok := h.cacheGet(ctx, redisx.KeyProductList); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	ps, err := h.Store.ListProducts(ctx)
	if err != nil {
		log.Printf("list products: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	body, err := json.Marshal(ps)
	if err != nil {
		log.Printf("encode products: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	h.cacheSet(ctx, redisx.KeyProductList, body)
	writeRawJSON(w, http.StatusOK, body)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	// A malformed id behaves like an absent product, as the original did.
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyProduct, id)
	if body, ok := h.cacheGet(ctx, key); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	p, err := h.Store.GetProduct(ctx, id)
	var notFound *shop.ProductNotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("get product %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	body, err := json.Marshal(p)
	if err != nil {
		log.Printf("encode product %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	h.cacheSet(ctx, key, body)
	writeRawJSON(w, http.StatusOK, body)
}

func (h *Handler) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if h.Redis == nil {
		return nil, false
	}
	s, err := h.Redis.Get(ctx, key).Result()
	if err != nil || s == "" {
		return nil, false
	}
	return []byte(s), true
}

func (h *Handler) cacheSet(ctx context.Context, key string, body []byte) {
	if h.Redis == nil {
		return
	}
	_ = h.Redis.Set(ctx, key, body, redisx.TTLCatalog).Err()
}
