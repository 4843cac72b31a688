package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	kafkax "github.com/trendhive/storefront/internal/kafka"
	"github.com/trendhive/storefront/internal/shop"
)

// Handler serves the storefront API. Redis and Producer are optional: without
// Redis every read hits the store, without Producer no events are published.
type Handler struct {
	Store    shop.Store
	Redis    *redis.Client
	Producer *kafkax.Producer
	Service  string
}

func (h *Handler) Register(r *chi.Mux) {
	r.Route("/api", func(api chi.Router) {
		api.Get("/products", h.listProducts)
		api.Get("/products/{id}", h.getProduct)
		api.Get("/orders", h.listOrders)
		api.Post("/orders", h.createOrder)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
