package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	kafkax "github.com/trendhive/storefront/internal/kafka"
	"github.com/trendhive/storefront/internal/redisx"
	"github.com/trendhive/storefront/internal/shop"
)

type CreateOrderReq struct {
	Items    []shop.ItemInput `json:"items"`
	Customer shop.Customer    `json:"customer"`
}

type CreateOrderResp struct {
	OK            bool   `json:"ok"`
	OrderID       int64  `json:"order_id"`
	TotalAmount   int64  `json:"total_amount"`
	TotalReadable string `json:"total_readable"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	placed, err := h.Store.PlaceOrder(ctx, req.Items, req.Customer)
	if err != nil {
		if shop.IsUserError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("place order: %v", err)
		writeError(w, http.StatusInternalServerError, "order failed")
		return
	}

	h.invalidateCatalogCache(ctx, req.Items)
	h.publishOrderPlaced(r, placed, req.Items)

	writeJSON(w, http.StatusOK, CreateOrderResp{
		OK:            true,
		OrderID:       placed.OrderID,
		TotalAmount:   placed.TotalAmount,
		TotalReadable: shop.FormatPaise(placed.TotalAmount),
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Store.ListOrders(ctx)
	if err != nil {
		log.Printf("list orders: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// invalidateCatalogCache drops cached views of the products a committed
// checkout just decremented.
func (h *Handler) invalidateCatalogCache(ctx context.Context, items []shop.ItemInput) {
	if h.Redis == nil {
		return
	}
	keys := []string{redisx.KeyProductList}
	for _, it := range items {
		keys = append(keys, fmt.Sprintf(redisx.KeyProduct, it.ProductID))
	}
	_ = h.Redis.Del(ctx, keys...).Err()
}

func (h *Handler) publishOrderPlaced(r *http.Request, placed shop.PlacedOrder, items []shop.ItemInput) {
	if h.Producer == nil {
		return
	}
	ev := shop.Envelope{
		EventID:      uuid.NewString(),
		EventType:    shop.EventOrderPlaced,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     h.Service,
		TraceID:      middleware.GetReqID(r.Context()),
		Payload: kafkax.MustMarshal(shop.OrderPlacedPayload{
			OrderID:     placed.OrderID,
			TotalAmount: placed.TotalAmount,
			Items:       items,
		}),
	}
	h.Producer.Publish(shop.PartitionKey(placed.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(shop.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
