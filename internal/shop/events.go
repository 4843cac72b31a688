package shop

import (
	"encoding/json"
	"strconv"
	"time"
)

const (
	TopicOrderPlaced = "shop.order.placed"
	EventOrderPlaced = "OrderPlaced"
)

// Envelope wraps every published event.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	TraceID      string          `json:"trace_id,omitempty"`
	Payload      json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID     int64       `json:"order_id"`
	TotalAmount int64       `json:"total_amount"`
	Items       []ItemInput `json:"items"`
}

// PartitionKey keys events by order id so events for one order stay ordered.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
