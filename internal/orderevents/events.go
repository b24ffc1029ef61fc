package orderevents

import (
	"encoding/json"
	"strconv"
	"time"
)

const (
	EventOrderCompleted = "OrderCompleted"

	TopicOrderCompleted = "checkout.order.completed"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderCompletedPayload struct {
	OrderID       int64  `json:"order_id"`
	TotalCents    int64  `json:"total_cents"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email"`
}

// PartitionKey keys messages by order id so events for one order stay ordered.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
