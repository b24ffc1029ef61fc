package ledger

import "time"

type Status string

const (
	// StatusPending is the write-ahead state: the row exists before the
	// charge so a crash between charge and completion is reconcilable.
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Order is one completed (or attempted) transaction. TotalCents is frozen
// at creation from the submit-time re-pricing; it is never recomputed from
// current catalog prices.
type Order struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	TotalCents    int64     `json:"total_cents"`
	Status        Status    `json:"status"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Zip           string    `json:"zip"`
	Country       string    `json:"country"`
	ChargeID      string    `json:"charge_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// LineItem freezes the price paid for one product of an order.
type LineItem struct {
	OrderID    int64  `json:"order_id"`
	Slug       string `json:"product_slug"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_at_purchase"`
}

// Reconciliation records a charge that was captured without a completed
// order row. An operator resolves it by hand against the processor's record.
type Reconciliation struct {
	OrderID     int64
	ChargeID    string
	AmountCents int64
	Note        string
}
