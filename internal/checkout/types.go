package checkout

import (
	"strings"

	"github.com/roasthouse/checkout-api/internal/ledger"
)

// Line is one re-priced cart entry as shown at preview or frozen at submit.
type Line struct {
	Slug          string `json:"item"`
	Quantity      int    `json:"quantity"`
	PriceCents    int64  `json:"price_cents"`
	SubtotalCents int64  `json:"subtotal_cents"`
}

type Preview struct {
	Lines      []Line `json:"lines"`
	TotalCents int64  `json:"total_cents"`
}

// SubmitForm is the fixed field set the payment form posts. Every field is
// required.
type SubmitForm struct {
	FullName     string
	Email        string
	Address      string
	City         string
	State        string
	Zip          string
	Country      string
	PaymentToken string
}

func (f SubmitForm) validate() error {
	for _, v := range []string{f.FullName, f.Email, f.Address, f.City,
		f.State, f.Zip, f.Country, f.PaymentToken} {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidSubmission
		}
	}
	return nil
}

type SubmitResult struct {
	OrderID    int64 `json:"order_id"`
	TotalCents int64 `json:"total_cents"`
}

// ReceiptLine reads back a stored line item; the subtotal comes from the
// price-at-purchase snapshot, never the current catalog.
type ReceiptLine struct {
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	PriceCents    int64  `json:"price_cents"`
	SubtotalCents int64  `json:"subtotal_cents"`
}

type OrderView struct {
	Order ledger.Order  `json:"order"`
	Lines []ReceiptLine `json:"lines"`
}

// displayName renders a slug as a human-readable product name
// ("espresso-beans" -> "Espresso Beans").
func displayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
