package payment

import (
	"context"
	"fmt"
)

// ChargeRequest carries everything the processor needs for one charge.
// Amounts are integer minor currency units.
type ChargeRequest struct {
	AmountCents  int64
	Currency     string
	Token        string
	Description  string
	ReceiptEmail string
	// IdempotencyKey guards against double-billing if a request with an
	// ambiguous outcome is ever replayed.
	IdempotencyKey string
}

type ChargeResult struct {
	ChargeID string
}

// Gateway is the external payment processor boundary: untrusted, fallible,
// network-bound.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

type ErrorKind string

const (
	KindDeclined     ErrorKind = "declined"
	KindInvalidToken ErrorKind = "invalid_token"
	KindNetwork      ErrorKind = "network"
)

// GatewayError is a definitive processor failure. No money moved; the caller
// may safely retry with a fresh submission.
type GatewayError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *GatewayError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("payment gateway: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("payment gateway: %s", e.Kind)
}

func (e *GatewayError) Unwrap() error { return e.Err }
