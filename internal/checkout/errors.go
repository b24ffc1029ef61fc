package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart rejects preview/submit of a session with nothing carted.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidSubmission means a required form field is missing or empty.
	ErrInvalidSubmission = errors.New("missing required fields")

	// ErrUnknownProduct means the cart references a slug the catalog no
	// longer lists. A stale cart must not produce an under-priced charge,
	// so submission aborts before any external call.
	ErrUnknownProduct = errors.New("cart references unknown product")

	// ErrCheckoutInProgress rejects a concurrent submission for the same
	// session while an earlier one holds the submit lock.
	ErrCheckoutInProgress = errors.New("checkout already in progress")

	ErrNotFound = errors.New("order not found")
)

// PersistenceError is a ledger write failure. AfterCharge marks the critical
// variant: the processor captured the money but the order row could not be
// completed, which requires manual reconciliation.
type PersistenceError struct {
	AfterCharge bool
	OrderID     int64
	ChargeID    string
	Err         error
}

func (e *PersistenceError) Error() string {
	if e.AfterCharge {
		return fmt.Sprintf("order %d: ledger write failed after charge %s was captured: %v",
			e.OrderID, e.ChargeID, e.Err)
	}
	return fmt.Sprintf("ledger write failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
