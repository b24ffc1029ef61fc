package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/roasthouse/checkout-api/internal/cart"
	"github.com/roasthouse/checkout-api/internal/ledger"
	"github.com/roasthouse/checkout-api/internal/orderevents"
	"github.com/roasthouse/checkout-api/internal/payment"
)

// The workflow's collaborators, narrowed to what it actually calls.

type Catalog interface {
	PriceLookup(ctx context.Context, slugs []string) (map[string]int64, error)
}

type CartStore interface {
	Get(ctx context.Context, sessionID string) (cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type Ledger interface {
	CreatePending(ctx context.Context, o ledger.Order, items []ledger.LineItem) (int64, error)
	MarkCompleted(ctx context.Context, orderID int64, chargeID string) error
	MarkFailed(ctx context.Context, orderID int64) error
	GetOrder(ctx context.Context, orderID int64) (ledger.Order, error)
	GetLineItems(ctx context.Context, orderID int64) ([]ledger.LineItem, error)
	RecordReconciliation(ctx context.Context, rec ledger.Reconciliation) error
}

type Locker interface {
	Acquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

type EventPublisher interface {
	PublishOrderCompleted(ctx context.Context, payload orderevents.OrderCompletedPayload)
}

// Service moves a cart from intent to paid order: re-price from the catalog,
// write the pending order ahead of the charge, charge exactly once outside
// any database transaction, then complete and clear.
type Service struct {
	Catalog  Catalog
	Carts    CartStore
	Ledger   Ledger
	Gateway  payment.Gateway
	Lock     Locker
	Events   EventPublisher // optional
	Currency string
	Log      *slog.Logger
}

// Preview re-prices the current cart for display. Prices here are
// informational; the submit-time re-pricing is what gets charged. A slug the
// catalog no longer lists is shown at zero rather than blocking the page.
func (s *Service) Preview(ctx context.Context, sessionID string) (Preview, error) {
	c, err := s.Carts.Get(ctx, sessionID)
	if err != nil {
		return Preview{}, fmt.Errorf("load cart: %w", err)
	}
	if len(c) == 0 {
		return Preview{}, ErrEmptyCart
	}
	lines, total, err := s.priceCart(ctx, c, false)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Lines: lines, TotalCents: total}, nil
}

// Submit runs the checkout transaction. Order of operations is load-bearing:
//
//  1. validate the form (no external calls on bad input)
//  2. take the per-session submit lock
//  3. re-price the cart authoritatively; unknown slugs abort
//  4. commit the pending order + frozen line items (write-ahead)
//  5. charge the processor, exactly once, outside any open transaction
//  6. flip the order to completed; on failure, record for reconciliation
//  7. clear the cart (best-effort) and publish the completion event
func (s *Service) Submit(ctx context.Context, sessionID string, form SubmitForm) (SubmitResult, error) {
	if err := form.validate(); err != nil {
		return SubmitResult{}, err
	}

	c, err := s.Carts.Get(ctx, sessionID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("load cart: %w", err)
	}
	if len(c) == 0 {
		return SubmitResult{}, ErrEmptyCart
	}

	ok, err := s.Lock.Acquire(ctx, sessionID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !ok {
		return SubmitResult{}, ErrCheckoutInProgress
	}
	defer func() {
		if err := s.Lock.Release(context.WithoutCancel(ctx), sessionID); err != nil {
			s.Log.Warn("submit lock release failed", "session_id", sessionID, "err", err)
		}
	}()

	// The charge amount comes from this re-pricing, not the one the client
	// saw at preview time.
	lines, total, err := s.priceCart(ctx, c, true)
	if err != nil {
		return SubmitResult{}, err
	}

	order := ledger.Order{
		CustomerName:  form.FullName,
		CustomerEmail: form.Email,
		TotalCents:    total,
		Address:       form.Address,
		City:          form.City,
		State:         form.State,
		Zip:           form.Zip,
		Country:       form.Country,
	}
	items := make([]ledger.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, ledger.LineItem{
			Slug:       l.Slug,
			Quantity:   l.Quantity,
			PriceCents: l.PriceCents,
		})
	}

	orderID, err := s.Ledger.CreatePending(ctx, order, items)
	if err != nil {
		return SubmitResult{}, &PersistenceError{Err: err}
	}

	res, err := s.Gateway.Charge(ctx, payment.ChargeRequest{
		AmountCents:    total,
		Currency:       s.Currency,
		Token:          form.PaymentToken,
		Description:    fmt.Sprintf("Order from %s", form.FullName),
		ReceiptEmail:   form.Email,
		IdempotencyKey: fmt.Sprintf("checkout-order-%d", orderID),
	})
	if err != nil {
		// No money moved. Leave the cart so the user can retry.
		if ferr := s.Ledger.MarkFailed(ctx, orderID); ferr != nil {
			s.Log.Warn("failed to mark order failed", "order_id", orderID, "err", ferr)
		}
		return SubmitResult{}, err
	}

	if err := s.Ledger.MarkCompleted(ctx, orderID, res.ChargeID); err != nil {
		// The charge is already captured. This is the one failure mode that
		// needs an operator: log it apart from validation noise and leave a
		// durable trail.
		s.Log.Error("charge captured but order not completed",
			"order_id", orderID, "charge_id", res.ChargeID, "amount_cents", total, "err", err)
		rec := ledger.Reconciliation{
			OrderID:     orderID,
			ChargeID:    res.ChargeID,
			AmountCents: total,
			Note:        "charge captured; order stuck pending",
		}
		if rerr := s.Ledger.RecordReconciliation(ctx, rec); rerr != nil {
			s.Log.Error("reconciliation record write failed",
				"order_id", orderID, "charge_id", res.ChargeID, "err", rerr)
		}
		return SubmitResult{}, &PersistenceError{
			AfterCharge: true, OrderID: orderID, ChargeID: res.ChargeID, Err: err,
		}
	}

	// The order is durable; a stale cart on the next visit is a lesser harm
	// than failing the checkout now.
	if err := s.Carts.Clear(ctx, sessionID); err != nil {
		s.Log.Warn("cart clear failed after checkout", "session_id", sessionID, "order_id", orderID, "err", err)
	}

	if s.Events != nil {
		s.Events.PublishOrderCompleted(ctx, orderevents.OrderCompletedPayload{
			OrderID:       orderID,
			TotalCents:    total,
			Currency:      s.Currency,
			CustomerEmail: form.Email,
		})
	}

	s.Log.Info("checkout completed", "order_id", orderID, "total_cents", total)
	return SubmitResult{OrderID: orderID, TotalCents: total}, nil
}

// Receipt reads the stored order back for display. Subtotals come from the
// frozen price-at-purchase values.
func (s *Service) Receipt(ctx context.Context, orderID int64) (OrderView, error) {
	o, err := s.Ledger.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return OrderView{}, ErrNotFound
		}
		return OrderView{}, fmt.Errorf("load order: %w", err)
	}
	items, err := s.Ledger.GetLineItems(ctx, orderID)
	if err != nil {
		return OrderView{}, fmt.Errorf("load line items: %w", err)
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, ReceiptLine{
			Name:          displayName(it.Slug),
			Quantity:      it.Quantity,
			PriceCents:    it.PriceCents,
			SubtotalCents: int64(it.Quantity) * it.PriceCents,
		})
	}
	return OrderView{Order: o, Lines: lines}, nil
}

// priceCart re-prices every cart entry from the catalog. In strict mode a
// slug missing from the catalog aborts; otherwise it prices at zero, which
// preview uses for display.
func (s *Service) priceCart(ctx context.Context, c cart.Cart, strict bool) ([]Line, int64, error) {
	slugs := make([]string, 0, len(c))
	for slug := range c {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	prices, err := s.Catalog.PriceLookup(ctx, slugs)
	if err != nil {
		return nil, 0, fmt.Errorf("price lookup: %w", err)
	}

	var total int64
	lines := make([]Line, 0, len(slugs))
	for _, slug := range slugs {
		price, ok := prices[slug]
		if !ok {
			if strict {
				return nil, 0, fmt.Errorf("%w: %s", ErrUnknownProduct, slug)
			}
			price = 0
		}
		qty := c[slug]
		subtotal := price * int64(qty)
		total += subtotal
		lines = append(lines, Line{
			Slug:          slug,
			Quantity:      qty,
			PriceCents:    price,
			SubtotalCents: subtotal,
		})
	}
	return lines, total, nil
}
