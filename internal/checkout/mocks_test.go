package checkout

import (
	"context"
	"sync"

	"github.com/roasthouse/checkout-api/internal/ledger"
	"github.com/roasthouse/checkout-api/internal/orderevents"
	"github.com/roasthouse/checkout-api/internal/payment"
)

// mockCatalog serves prices from a mutable map so tests can change catalog
// prices between calls.
type mockCatalog struct {
	prices map[string]int64
	err    error
}

func (m *mockCatalog) PriceLookup(_ context.Context, slugs []string) (map[string]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := map[string]int64{}
	for _, s := range slugs {
		if p, ok := m.prices[s]; ok {
			out[s] = p
		}
	}
	return out, nil
}

// mockLedger records every call; failure points are injectable per method.
type mockLedger struct {
	mu sync.Mutex

	nextID          int64
	createErr       error
	completeErr     error
	failErr         error
	reconcileErr    error
	getOrderResult  ledger.Order
	getOrderErr     error
	lineItemsResult []ledger.LineItem
	lineItemsErr    error

	created         []ledger.Order
	createdItems    [][]ledger.LineItem
	completed       []int64
	completedCharge []string
	failed          []int64
	reconciliations []ledger.Reconciliation
}

func (m *mockLedger) CreatePending(_ context.Context, o ledger.Order, items []ledger.LineItem) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	m.created = append(m.created, o)
	m.createdItems = append(m.createdItems, items)
	return m.nextID, nil
}

func (m *mockLedger) MarkCompleted(_ context.Context, orderID int64, chargeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completeErr != nil {
		return m.completeErr
	}
	m.completed = append(m.completed, orderID)
	m.completedCharge = append(m.completedCharge, chargeID)
	return nil
}

func (m *mockLedger) MarkFailed(_ context.Context, orderID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.failed = append(m.failed, orderID)
	return nil
}

func (m *mockLedger) GetOrder(_ context.Context, _ int64) (ledger.Order, error) {
	return m.getOrderResult, m.getOrderErr
}

func (m *mockLedger) GetLineItems(_ context.Context, _ int64) ([]ledger.LineItem, error) {
	return m.lineItemsResult, m.lineItemsErr
}

func (m *mockLedger) RecordReconciliation(_ context.Context, rec ledger.Reconciliation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reconcileErr != nil {
		return m.reconcileErr
	}
	m.reconciliations = append(m.reconciliations, rec)
	return nil
}

// mockGateway captures the single charge request it receives.
type mockGateway struct {
	result   payment.ChargeResult
	err      error
	requests []payment.ChargeRequest
}

func (m *mockGateway) Charge(_ context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return payment.ChargeResult{}, m.err
	}
	return m.result, nil
}

// mockLocker defaults to granting the lock.
type mockLocker struct {
	denied   bool
	err      error
	acquired []string
	released []string
}

func (m *mockLocker) Acquire(_ context.Context, sessionID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.denied {
		return false, nil
	}
	m.acquired = append(m.acquired, sessionID)
	return true, nil
}

func (m *mockLocker) Release(_ context.Context, sessionID string) error {
	m.released = append(m.released, sessionID)
	return nil
}

type mockEvents struct {
	published []orderevents.OrderCompletedPayload
}

func (m *mockEvents) PublishOrderCompleted(_ context.Context, p orderevents.OrderCompletedPayload) {
	m.published = append(m.published, p)
}
