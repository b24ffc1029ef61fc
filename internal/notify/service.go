package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/roasthouse/checkout-api/internal/kafka"
	"github.com/roasthouse/checkout-api/internal/orderevents"
)

// Dedup remembers processed event ids so redelivered messages are dropped.
type Dedup interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// Service consumes completed-order events and dispatches receipt
// notifications. Dispatch is a log line here; the delivery channel is owned
// by another system.
type Service struct {
	Dedup Dedup
	Log   *slog.Logger
}

// HandleOrderCompleted is wired as the consumer handler.
func (s *Service) HandleOrderCompleted(ctx context.Context, m kafkago.Message) error {
	var env orderevents.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orderevents.EventOrderCompleted {
		return nil // ignore
	}

	seen, err := s.Dedup.Seen(ctx, env.EventID)
	if err != nil {
		s.Log.Warn("dedup check failed, processing anyway", "event_id", env.EventID, "err", err)
	}
	if seen {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orderevents.OrderCompletedPayload](env.Payload)
	if err != nil {
		return err
	}

	if err := s.Dedup.Mark(ctx, env.EventID); err != nil {
		s.Log.Warn("dedup mark failed", "event_id", env.EventID, "err", err)
	}

	s.Log.Info("receipt notification dispatched",
		"order_id", p.OrderID,
		"customer_email", p.CustomerEmail,
		"total_cents", p.TotalCents,
		"currency", p.Currency,
	)
	return nil
}
