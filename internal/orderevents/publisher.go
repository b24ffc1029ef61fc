package orderevents

import (
	"context"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/roasthouse/checkout-api/internal/kafka"
)

// Publisher puts completed-order events on the stream. Publication is
// fire-and-forget; the order is already durable when this runs.
type Publisher struct {
	Producer *kafkax.Producer
	Service  string
}

func (p *Publisher) PublishOrderCompleted(_ context.Context, payload OrderCompletedPayload) {
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCompleted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.Service,
		CorrelationID: string(PartitionKey(payload.OrderID)),
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Producer.Publish(PartitionKey(payload.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCompleted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
