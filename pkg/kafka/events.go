package kafka

import (
	"context"
	"househunt/pkg/logger"
	"househunt/pkg/middleware"
	"househunt/pkg/model"
)

const (
	bookingSchemaVersion = "1"
	eventSource          = "househunt"

	// HeaderOwnerEmail lets consumers route by listing owner without decoding the payload.
	HeaderOwnerEmail = "owner-email"
)

// Publisher is the narrow view of Producer used by BookingPublisher.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// BookingPublisher turns booking transitions into Kafka messages keyed by
// listing id, so every event for one listing lands on the same partition.
type BookingPublisher struct {
	producer Publisher
	log      *logger.Logger
}

func NewBookingPublisher(producer Publisher, log *logger.Logger) *BookingPublisher {
	return &BookingPublisher{producer: producer, log: log}
}

func (p *BookingPublisher) PublishBooking(ctx context.Context, event model.BookingEvent) error {
	msg, err := NewMessage().
		WithKey(event.BookedHouseID).
		WithValue(event).
		WithEventType(event.Type).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSchemaVersion(bookingSchemaVersion).
		WithSource(eventSource).
		WithHeader(HeaderOwnerEmail, event.OwnerEmail).
		WithTimestamp(event.OccurredAt).
		Build()
	if err != nil {
		return err
	}

	return p.producer.Publish(ctx, msg)
}

func (p *BookingPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishBooking(context.Context, model.BookingEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
