package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	written  []kafka.Message
	writeErr error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	producer := newProducer(writer, "bookings")

	msg, err := NewMessage().
		WithKey("house-1").
		WithValue(map[string]string{"hello": "world"}).
		WithEventType("booking.created").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if err := producer.Publish(context.Background(), msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(writer.written) != 1 {
		t.Fatalf("expected 1 written message, got %d", len(writer.written))
	}
	got := writer.written[0]
	if string(got.Key) != "house-1" {
		t.Errorf("unexpected key %q", got.Key)
	}
	if string(got.Value) != `{"hello":"world"}` {
		t.Errorf("unexpected value %s", got.Value)
	}
	if headerValue(got, HeaderEventType) != "booking.created" {
		t.Errorf("missing event type header")
	}
	if headerValue(got, HeaderEventID) == "" {
		t.Errorf("expected a generated event id")
	}
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	producer := newProducer(&fakeWriter{}, "bookings")

	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{"empty key", Message{Value: []byte("x")}, ErrEmptyKey},
		{"empty value", Message{Key: "k"}, ErrEmptyValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := producer.Publish(context.Background(), tt.msg); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	producer := newProducer(&fakeWriter{}, "bookings")

	var order []string
	for _, name := range []string{"first", "second"} {
		producer.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			order = append(order, name)
			if msg.Topic != "bookings" {
				t.Errorf("expected topic to be set before middleware, got %q", msg.Topic)
			}
			return next(ctx, msg)
		})
	}

	if err := producer.Publish(context.Background(), Message{Key: "k", Value: []byte("v")}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected middleware order %v", order)
	}
}

func TestProducer_WriteErrorAndClose(t *testing.T) {
	boom := errors.New("broker down")
	writer := &fakeWriter{writeErr: boom}
	producer := newProducer(writer, "bookings")

	if err := producer.Publish(context.Background(), Message{Key: "k", Value: []byte("v")}); !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}

	if err := producer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !writer.closed {
		t.Error("expected writer to be closed")
	}
	if err := producer.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
	if err := producer.Publish(context.Background(), Message{Key: "k", Value: []byte("v")}); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
}

func TestNewProducer_Validation(t *testing.T) {
	if _, err := NewProducer(ProducerConfig{Topic: "t"}, nil); err == nil {
		t.Error("expected error without brokers")
	}
	if _, err := NewProducer(ProducerConfig{Brokers: []string{"localhost:9092"}}, nil); err == nil {
		t.Error("expected error without topic")
	}
}

func TestMessageBuilder_InvalidValue(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}
