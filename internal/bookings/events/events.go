package events

import (
	"context"
	"time"

	"campusbook/pkg/config"
	"campusbook/pkg/kafka"
	"campusbook/pkg/logger"
	"campusbook/pkg/model"
)

const (
	TypeBookingCreated  = "booking.created"
	TypeBookingApproved = "booking.approved"
	TypeBookingRejected = "booking.rejected"
	TypeBookingDeleted  = "booking.deleted"

	schemaVersion = "1"
	source        = "bookings"
)

// BookingEvent is the payload published on the booking lifecycle topic.
type BookingEvent struct {
	Key          string    `json:"key"`
	Block        string    `json:"block"`
	RoomNo       string    `json:"room_no"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	StudentEmail string    `json:"student_email"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Publishing is best-effort:
// implementations log failures and never fail the triggering operation.
type Publisher interface {
	BookingCreated(ctx context.Context, b *model.Booking)
	BookingResolved(ctx context.Context, b *model.Booking)
	BookingDeleted(ctx context.Context, b *model.Booking)
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when Kafka
// is disabled in the configuration.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return noopPublisher{}, nil
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.BookingEventsTopic,
		MaxAttempts: cfg.KafkaProducerMaxAttempts,
		BatchWait:   cfg.KafkaProducerBatchWait,
	})
	if err != nil {
		return nil, err
	}

	cfg.Log.Info("Booking event publisher initialized",
		"topic", cfg.BookingEventsTopic,
		"brokers", cfg.KafkaBrokers,
	)
	return &kafkaPublisher{producer: producer, log: cfg.Log}, nil
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, b *model.Booking) {
	p.publish(ctx, TypeBookingCreated, b)
}

func (p *kafkaPublisher) BookingResolved(ctx context.Context, b *model.Booking) {
	eventType := TypeBookingApproved
	if b.Status == model.StatusRejected {
		eventType = TypeBookingRejected
	}
	p.publish(ctx, eventType, b)
}

func (p *kafkaPublisher) BookingDeleted(ctx context.Context, b *model.Booking) {
	p.publish(ctx, TypeBookingDeleted, b)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, b *model.Booking) {
	msg, err := kafka.NewMessage().
		WithKey(b.Key).
		WithValue(BookingEvent{
			Key:          b.Key,
			Block:        b.Block,
			RoomNo:       b.RoomNo,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
			StudentEmail: b.StudentEmail,
			Status:       b.Status,
			OccurredAt:   time.Now().UTC(),
		}).
		WithEventType(eventType).
		WithHeader(kafka.HeaderSchemaVersion, schemaVersion).
		WithSource(source).
		Build()
	if err != nil {
		p.log.Error("Failed to build booking event", "event_type", eventType, "key", b.Key, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event", "event_type", eventType, "key", b.Key, "error", err)
	}
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

func (noopPublisher) BookingCreated(context.Context, *model.Booking)  {}
func (noopPublisher) BookingResolved(context.Context, *model.Booking) {}
func (noopPublisher) BookingDeleted(context.Context, *model.Booking)  {}
func (noopPublisher) Close() error                                    { return nil }
