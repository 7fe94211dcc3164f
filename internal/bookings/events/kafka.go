package events

import (
	"context"
	"roomledger/pkg/kafka"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"
	"time"
)

const publishTimeout = 5 * time.Second

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer MessagePublisher
	log      *logger.Logger
}

func NewKafkaPublisher(producer MessagePublisher, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, booking.RoomTypeID, EventBookingCreated, newBookingEvent(booking))
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, booking.RoomTypeID, EventBookingCancelled, newBookingEvent(booking))
}

func (p *kafkaPublisher) BookingCompleted(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, booking.RoomTypeID, EventBookingCompleted, newBookingEvent(booking))
}

func (p *kafkaPublisher) BookingsExpired(ctx context.Context, count int64, createdBefore time.Time) {
	p.publish(ctx, EventBookingsExpired, EventBookingsExpired, ExpiredEvent{
		Count:         count,
		CreatedBefore: createdBefore,
		OccurredAt:    time.Now().UTC(),
	})
}

// publish keys booking events by room type so that one room type's events stay ordered.
func (p *kafkaPublisher) publish(ctx context.Context, key, eventType string, payload any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(logger.RequestID(ctx)).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"key", key,
			"event_id", msg.GetEventID(),
			"error", err,
		)
	}
}
