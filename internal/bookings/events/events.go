// Package events publishes booking lifecycle changes and consumes stay
// completion notices from the property management side.
package events

import (
	"context"
	"roomledger/pkg/model"
	"time"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
	EventBookingsExpired  = "bookings.expired"
	EventStayCompleted    = "stay.completed"

	SchemaVersion = "1"
	Source        = "roomledger-bookings"
)

// Publisher announces committed state changes. Implementations must not
// fail the caller: the change is already durable when they run.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
	BookingCompleted(ctx context.Context, booking *model.Booking)
	BookingsExpired(ctx context.Context, count int64, createdBefore time.Time)
}

type BookingEvent struct {
	BookingID    string              `json:"booking_id"`
	HotelID      string              `json:"hotel_id"`
	RoomTypeID   string              `json:"room_type_id"`
	UserID       string              `json:"user_id"`
	CheckInDate  time.Time           `json:"check_in_date"`
	CheckOutDate time.Time           `json:"check_out_date"`
	Status       model.BookingStatus `json:"status"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

type ExpiredEvent struct {
	Count         int64     `json:"count"`
	CreatedBefore time.Time `json:"created_before"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// StayCompletedEvent is sent once a guest has checked out.
type StayCompletedEvent struct {
	BookingID string `json:"booking_id"`
}

func newBookingEvent(b *model.Booking) BookingEvent {
	return BookingEvent{
		BookingID:    b.ID,
		HotelID:      b.HotelID,
		RoomTypeID:   b.RoomTypeID,
		UserID:       b.UserID,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Status:       b.Status,
		OccurredAt:   time.Now().UTC(),
	}
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) BookingCreated(context.Context, *model.Booking) {}
func (nopPublisher) BookingCancelled(context.Context, *model.Booking) {}
func (nopPublisher) BookingCompleted(context.Context, *model.Booking) {}
func (nopPublisher) BookingsExpired(context.Context, int64, time.Time) {}
