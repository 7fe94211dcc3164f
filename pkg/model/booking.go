package model

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// IsTerminal reports whether no further transition is allowed out of s.
func (s BookingStatus) IsTerminal() bool {
	return s != BookingStatusConfirmed
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusExpired, BookingStatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID           string        `json:"id,omitempty" bson:"_id,omitempty"`
	HotelID      string        `json:"hotel_id" bson:"hotel_id"`
	RoomTypeID   string        `json:"room_type_id" bson:"room_type_id"`
	UserID       string        `json:"user_id" bson:"user_id"`
	CheckInDate  time.Time     `json:"check_in_date" bson:"check_in_date"`
	CheckOutDate time.Time     `json:"check_out_date" bson:"check_out_date"`
	Status       BookingStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// CreateBookingRequest carries the caller supplied fields of a new booking.
// Dates are pointers so that an absent field can be told apart from the zero time.
type CreateBookingRequest struct {
	HotelID      string     `json:"hotel_id" validate:"required,mongodb"`
	RoomTypeID   string     `json:"room_type_id" validate:"required,mongodb"`
	UserID       string     `json:"user_id" validate:"required,mongodb"`
	CheckInDate  *time.Time `json:"check_in_date" validate:"required"`
	CheckOutDate *time.Time `json:"check_out_date" validate:"required"`
}
