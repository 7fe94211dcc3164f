package service

import (
	"context"
	"errors"
	bookingsrepository "roomledger/internal/bookings/repository"
	hotelserrors "roomledger/internal/hotels/errors"
	hotelsrepository "roomledger/internal/hotels/repository"
	"roomledger/pkg/config"
	"roomledger/pkg/daterange"
	apperrors "roomledger/pkg/errors"
	"roomledger/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Calculator derives free inventory from CONFIRMED bookings. It only reads and
// is safe for concurrent use.
type Calculator interface {
	// CountActiveOverlaps is the raw number of CONFIRMED bookings of roomTypeID overlapping dates.
	CountActiveOverlaps(ctx context.Context, roomTypeID string, dates daterange.Range) (int64, error)
	// Compute returns the rooms of roomType still free for dates, never below zero.
	Compute(ctx context.Context, roomType *model.RoomType, dates daterange.Range) (int, error)
	// CheckAvailability lists the room types of hotelID with at least one free room.
	CheckAvailability(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]*model.RoomAvailability, error)
}

type calculator struct {
	bookingRepo  bookingsrepository.BookingRepository
	roomTypeRepo hotelsrepository.RoomTypeRepository
	cfg          *config.Config
}

func NewCalculator(bookingRepo bookingsrepository.BookingRepository, roomTypeRepo hotelsrepository.RoomTypeRepository, cfg *config.Config) Calculator {
	return &calculator{
		bookingRepo:  bookingRepo,
		roomTypeRepo: roomTypeRepo,
		cfg:          cfg,
	}
}

func (c *calculator) CountActiveOverlaps(ctx context.Context, roomTypeID string, dates daterange.Range) (int64, error) {
	return c.bookingRepo.CountOverlapping(ctx, roomTypeID, model.BookingStatusConfirmed, dates)
}

func (c *calculator) Compute(ctx context.Context, roomType *model.RoomType, dates daterange.Range) (int, error) {
	booked, err := c.CountActiveOverlaps(ctx, roomType.ID, dates)
	if err != nil {
		return 0, err
	}
	return Remaining(roomType.TotalRooms, booked), nil
}

// Remaining is totalRooms minus booked, floored at zero.
func Remaining(totalRooms int, booked int64) int {
	return int(max(int64(totalRooms)-booked, 0))
}

func (c *calculator) CheckAvailability(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]*model.RoomAvailability, error) {
	if !primitive.IsValidObjectID(hotelID) {
		return nil, apperrors.InvalidInput("hotel_id must be a valid ID")
	}
	dates := daterange.New(checkIn, checkOut)
	if !dates.Valid() {
		return nil, apperrors.InvalidInput("check_out must be after check_in")
	}

	roomTypes, err := c.roomTypeRepo.FindByHotel(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("hotel_id must be a valid ID")
		}
		c.cfg.Log.Error("Failed to load room types for availability",
			"hotel_id", hotelID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	available := []*model.RoomAvailability{}
	for _, rt := range roomTypes {
		free, err := c.Compute(ctx, rt, dates)
		if err != nil {
			c.cfg.Log.Error("Failed to count overlapping bookings",
				"hotel_id", hotelID,
				"room_type_id", rt.ID,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to check availability", err)
		}
		if free > 0 {
			available = append(available, &model.RoomAvailability{RoomType: rt, AvailableCount: free})
		}
	}

	return available, nil
}
