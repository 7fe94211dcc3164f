package service

import (
	"context"
	"errors"
	"fmt"
	availability "roomledger/internal/availability/service"
	bookingserrors "roomledger/internal/bookings/errors"
	"roomledger/internal/bookings/events"
	"roomledger/internal/bookings/repository"
	"roomledger/internal/bookings/validator"
	hotelserrors "roomledger/internal/hotels/errors"
	hotelsrepository "roomledger/internal/hotels/repository"
	"roomledger/pkg/config"
	"roomledger/pkg/daterange"
	apperrors "roomledger/pkg/errors"
	"roomledger/pkg/model"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const lockReleaseTimeout = 5 * time.Second

type BookingService interface {
	// Create sweeps stale holds, then admits a CONFIRMED booking if a room is free.
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	// Complete marks a stay as finished. It is driven by stay.completed events only.
	Complete(ctx context.Context, id string) (*model.Booking, error)
	// ExpireOld moves CONFIRMED bookings older than the hold TTL to EXPIRED.
	ExpireOld(ctx context.Context) (int64, error)
}

type bookingService struct {
	repo         repository.BookingRepository
	lockRepo     repository.BookingLockRepository
	roomTypeRepo hotelsrepository.RoomTypeRepository
	availability availability.Calculator
	validator    *validator.BookingValidator
	publisher    events.Publisher
	cfg          *config.Config
}

// NewBookingService wires the lifecycle manager. lockRepo may be nil, in which
// case admission relies on the storage transaction alone.
func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	roomTypeRepo hotelsrepository.RoomTypeRepository,
	calculator availability.Calculator,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &bookingService{
		repo:         repo,
		lockRepo:     lockRepo,
		roomTypeRepo: roomTypeRepo,
		availability: calculator,
		validator:    validator,
		publisher:    publisher,
		cfg:          cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if req == nil {
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": "request body is required"})
	}

	if _, err := s.ExpireOld(ctx); err != nil {
		return nil, err
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	roomType, err := s.findRoomType(ctx, req.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if roomType.HotelID != req.HotelID {
		s.cfg.Log.Warn("Room type does not belong to hotel",
			"hotel_id", req.HotelID,
			"room_type_id", req.RoomTypeID,
		)
		return nil, apperrors.Validation("Room type does not belong to hotel", map[string]any{
			"hotel_id":     req.HotelID,
			"room_type_id": req.RoomTypeID,
		})
	}

	lock, err := s.acquireRoomTypeLock(ctx, roomType.ID)
	if err != nil {
		return nil, err
	}
	defer s.releaseRoomTypeLock(ctx, lock)

	dates := daterange.New(req.CheckInDate.UTC(), req.CheckOutDate.UTC())
	booking := &model.Booking{
		HotelID:      req.HotelID,
		RoomTypeID:   roomType.ID,
		UserID:       req.UserID,
		CheckInDate:  dates.Start,
		CheckOutDate: dates.End,
		Status:       model.BookingStatusConfirmed,
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		return s.admit(txCtx, booking, dates)
	})
	if err != nil {
		return nil, s.translateAdmissionError(err, booking)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"hotel_id", booking.HotelID,
		"room_type_id", booking.RoomTypeID,
		"check_in_date", booking.CheckInDate,
		"check_out_date", booking.CheckOutDate,
	)
	s.publisher.BookingCreated(ctx, booking)
	return booking, nil
}

// admit runs inside the storage transaction. Bumping the room type first makes
// every concurrent admission for the same room type conflict on that document,
// so the count below cannot go stale before the insert commits.
func (s *bookingService) admit(ctx context.Context, booking *model.Booking, dates daterange.Range) error {
	if err := s.roomTypeRepo.BumpInventoryVersion(ctx, booking.RoomTypeID); err != nil {
		return err
	}

	roomType, err := s.roomTypeRepo.FindByID(ctx, booking.RoomTypeID)
	if err != nil {
		return err
	}

	booked, err := s.availability.CountActiveOverlaps(ctx, booking.RoomTypeID, dates)
	if err != nil {
		return err
	}
	if booked >= int64(roomType.TotalRooms) {
		return bookingserrors.ErrCapacityExceeded
	}

	booking.ID = ""
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return s.repo.Create(ctx, booking)
}

func (s *bookingService) translateAdmissionError(err error, booking *model.Booking) error {
	switch {
	case errors.Is(err, bookingserrors.ErrCapacityExceeded):
		s.cfg.Log.Info("Booking rejected, room type fully booked",
			"hotel_id", booking.HotelID,
			"room_type_id", booking.RoomTypeID,
			"check_in_date", booking.CheckInDate,
			"check_out_date", booking.CheckOutDate,
		)
		return apperrors.CapacityExceeded("No rooms available for the selected dates")
	case errors.Is(err, hotelserrors.ErrRoomTypeNotFound):
		return apperrors.NotFoundWithID("Room type", booking.RoomTypeID)
	case isTransientTransactionError(err):
		s.cfg.Log.Warn("Booking admission lost a concurrent write race",
			"room_type_id", booking.RoomTypeID,
			"error", err,
		)
		return apperrors.ConcurrencyConflict("This room type is being booked by another request. Please try again.")
	case apperrors.IsAppError(err):
		return err
	default:
		s.cfg.Log.Error("Failed to create booking",
			"room_type_id", booking.RoomTypeID,
			"error", err,
		)
		return apperrors.Internal("Failed to create booking", err)
	}
}

func isTransientTransactionError(err error) bool {
	var labeled mongo.LabeledError
	return errors.As(err, &labeled) && labeled.HasErrorLabel("TransientTransactionError")
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to retrieve booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.transition(ctx, id, model.BookingStatusCancelled, "cancelled")
	if err != nil {
		return nil, err
	}
	s.publisher.BookingCancelled(ctx, booking)
	return booking, nil
}

func (s *bookingService) Complete(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.transition(ctx, id, model.BookingStatusCompleted, "completed")
	if err != nil {
		return nil, err
	}
	s.publisher.BookingCompleted(ctx, booking)
	return booking, nil
}

// transition moves a CONFIRMED booking to next. The write is conditional on
// the status still being CONFIRMED, so it never overwrites a concurrent change.
func (s *bookingService) transition(ctx context.Context, id string, next model.BookingStatus, verb string) (*model.Booking, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != model.BookingStatusConfirmed {
		return nil, invalidState(existing.Status, verb)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, model.BookingStatusConfirmed, next)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Booking", id)
		case errors.Is(err, bookingserrors.ErrStatusConflict):
			current := existing.Status
			if latest, findErr := s.repo.FindByID(ctx, id); findErr == nil {
				current = latest.Status
			}
			s.cfg.Log.Warn("Booking status changed concurrently", "id", id, "target_status", next, "current_status", current)
			return nil, invalidState(current, verb)
		default:
			s.cfg.Log.Error("Failed to update booking status", "id", id, "target_status", next, "error", err)
			return nil, apperrors.Internal("Failed to update booking", err)
		}
	}

	s.cfg.Log.Info("Booking status updated", "id", id, "status", updated.Status)
	return updated, nil
}

func invalidState(current model.BookingStatus, verb string) error {
	return apperrors.InvalidState(fmt.Sprintf("Only CONFIRMED bookings can be %s, booking is %s", verb, current)).
		WithDetails(map[string]any{"status": current})
}

func (s *bookingService) ExpireOld(ctx context.Context) (int64, error) {
	threshold := time.Now().UTC().Add(-s.cfg.BookingHoldTTL)

	expired, err := s.repo.ExpireCreatedBefore(ctx, threshold)
	if err != nil {
		s.cfg.Log.Error("Failed to expire old bookings", "threshold", threshold, "error", err)
		return 0, apperrors.Internal("Failed to expire old bookings", err)
	}

	if expired > 0 {
		s.cfg.Log.Info("Expired old bookings", "count", expired, "threshold", threshold)
		s.publisher.BookingsExpired(ctx, expired, threshold)
	}
	return expired, nil
}

// --- Helpers ---

func (s *bookingService) validate(req *model.CreateBookingRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		details := map[string]any{"error": err.Error()}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details["fields"] = verrs
		}
		return apperrors.Validation("Booking validation failed", details)
	}
	return nil
}

func (s *bookingService) findRoomType(ctx context.Context, id string) (*model.RoomType, error) {
	roomType, err := s.roomTypeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrRoomTypeNotFound) {
			return nil, apperrors.NotFoundWithID("Room type", id)
		}
		if errors.Is(err, hotelserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room type ID format")
		}
		s.cfg.Log.Error("Failed to retrieve room type", "room_type_id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve room type", err)
	}
	return roomType, nil
}

// acquireRoomTypeLock takes the advisory lock that serializes admissions for
// one room type, retrying with linear backoff while another request holds it.
func (s *bookingService) acquireRoomTypeLock(ctx context.Context, roomTypeID string) (*model.BookingLock, error) {
	if s.lockRepo == nil {
		return nil, nil
	}

	lock := &model.BookingLock{
		ID:    fmt.Sprintf("booking_lock_%s", roomTypeID),
		Owner: uuid.NewString(),
	}

	for attempt := 0; ; attempt++ {
		lock.ExpiresAt = time.Now().UTC().Add(s.cfg.LockTTL)

		err := s.lockRepo.Acquire(ctx, lock)
		if err == nil {
			return lock, nil
		}
		if !errors.Is(err, bookingserrors.ErrLockHeld) {
			s.cfg.Log.Error("Failed to acquire booking lock", "lock_id", lock.ID, "error", err)
			return nil, apperrors.Internal("Failed to acquire booking lock", err)
		}
		if attempt >= s.cfg.LockRetries {
			s.cfg.Log.Warn("Booking lock still held after retries", "lock_id", lock.ID, "attempts", attempt+1)
			return nil, apperrors.ConcurrencyConflict("This room type is being booked by another request. Please try again.")
		}

		select {
		case <-ctx.Done():
			return nil, apperrors.Timeout("Timed out waiting for booking lock")
		case <-time.After(s.cfg.LockRetryBackoff * time.Duration(attempt+1)):
		}
	}
}

func (s *bookingService) releaseRoomTypeLock(ctx context.Context, lock *model.BookingLock) {
	if lock == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lockReleaseTimeout)
	defer cancel()

	if err := s.lockRepo.Release(ctx, lock); err != nil {
		s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lock.ID, "error", err)
	}
}
