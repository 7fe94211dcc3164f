package service

import (
	"context"
	"errors"
	bookingsrepository "roomledger/internal/bookings/repository"
	hotelserrors "roomledger/internal/hotels/errors"
	hotelsrepository "roomledger/internal/hotels/repository"
	"roomledger/pkg/config"
	apperrors "roomledger/pkg/errors"
	"roomledger/pkg/model"
	"time"

	"golang.org/x/sync/errgroup"
)

type ConfidenceService interface {
	// GetConfidence scores an existing hotel from its current bookings and room types.
	GetConfidence(ctx context.Context, hotelID string) (*model.ConfidenceResult, error)
	// ScoreHotel scores hotelID against roomTypes the caller already loaded.
	ScoreHotel(ctx context.Context, hotelID string, roomTypes []*model.RoomType) (*model.ConfidenceResult, error)
}

type confidenceService struct {
	hotelRepo    hotelsrepository.HotelRepository
	roomTypeRepo hotelsrepository.RoomTypeRepository
	bookingRepo  bookingsrepository.BookingRepository
	policy       Policy
	now          func() time.Time
	cfg          *config.Config
}

func NewConfidenceService(
	hotelRepo hotelsrepository.HotelRepository,
	roomTypeRepo hotelsrepository.RoomTypeRepository,
	bookingRepo bookingsrepository.BookingRepository,
	cfg *config.Config,
) ConfidenceService {
	return &confidenceService{
		hotelRepo:    hotelRepo,
		roomTypeRepo: roomTypeRepo,
		bookingRepo:  bookingRepo,
		policy:       PolicyFromConfig(cfg),
		now:          func() time.Time { return time.Now().UTC() },
		cfg:          cfg,
	}
}

func (s *confidenceService) GetConfidence(ctx context.Context, hotelID string) (*model.ConfidenceResult, error) {
	if hotelID == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	if _, err := s.hotelRepo.FindByID(ctx, hotelID); err != nil {
		switch {
		case errors.Is(err, hotelserrors.ErrHotelNotFound):
			return nil, apperrors.NotFoundWithID("Hotel", hotelID)
		case errors.Is(err, hotelserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid hotel ID format")
		default:
			s.cfg.Log.Error("Failed to retrieve hotel", "hotel_id", hotelID, "error", err)
			return nil, apperrors.Internal("Failed to evaluate hotel confidence", err)
		}
	}

	var (
		bookings  []*model.Booking
		roomTypes []*model.RoomType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = s.bookingRepo.FindByHotel(gctx, hotelID)
		return err
	})
	g.Go(func() error {
		var err error
		roomTypes, err = s.roomTypeRepo.FindByHotel(gctx, hotelID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.cfg.Log.Error("Failed to load hotel history", "hotel_id", hotelID, "error", err)
		return nil, apperrors.Internal("Failed to evaluate hotel confidence", err)
	}

	return s.evaluate(hotelID, bookings, roomTypes), nil
}

func (s *confidenceService) ScoreHotel(ctx context.Context, hotelID string, roomTypes []*model.RoomType) (*model.ConfidenceResult, error) {
	bookings, err := s.bookingRepo.FindByHotel(ctx, hotelID)
	if err != nil {
		s.cfg.Log.Error("Failed to load hotel bookings", "hotel_id", hotelID, "error", err)
		return nil, apperrors.Internal("Failed to evaluate hotel confidence", err)
	}
	return s.evaluate(hotelID, bookings, roomTypes), nil
}

func (s *confidenceService) evaluate(hotelID string, bookings []*model.Booking, roomTypes []*model.RoomType) *model.ConfidenceResult {
	result := Evaluate(bookings, roomTypes, s.now(), s.policy)
	s.cfg.Log.Debug("Hotel confidence evaluated",
		"hotel_id", hotelID,
		"confidence_score", result.ConfidenceScore,
		"risk_label", result.RiskLabel,
		"total_bookings", result.Breakdown.TotalBookings,
	)
	return result
}
