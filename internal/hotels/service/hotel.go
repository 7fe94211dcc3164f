package service

import (
	"context"
	"errors"
	hotelserrors "roomledger/internal/hotels/errors"
	"roomledger/internal/hotels/repository"
	"roomledger/internal/hotels/validator"
	"roomledger/pkg/config"
	apperrors "roomledger/pkg/errors"
	httputil "roomledger/pkg/http"
	"roomledger/pkg/model"
	"roomledger/pkg/sanitizer"
	"sync"
)

type HotelService interface {
	CreateHotel(ctx context.Context, hotel *model.Hotel) error
	GetHotel(ctx context.Context, id string) (*model.Hotel, error)
	ListHotels(ctx context.Context, limit int, offset int64) ([]*model.Hotel, int64, error)
	CreateRoomType(ctx context.Context, roomType *model.RoomType) error
	ListRoomTypes(ctx context.Context, hotelID string) ([]*model.RoomType, error)
}

type hotelService struct {
	hotelRepo    repository.HotelRepository
	roomTypeRepo repository.RoomTypeRepository
	validator    *validator.HotelValidator
	cfg          *config.Config
}

func NewHotelService(
	hotelRepo repository.HotelRepository,
	roomTypeRepo repository.RoomTypeRepository,
	validator *validator.HotelValidator,
	cfg *config.Config,
) HotelService {
	return &hotelService{
		hotelRepo:    hotelRepo,
		roomTypeRepo: roomTypeRepo,
		validator:    validator,
		cfg:          cfg,
	}
}

func (s *hotelService) CreateHotel(ctx context.Context, hotel *model.Hotel) error {
	hotel.Name = sanitizer.NormalizeName(hotel.Name)
	hotel.Location = sanitizer.NormalizeLocation(hotel.Location)
	hotel.Description = sanitizer.TrimAndNormalize(hotel.Description)

	if err := s.validator.ValidateHotel(hotel); err != nil {
		s.cfg.Log.Warn("Hotel validation failed",
			"name", hotel.Name,
			"location", hotel.Location,
			"error", err,
		)
		return validationError("Hotel validation failed", err)
	}

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		s.cfg.Log.Error("Failed to create hotel", "name", hotel.Name, "error", err)
		return apperrors.Internal("Failed to create hotel", err)
	}

	s.cfg.Log.Info("Hotel created successfully",
		"id", hotel.ID,
		"name", hotel.Name,
		"location", hotel.Location,
	)
	return nil
}

func (s *hotelService) GetHotel(ctx context.Context, id string) (*model.Hotel, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	hotel, err := s.hotelRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrHotelNotFound) {
			return nil, apperrors.NotFoundWithID("Hotel", id)
		}
		if errors.Is(err, hotelserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid hotel ID format")
		}
		s.cfg.Log.Error("Failed to get hotel by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve hotel", err)
	}
	return hotel, nil
}

func (s *hotelService) ListHotels(ctx context.Context, limit int, offset int64) ([]*model.Hotel, int64, error) {
	limit = httputil.NormalizeLimit(limit)
	offset = max(offset, 0)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var hotels []*model.Hotel
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.hotelRepo.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count hotels", "error", err)
			errCount = apperrors.Internal("Failed to count hotels", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		hotels, err = s.hotelRepo.FindAll(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list hotels",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve hotels", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return hotels, count, nil
}

func (s *hotelService) CreateRoomType(ctx context.Context, roomType *model.RoomType) error {
	roomType.Name = sanitizer.NormalizeName(roomType.Name)

	if err := s.validator.ValidateRoomType(roomType); err != nil {
		s.cfg.Log.Warn("Room type validation failed",
			"hotel_id", roomType.HotelID,
			"name", roomType.Name,
			"error", err,
		)
		return validationError("Room type validation failed", err)
	}

	if _, err := s.GetHotel(ctx, roomType.HotelID); err != nil {
		return err
	}

	if err := s.roomTypeRepo.Create(ctx, roomType); err != nil {
		s.cfg.Log.Error("Failed to create room type", "hotel_id", roomType.HotelID, "error", err)
		return apperrors.Internal("Failed to create room type", err)
	}

	s.cfg.Log.Info("Room type created successfully",
		"id", roomType.ID,
		"hotel_id", roomType.HotelID,
		"name", roomType.Name,
		"total_rooms", roomType.TotalRooms,
	)
	return nil
}

func (s *hotelService) ListRoomTypes(ctx context.Context, hotelID string) ([]*model.RoomType, error) {
	if _, err := s.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}

	roomTypes, err := s.roomTypeRepo.FindByHotel(ctx, hotelID)
	if err != nil {
		s.cfg.Log.Error("Failed to list room types", "hotel_id", hotelID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve room types", err)
	}
	return roomTypes, nil
}

func validationError(message string, err error) error {
	details := map[string]any{"error": err.Error()}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details["fields"] = verrs
	}
	return apperrors.Validation(message, details)
}
