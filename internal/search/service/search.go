package service

import (
	"context"
	confidence "roomledger/internal/confidence/service"
	hotelsrepository "roomledger/internal/hotels/repository"
	"roomledger/pkg/config"
	apperrors "roomledger/pkg/errors"
	"roomledger/pkg/model"
	"roomledger/pkg/sanitizer"

	"golang.org/x/sync/errgroup"
)

type SearchService interface {
	// Search returns hotels whose location contains location, each with its
	// room types and a freshly computed confidence result.
	Search(ctx context.Context, location string) ([]*model.HotelSearchResult, error)
}

type searchService struct {
	hotelRepo    hotelsrepository.HotelRepository
	roomTypeRepo hotelsrepository.RoomTypeRepository
	confidence   confidence.ConfidenceService
	cfg          *config.Config
}

func NewSearchService(
	hotelRepo hotelsrepository.HotelRepository,
	roomTypeRepo hotelsrepository.RoomTypeRepository,
	confidenceService confidence.ConfidenceService,
	cfg *config.Config,
) SearchService {
	return &searchService{
		hotelRepo:    hotelRepo,
		roomTypeRepo: roomTypeRepo,
		confidence:   confidenceService,
		cfg:          cfg,
	}
}

func (s *searchService) Search(ctx context.Context, location string) ([]*model.HotelSearchResult, error) {
	location = sanitizer.NormalizeLocation(location)
	if location == "" {
		return nil, apperrors.InvalidInput("location query parameter is required")
	}

	hotels, err := s.hotelRepo.SearchByLocation(ctx, location)
	if err != nil {
		s.cfg.Log.Error("Failed to search hotels", "location", location, "error", err)
		return nil, apperrors.Internal("Failed to search hotels", err)
	}

	results := make([]*model.HotelSearchResult, len(hotels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.SearchConcurrency, 1))

	for i, hotel := range hotels {
		g.Go(func() error {
			roomTypes, err := s.roomTypeRepo.FindByHotel(gctx, hotel.ID)
			if err != nil {
				s.cfg.Log.Error("Failed to load room types", "hotel_id", hotel.ID, "error", err)
				return apperrors.Internal("Failed to search hotels", err)
			}

			score, err := s.confidence.ScoreHotel(gctx, hotel.ID, roomTypes)
			if err != nil {
				return err
			}

			results[i] = &model.HotelSearchResult{
				Hotel:      hotel,
				RoomTypes:  roomTypes,
				Confidence: score,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Hotel search completed", "location", location, "count", len(results))
	return results, nil
}
