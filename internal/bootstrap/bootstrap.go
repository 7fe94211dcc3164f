// Package bootstrap assembles repositories, services and handlers for the
// configured storage driver and lock backend.
package bootstrap

import (
	"fmt"

	availabilityhandler "roomledger/internal/availability/handler"
	availability "roomledger/internal/availability/service"
	"roomledger/internal/bookings/events"
	bookingshandler "roomledger/internal/bookings/handler"
	bookingsrepository "roomledger/internal/bookings/repository"
	bookings "roomledger/internal/bookings/service"
	bookingsvalidator "roomledger/internal/bookings/validator"
	confidencehandler "roomledger/internal/confidence/handler"
	confidence "roomledger/internal/confidence/service"
	hotelshandler "roomledger/internal/hotels/handler"
	hotelsrepository "roomledger/internal/hotels/repository"
	hotels "roomledger/internal/hotels/service"
	hotelsvalidator "roomledger/internal/hotels/validator"
	searchhandler "roomledger/internal/search/handler"
	search "roomledger/internal/search/service"
	"roomledger/internal/storage/memory"
	"roomledger/pkg/config"
	"roomledger/pkg/contracts"
)

type Repositories struct {
	Hotels    hotelsrepository.HotelRepository
	RoomTypes hotelsrepository.RoomTypeRepository
	Bookings  bookingsrepository.BookingRepository
	Locks     bookingsrepository.BookingLockRepository
}

// NewRepositories picks the storage and lock implementations named in cfg.
// Mongo and Redis clients must already be connected on cfg.Client.
func NewRepositories(cfg *config.Config, store *memory.Store) (Repositories, error) {
	var repos Repositories

	switch cfg.StorageDriver {
	case config.StorageMongo:
		if cfg.Client == nil || cfg.Client.Mongo == nil {
			return repos, fmt.Errorf("storage driver %s requires a Mongo client", cfg.StorageDriver)
		}
		repos.Hotels = hotelsrepository.NewMongoHotelRepository(cfg)
		repos.RoomTypes = hotelsrepository.NewMongoRoomTypeRepository(cfg)
		repos.Bookings = bookingsrepository.NewMongoBookingRepository(cfg)
	case config.StorageMemory:
		if store == nil {
			store = memory.NewStore()
		}
		repos.Hotels = store.Hotels()
		repos.RoomTypes = store.RoomTypes()
		repos.Bookings = store.Bookings()
	default:
		return repos, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}

	switch cfg.LockBackend {
	case config.LockMongo:
		if cfg.Client == nil || cfg.Client.Mongo == nil {
			return repos, fmt.Errorf("lock backend %s requires a Mongo client", cfg.LockBackend)
		}
		repos.Locks = bookingsrepository.NewBookingLockRepository(cfg)
	case config.LockRedis:
		if cfg.Client == nil || cfg.Client.Redis == nil {
			return repos, fmt.Errorf("lock backend %s requires a Redis client", cfg.LockBackend)
		}
		repos.Locks = bookingsrepository.NewRedisBookingLockRepository(cfg.Client.Redis)
	case config.LockMemory:
		if store == nil {
			store = memory.NewStore()
		}
		repos.Locks = store.Locks()
	default:
		return repos, fmt.Errorf("unknown lock backend: %s", cfg.LockBackend)
	}

	return repos, nil
}

type Services struct {
	Hotels       hotels.HotelService
	Bookings     bookings.BookingService
	Availability availability.Calculator
	Confidence   confidence.ConfidenceService
	Search       search.SearchService
}

// NewServices wires the services over repos. A nil publisher drops events.
func NewServices(cfg *config.Config, repos Repositories, publisher events.Publisher) *Services {
	calculator := availability.NewCalculator(repos.Bookings, repos.RoomTypes, cfg)
	confidenceService := confidence.NewConfidenceService(repos.Hotels, repos.RoomTypes, repos.Bookings, cfg)

	return &Services{
		Hotels: hotels.NewHotelService(
			repos.Hotels,
			repos.RoomTypes,
			hotelsvalidator.NewHotelValidator(cfg.Log),
			cfg,
		),
		Bookings: bookings.NewBookingService(
			repos.Bookings,
			repos.Locks,
			repos.RoomTypes,
			calculator,
			bookingsvalidator.NewBookingValidator(cfg.Log),
			publisher,
			cfg,
		),
		Availability: calculator,
		Confidence:   confidenceService,
		Search:       search.NewSearchService(repos.Hotels, repos.RoomTypes, confidenceService, cfg),
	}
}

func (s *Services) Handlers(cfg *config.Config) []contracts.Handler {
	return []contracts.Handler{
		hotelshandler.NewHotelHandler(s.Hotels, cfg.Log),
		availabilityhandler.NewAvailabilityHandler(s.Availability, cfg.Log),
		bookingshandler.NewBookingHandler(s.Bookings, cfg.Log),
		confidencehandler.NewConfidenceHandler(s.Confidence, cfg.Log),
		searchhandler.NewSearchHandler(s.Search, cfg.Log),
	}
}
