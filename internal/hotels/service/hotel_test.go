package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomledger/internal/hotels/validator"
	"roomledger/internal/storage/memory"
	"roomledger/pkg/config"
	apperrors "roomledger/pkg/errors"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService(store *memory.Store) HotelService {
	cfg := config.Default(logger.Discard())
	return NewHotelService(store.Hotels(), store.RoomTypes(), validator.NewHotelValidator(cfg.Log), cfg)
}

func TestCreateHotel_NormalizesInput(t *testing.T) {
	svc := newTestService(memory.NewStore())

	hotel := &model.Hotel{Name: "  The   Ritz ", Location: " London<script> ", Description: " five  stars "}
	require.NoError(t, svc.CreateHotel(context.Background(), hotel))

	assert.NotEmpty(t, hotel.ID)
	assert.Equal(t, "The Ritz", hotel.Name)
	assert.Equal(t, "London script", hotel.Location)
	assert.Equal(t, "five stars", hotel.Description)
}

func TestCreateHotel_Validation(t *testing.T) {
	svc := newTestService(memory.NewStore())

	err := svc.CreateHotel(context.Background(), &model.Hotel{Name: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	appErr := apperrors.AsAppError(err)
	assert.Contains(t, appErr.Details, "fields")
}

func TestCreateRoomType(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	ctx := context.Background()

	hotel := &model.Hotel{Name: "Harbour", Location: "Hamburg"}
	require.NoError(t, svc.CreateHotel(ctx, hotel))

	roomType := &model.RoomType{HotelID: hotel.ID, Name: "Deluxe", Price: 210, TotalRooms: 4}
	require.NoError(t, svc.CreateRoomType(ctx, roomType))
	assert.NotEmpty(t, roomType.ID)

	roomTypes, err := svc.ListRoomTypes(ctx, hotel.ID)
	require.NoError(t, err)
	require.Len(t, roomTypes, 1)
	assert.Equal(t, 4, roomTypes[0].TotalRooms)

	err = svc.CreateRoomType(ctx, &model.RoomType{HotelID: primitive.NewObjectID().Hex(), Name: "Ghost", TotalRooms: 1})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	err = svc.CreateRoomType(ctx, &model.RoomType{HotelID: hotel.ID, Name: "Negative", TotalRooms: -1})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = svc.ListRoomTypes(ctx, "bad")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestListHotels_Paginates(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)
	ctx := context.Background()

	for _, name := range []string{"Cedar", "Alder", "Birch"} {
		require.NoError(t, svc.CreateHotel(ctx, &model.Hotel{Name: name, Location: "Vancouver"}))
	}

	hotels, total, err := svc.ListHotels(ctx, 2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Birch", hotels[0].Name)
	assert.Equal(t, "Cedar", hotels[1].Name)

	hotels, _, err = svc.ListHotels(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, hotels)
}

type slowHotelRepository struct {
	countErr error
}

func (r *slowHotelRepository) Create(context.Context, *model.Hotel) error { return nil }

func (r *slowHotelRepository) FindByID(context.Context, string) (*model.Hotel, error) {
	return nil, errors.New("unused")
}

func (r *slowHotelRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
	time.Sleep(10 * time.Millisecond)
	return []*model.Hotel{{ID: "1", Name: "Hotel 1"}}, nil
}

func (r *slowHotelRepository) Count(ctx context.Context) (int64, error) {
	time.Sleep(10 * time.Millisecond)
	return 50, r.countErr
}

func (r *slowHotelRepository) SearchByLocation(context.Context, string) ([]*model.Hotel, error) {
	return nil, nil
}

func TestListHotels_RaceCondition(t *testing.T) {
	cfg := config.Default(logger.Discard())
	svc := &hotelService{hotelRepo: &slowHotelRepository{}, cfg: cfg}

	// Run with -race to detect unsynchronized writes between the two lookups.
	for i := 0; i < 20; i++ {
		hotels, count, err := svc.ListHotels(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 50 {
			t.Errorf("iteration %d: expected count 50, got %d", i, count)
		}
		if len(hotels) != 1 {
			t.Errorf("iteration %d: expected 1 hotel, got %d", i, len(hotels))
		}
	}

	failing := &hotelService{hotelRepo: &slowHotelRepository{countErr: errors.New("socket closed")}, cfg: cfg}
	_, _, err := failing.ListHotels(context.Background(), 10, 0)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}
