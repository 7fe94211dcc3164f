package repository

import (
	"context"
	"os"
	"testing"
	"time"

	bookingserrors "roomledger/internal/bookings/errors"
	"roomledger/pkg/config"
	"roomledger/pkg/daterange"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newMongoConfig connects to TEST_MONGO_URI and points the config at a
// throwaway database that is dropped when the test ends.
func newMongoConfig(t *testing.T) *config.Config {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, mc.Ping(ctx, nil))

	cfg := config.Default(logger.New(logger.Config{Level: "error", Format: logger.JSON}))
	cfg.StorageDriver = config.StorageMongo
	cfg.MongoURI = uri
	cfg.MongoDatabaseName = "roomledger_test_" + primitive.NewObjectID().Hex()
	cfg.Client.Mongo = mc

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = mc.Database(cfg.MongoDatabaseName).Drop(ctx)
		_ = mc.Disconnect(ctx)
	})
	return cfg
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func newMongoBooking(roomTypeID, in, out string) *model.Booking {
	return &model.Booking{
		HotelID:      primitive.NewObjectID().Hex(),
		RoomTypeID:   roomTypeID,
		UserID:       primitive.NewObjectID().Hex(),
		CheckInDate:  day(in),
		CheckOutDate: day(out),
		Status:       model.BookingStatusConfirmed,
	}
}

func TestMongoBookingRepository_CreateAndFind(t *testing.T) {
	repo := NewMongoBookingRepository(newMongoConfig(t))
	ctx := context.Background()

	b := newMongoBooking(primitive.NewObjectID().Hex(), "2026-03-01", "2026-03-03")
	require.NoError(t, repo.Create(ctx, b))
	require.NotEmpty(t, b.ID)

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.RoomTypeID, found.RoomTypeID)
	assert.Equal(t, model.BookingStatusConfirmed, found.Status)

	_, err = repo.FindByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)

	_, err = repo.FindByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, bookingserrors.ErrInvalidID)
}

func TestMongoBookingRepository_CountOverlappingIsHalfOpen(t *testing.T) {
	repo := NewMongoBookingRepository(newMongoConfig(t))
	ctx := context.Background()
	roomType := primitive.NewObjectID().Hex()

	require.NoError(t, repo.Create(ctx, newMongoBooking(roomType, "2026-03-01", "2026-03-03")))
	require.NoError(t, repo.Create(ctx, newMongoBooking(roomType, "2026-03-02", "2026-03-05")))

	tests := []struct {
		name     string
		in, out  string
		expected int64
	}{
		{"both overlap", "2026-03-02", "2026-03-03", 2},
		{"adjacent checkout", "2026-03-05", "2026-03-07", 0},
		{"adjacent checkin", "2026-02-27", "2026-03-01", 0},
		{"first only", "2026-03-01", "2026-03-02", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.CountOverlapping(ctx, roomType, model.BookingStatusConfirmed,
				daterange.Range{Start: day(tt.in), End: day(tt.out)})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestMongoBookingRepository_UpdateStatus(t *testing.T) {
	repo := NewMongoBookingRepository(newMongoConfig(t))
	ctx := context.Background()

	b := newMongoBooking(primitive.NewObjectID().Hex(), "2026-03-01", "2026-03-03")
	require.NoError(t, repo.Create(ctx, b))

	updated, err := repo.UpdateStatus(ctx, b.ID, model.BookingStatusConfirmed, model.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, updated.Status)

	_, err = repo.UpdateStatus(ctx, b.ID, model.BookingStatusConfirmed, model.BookingStatusCompleted)
	assert.ErrorIs(t, err, bookingserrors.ErrStatusConflict)

	_, err = repo.UpdateStatus(ctx, primitive.NewObjectID().Hex(), model.BookingStatusConfirmed, model.BookingStatusCancelled)
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)
}

func TestMongoBookingRepository_ExpireCreatedBefore(t *testing.T) {
	repo := NewMongoBookingRepository(newMongoConfig(t))
	ctx := context.Background()
	roomType := primitive.NewObjectID().Hex()

	old := newMongoBooking(roomType, "2026-03-01", "2026-03-03")
	old.CreatedAt = time.Now().Add(-2 * time.Hour).UTC()
	require.NoError(t, repo.Create(ctx, old))

	fresh := newMongoBooking(roomType, "2026-03-01", "2026-03-03")
	require.NoError(t, repo.Create(ctx, fresh))

	n, err := repo.ExpireCreatedBefore(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.FindByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusExpired, got.Status)

	got, err = repo.FindByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, got.Status)
}

func TestMongoBookingLockRepository(t *testing.T) {
	locks := NewBookingLockRepository(newMongoConfig(t))
	ctx := context.Background()

	require.NoError(t, locks.Acquire(ctx, newLock("a", 10*time.Second)))
	assert.ErrorIs(t, locks.Acquire(ctx, newLock("b", 10*time.Second)), bookingserrors.ErrLockHeld)

	// Release by a non-owner leaves the lock in place.
	require.NoError(t, locks.Release(ctx, newLock("b", 0)))
	assert.ErrorIs(t, locks.Acquire(ctx, newLock("b", 10*time.Second)), bookingserrors.ErrLockHeld)

	require.NoError(t, locks.Release(ctx, newLock("a", 0)))
	require.NoError(t, locks.Acquire(ctx, newLock("b", 10*time.Second)))
}

func TestMongoBookingLockRepository_ReclaimsExpired(t *testing.T) {
	locks := NewBookingLockRepository(newMongoConfig(t))
	ctx := context.Background()

	require.NoError(t, locks.Acquire(ctx, newLock("a", -time.Second)))
	require.NoError(t, locks.Acquire(ctx, newLock("b", 10*time.Second)))
}
