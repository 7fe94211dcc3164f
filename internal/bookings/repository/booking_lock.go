package repository

import (
	"context"
	"fmt"
	bookingserrors "roomledger/internal/bookings/errors"
	"roomledger/pkg/config"
	mongotx "roomledger/pkg/db/mongo"
	"roomledger/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	LockCollectionName = "Booking_locks"
)

// BookingLockRepository stores advisory admission locks. Acquire returns
// ErrLockHeld while another owner holds an unexpired lock with the same ID.
type BookingLockRepository interface {
	Acquire(ctx context.Context, lock *model.BookingLock) error
	Release(ctx context.Context, lock *model.BookingLock) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoBookingLockRepository) Acquire(ctx context.Context, lock *model.BookingLock) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, lock)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}

	// The TTL monitor only runs once a minute, so an expired lock may still be present.
	res, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":        lock.ID,
		"expires_at": bson.M{"$lte": lock.CreatedAt},
	})
	if err != nil {
		return fmt.Errorf("failed to reclaim expired booking lock: %w", err)
	}
	if res.DeletedCount == 0 {
		return bookingserrors.ErrLockHeld
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	return nil
}

// Release deletes the lock only if it still belongs to lock.Owner.
func (r *mongoBookingLockRepository) Release(ctx context.Context, lock *model.BookingLock) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lock.ID, "owner": lock.Owner})
	if err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	return nil
}
