package repository

import (
	"context"
	"fmt"
	bookingserrors "roomledger/internal/bookings/errors"
	"roomledger/pkg/model"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisLockPrefix = "roomledger:"

// releaseScript deletes the key only when it still holds the caller's owner token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisBookingLockRepository struct {
	rdb *redis.Client
}

func NewRedisBookingLockRepository(rdb *redis.Client) BookingLockRepository {
	return &redisBookingLockRepository{rdb: rdb}
}

func (r *redisBookingLockRepository) Acquire(ctx context.Context, lock *model.BookingLock) error {
	lock.CreatedAt = time.Now().UTC()
	ttl := lock.ExpiresAt.Sub(lock.CreatedAt)
	if ttl <= 0 {
		return fmt.Errorf("booking lock %s already expired", lock.ID)
	}

	ok, err := r.rdb.SetNX(ctx, redisLockPrefix+lock.ID, lock.Owner, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	if !ok {
		return bookingserrors.ErrLockHeld
	}
	return nil
}

func (r *redisBookingLockRepository) Release(ctx context.Context, lock *model.BookingLock) error {
	if err := releaseScript.Run(ctx, r.rdb, []string{redisLockPrefix + lock.ID}, lock.Owner).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	return nil
}
