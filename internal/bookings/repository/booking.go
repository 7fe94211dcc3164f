package repository

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "roomledger/internal/bookings/errors"
	"roomledger/pkg/config"
	"roomledger/pkg/daterange"
	mongotx "roomledger/pkg/db/mongo"
	"roomledger/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByHotel(ctx context.Context, hotelID string) ([]*model.Booking, error)
	// CountOverlapping counts bookings of roomTypeID in status whose stay overlaps r.
	CountOverlapping(ctx context.Context, roomTypeID string, status model.BookingStatus, r daterange.Range) (int64, error)
	// UpdateStatus moves a booking from expected to next only if it is still in expected.
	// It returns ErrStatusConflict when the booking exists in any other status.
	UpdateStatus(ctx context.Context, id string, expected, next model.BookingStatus) (*model.Booking, error)
	// ExpireCreatedBefore marks every CONFIRMED booking created before threshold as EXPIRED.
	ExpireCreatedBefore(ctx context.Context, threshold time.Time) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByHotel(ctx context.Context, hotelID string) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"hotel_id": hotelID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by hotel: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) CountOverlapping(ctx context.Context, roomTypeID string, status model.BookingStatus, dates daterange.Range) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, overlapFilter(roomTypeID, status, dates))
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return count, nil
}

// overlapFilter matches stays intersecting the half-open range dates.
func overlapFilter(roomTypeID string, status model.BookingStatus, dates daterange.Range) bson.M {
	return bson.M{
		"room_type_id":   roomTypeID,
		"status":         status,
		"check_in_date":  bson.M{"$lt": dates.End},
		"check_out_date": bson.M{"$gt": dates.Start},
	}
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, expected, next model.BookingStatus) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "status": expected}
	update := bson.M{
		"$set": bson.M{
			"status":     next,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking model.Booking
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return nil, fmt.Errorf("failed to check booking existence: %w", err)
	}
	if n == 0 {
		return nil, bookingserrors.ErrNotFound
	}
	return nil, bookingserrors.ErrStatusConflict
}

func (r *mongoBookingRepository) ExpireCreatedBefore(ctx context.Context, threshold time.Time) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"status":     model.BookingStatusConfirmed,
		"created_at": bson.M{"$lt": threshold},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     model.BookingStatusExpired,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire bookings: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
