package repository

import (
	"context"
	"errors"
	"fmt"
	hotelserrors "roomledger/internal/hotels/errors"
	"roomledger/pkg/config"
	mongotx "roomledger/pkg/db/mongo"
	"roomledger/pkg/model"
	"roomledger/pkg/sanitizer"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	HotelCollectionName = "Hotels"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error)
	Count(ctx context.Context) (int64, error)
	// SearchByLocation matches location as a case-insensitive substring.
	SearchByLocation(ctx context.Context, location string) ([]*model.Hotel, error)
}

type mongoHotelRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoHotelRepository(cfg *config.Config) HotelRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoHotelRepository{
		cfg:        cfg,
		collection: db.Collection(HotelCollectionName),
	}
}

func (r *mongoHotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	hotel.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, hotel)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		hotel.ID = oid.Hex()
	}
	return nil
}

func (r *mongoHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	var hotel model.Hotel
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hotelserrors.ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}
	return &hotel, nil
}

func (r *mongoHotelRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Hotel, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoHotelRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count hotels: %w", err)
	}
	return count, nil
}

func (r *mongoHotelRepository) SearchByLocation(ctx context.Context, location string) ([]*model.Hotel, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"location": primitive.Regex{Pattern: sanitizer.RegexLiteral(location), Options: "i"},
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	return r.find(ctx, filter, opts)
}

func (r *mongoHotelRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Hotel, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []*model.Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}
