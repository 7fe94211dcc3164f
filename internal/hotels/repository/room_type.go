package repository

import (
	"context"
	"errors"
	"fmt"
	hotelserrors "roomledger/internal/hotels/errors"
	"roomledger/pkg/config"
	mongotx "roomledger/pkg/db/mongo"
	"roomledger/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RoomTypeCollectionName = "Room_types"
)

type RoomTypeRepository interface {
	Create(ctx context.Context, roomType *model.RoomType) error
	FindByID(ctx context.Context, id string) (*model.RoomType, error)
	FindByHotel(ctx context.Context, hotelID string) ([]*model.RoomType, error)
	// BumpInventoryVersion writes to the room type document so that concurrent
	// admission transactions on the same room type conflict with each other.
	BumpInventoryVersion(ctx context.Context, id string) error
}

type mongoRoomTypeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomTypeRepository(cfg *config.Config) RoomTypeRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomTypeRepository{
		cfg:        cfg,
		collection: db.Collection(RoomTypeCollectionName),
	}
}

func (r *mongoRoomTypeRepository) Create(ctx context.Context, roomType *model.RoomType) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	roomType.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	roomType.InventoryVersion = 0
	result, err := r.collection.InsertOne(ctx, roomType)
	if err != nil {
		return fmt.Errorf("failed to create room type: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		roomType.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRoomTypeRepository) FindByID(ctx context.Context, id string) (*model.RoomType, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	var roomType model.RoomType
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&roomType); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hotelserrors.ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("failed to find room type: %w", err)
	}
	return &roomType, nil
}

func (r *mongoRoomTypeRepository) FindByHotel(ctx context.Context, hotelID string) ([]*model.RoomType, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"hotel_id": hotelID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find room types: %w", err)
	}
	defer cursor.Close(ctx)

	roomTypes := []*model.RoomType{}
	if err := cursor.All(ctx, &roomTypes); err != nil {
		return nil, fmt.Errorf("failed to decode room types: %w", err)
	}
	return roomTypes, nil
}

func (r *mongoRoomTypeRepository) BumpInventoryVersion(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"inventory_version": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to bump inventory version: %w", err)
	}
	if result.MatchedCount == 0 {
		return hotelserrors.ErrRoomTypeNotFound
	}
	return nil
}
