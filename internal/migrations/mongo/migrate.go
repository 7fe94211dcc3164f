package mongo

import (
	"context"
	"fmt"

	bookingsrepository "roomledger/internal/bookings/repository"
	hotelsrepository "roomledger/internal/hotels/repository"
	"roomledger/internal/migrations/mongo/validators"
	"roomledger/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	HotelsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}},
	}

	RoomTypesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "hotel_id", Value: 1}, {Key: "name", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		// overlap counting during admission
		{Keys: bson.D{
			{Key: "room_type_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "check_in_date", Value: 1},
			{Key: "check_out_date", Value: 1},
		}},
		// expiry sweep
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		// confidence history
		{Keys: bson.D{{Key: "hotel_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	// Mongo reclaims locks abandoned by crashed processes once expires_at passes.
	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
)

type CollectionDefinition struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func Collections() []CollectionDefinition {
	return []CollectionDefinition{
		{Name: hotelsrepository.HotelCollectionName, Indexes: HotelsIndexes, Validator: validators.HotelValidator},
		{Name: hotelsrepository.RoomTypeCollectionName, Indexes: RoomTypesIndexes, Validator: validators.RoomTypeValidator},
		{Name: bookingsrepository.CollectionName, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
		{Name: bookingsrepository.LockCollectionName, Indexes: BookingLocksIndexes, Validator: validators.BookingLockValidator},
	}
}

// RunMigration creates every collection with its validator and indexes. It is
// safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully", "database", db.Name())
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}
