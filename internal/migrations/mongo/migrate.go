package mongo

import (
	"context"
	"fmt"
	"househunt/internal/migrations/mongo/validators"
	mongodb "househunt/pkg/db/mongo"
	"househunt/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	}

	HousesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerEmail", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookedHouseId", Value: 1}}},
		{Keys: bson.D{{Key: "ownerEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "renterEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
)

type CollectionSpec struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection the service relies on, in creation order.
func Collections() []CollectionSpec {
	return []CollectionSpec{
		{Name: mongodb.UsersCollection, Indexes: UsersIndexes, Validator: validators.UserValidator},
		{Name: mongodb.HousesCollection, Indexes: HousesIndexes, Validator: validators.HouseValidator},
		{Name: mongodb.BookingsCollection, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
	}
}

// RunMigration creates missing collections, refreshes their validators and
// ensures indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, spec := range Collections() {
		if err := ensureCollection(ctx, db, spec.Name, spec.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", spec.Name, err)
		}
		if err := ensureIndexes(ctx, db, spec.Name, spec.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", spec.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
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

	log.Info("Collection exists, updating validator", "collection", name)
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
