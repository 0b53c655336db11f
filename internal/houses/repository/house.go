package repository

import (
	"context"
	"errors"
	"fmt"
	houseserrors "househunt/internal/houses/errors"
	"househunt/pkg/config"
	mongodb "househunt/pkg/db/mongo"
	"househunt/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HouseRepository interface {
	Create(ctx context.Context, house *model.House) error
	FindByID(ctx context.Context, id string) (*model.House, error)
	FindAll(ctx context.Context) ([]*model.House, error)
	Search(ctx context.Context, filter bson.M, skip int64, limit int) ([]*model.House, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindByOwner(ctx context.Context, ownerEmail string) ([]*model.House, error)
	Update(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)

	MarkBooked(ctx context.Context, id string) (*model.House, error)
	MarkAvailable(ctx context.Context, id string) error
}

type mongoHouseRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoHouseRepository(cfg *config.Config) HouseRepository {
	return &mongoHouseRepository{
		cfg:        cfg,
		collection: cfg.Database().Collection(mongodb.HousesCollection),
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", houseserrors.ErrInvalidID, id)
	}
	return oid, nil
}

func (r *mongoHouseRepository) Create(ctx context.Context, house *model.House) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	house.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, house)
	if err != nil {
		return fmt.Errorf("failed to create house: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		house.ID = oid.Hex()
	}

	return nil
}

func (r *mongoHouseRepository) FindByID(ctx context.Context, id string) (*model.House, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var house model.House
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&house)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", houseserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find house: %w", err)
	}
	return &house, nil
}

func (r *mongoHouseRepository) FindAll(ctx context.Context) ([]*model.House, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Search applies skip then limit to the filtered set in a stable _id order.
func (r *mongoHouseRepository) Search(ctx context.Context, filter bson.M, skip int64, limit int) ([]*model.House, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *mongoHouseRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count houses: %w", err)
	}
	return count, nil
}

func (r *mongoHouseRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]*model.House, error) {
	return r.find(ctx, bson.M{"ownerEmail": ownerEmail}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *mongoHouseRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.House, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query houses: %w", err)
	}
	defer cursor.Close(ctx)

	houses := []*model.House{}
	if err = cursor.All(ctx, &houses); err != nil {
		return nil, fmt.Errorf("failed to decode houses: %w", err)
	}

	return houses, nil
}

func (r *mongoHouseRepository) Update(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return nil, fmt.Errorf("failed to update house: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", houseserrors.ErrNotFound, id)
	}

	return result, nil
}

func (r *mongoHouseRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete house: %w", err)
	}
	return result.DeletedCount, nil
}

// MarkBooked flips isBooking to true only if it is not already true. The
// condition and the write happen in one document update, so two concurrent
// bookings of the same listing cannot both succeed.
func (r *mongoHouseRepository) MarkBooked(ctx context.Context, id string) (*model.House, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "isBooking": bson.M{"$ne": true}}
	update := bson.M{"$set": bson.M{"isBooking": true}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var house model.House
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&house)
	if err == nil {
		return &house, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to mark house booked: %w", err)
	}

	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to check house existence: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", houseserrors.ErrNotFound, id)
	}
	return nil, fmt.Errorf("%w: %s", houseserrors.ErrAlreadyBooked, id)
}

func (r *mongoHouseRepository) MarkAvailable(ctx context.Context, id string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isBooking": false}})
	if err != nil {
		return fmt.Errorf("failed to mark house available: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", houseserrors.ErrNotFound, id)
	}
	return nil
}
