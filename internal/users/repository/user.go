package repository

import (
	"context"
	"errors"
	"fmt"
	userserrors "househunt/internal/users/errors"
	"househunt/pkg/config"
	mongodb "househunt/pkg/db/mongo"
	"househunt/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetLoggedIn(ctx context.Context, email string, loggedIn bool) (int64, error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	return &mongoUserRepository{
		cfg:        cfg,
		collection: cfg.Database().Collection(mongodb.UsersCollection),
	}
}

// Create inserts user. The unique index on email turns a concurrent
// registration of the same address into ErrDuplicateEmail.
func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", userserrors.ErrDuplicateEmail, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}

	return nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *mongoUserRepository) SetLoggedIn(ctx context.Context, email string, loggedIn bool) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"isLoggedIn": loggedIn}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update login state: %w", err)
	}
	return result.MatchedCount, nil
}
