package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"studentportal/internal/db"
	"studentportal/internal/ids"
	"studentportal/internal/metrics"
	"studentportal/internal/model"
)

// UserRepository defines user persistence operations.
// Find methods return (nil, nil) when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, role string) ([]model.User, error)
	SetRole(ctx context.Context, id bson.ObjectID, role model.Role) (*model.User, error)
}

type userRepository struct {
	col collection
}

// NewUserRepository builds a Mongo-backed repository. database may be nil,
// in which case every call fails with ErrStoreUnavailable.
func NewUserRepository(database *mongo.Database, m *metrics.Metrics) UserRepository {
	return &userRepository{col: newCollection(database, db.ColUsers, m)}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	ts := now()
	user.ID = ids.New()
	user.CreatedAt = ts
	user.UpdatedAt = ts
	if err := insertOne(ctx, r.col, user); err != nil {
		user.ID = bson.NilObjectID
		return err
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	return findOne[model.User](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

// FindByEmail returns the oldest user with this email, which is the canonical
// one when duplicates exist.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	oldestFirst := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return findOne[model.User](ctx, r.col, bson.D{{Key: "email", Value: email}}, oldestFirst)
}

// List returns users newest first, restricted to role when it is not empty.
func (r *userRepository) List(ctx context.Context, role string) ([]model.User, error) {
	filter := bson.D{}
	if role != "" {
		filter = append(filter, bson.E{Key: "role", Value: role})
	}
	return findMany[model.User](ctx, r.col, filter)
}

// SetRole changes the role of an existing user and returns the updated document.
func (r *userRepository) SetRole(ctx context.Context, id bson.ObjectID, role model.Role) (*model.User, error) {
	return updateFields[model.User](ctx, r.col, id, bson.D{{Key: "role", Value: role}})
}
