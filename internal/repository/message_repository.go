package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"studentportal/internal/db"
	"studentportal/internal/ids"
	"studentportal/internal/metrics"
	"studentportal/internal/model"
)

// MessageRepository defines message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Message, error)
	ListForUser(ctx context.Context, userID string) ([]model.Message, error)
}

type messageRepository struct {
	col collection
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(database *mongo.Database, m *metrics.Metrics) MessageRepository {
	return &messageRepository{col: newCollection(database, db.ColMessages, m)}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	ts := now()
	message.ID = ids.New()
	message.CreatedAt = ts
	message.UpdatedAt = ts
	if err := insertOne(ctx, r.col, message); err != nil {
		message.ID = bson.NilObjectID
		return err
	}
	return nil
}

func (r *messageRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Message, error) {
	return findOne[model.Message](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

// ListForUser returns messages the user sent or received, newest first.
func (r *messageRepository) ListForUser(ctx context.Context, userID string) ([]model.Message, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "fromUserId", Value: userID}},
		bson.D{{Key: "toUserId", Value: userID}},
	}}}
	return findMany[model.Message](ctx, r.col, filter)
}
