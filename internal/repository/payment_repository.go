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

// PaymentRepository defines payment persistence operations.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Payment, error)
	List(ctx context.Context, studentID string) ([]model.Payment, error)
	UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.D) (*model.Payment, error)
}

type paymentRepository struct {
	col collection
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(database *mongo.Database, m *metrics.Metrics) PaymentRepository {
	return &paymentRepository{col: newCollection(database, db.ColPayments, m)}
}

// Create creates a new payment record.
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	ts := now()
	payment.ID = ids.New()
	payment.CreatedAt = ts
	payment.UpdatedAt = ts
	if err := insertOne(ctx, r.col, payment); err != nil {
		payment.ID = bson.NilObjectID
		return err
	}
	return nil
}

// FindByID finds a payment by ID.
func (r *paymentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Payment, error) {
	return findOne[model.Payment](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

func (r *paymentRepository) List(ctx context.Context, studentID string) ([]model.Payment, error) {
	filter := bson.D{}
	if studentID != "" {
		filter = append(filter, bson.E{Key: "studentId", Value: studentID})
	}
	return findMany[model.Payment](ctx, r.col, filter)
}

func (r *paymentRepository) UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.D) (*model.Payment, error) {
	return updateFields[model.Payment](ctx, r.col, id, fields)
}
