package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	apperrors "studentportal/internal/errors"
	"studentportal/internal/metrics"
)

// now is the clock used for created_at/updated_at. BSON dates carry
// millisecond precision so the value is truncated to match what a read returns.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// newestFirst orders listings by creation time, most recent first. _id breaks
// ties since ObjectIDs grow with insertion order.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// collection is a named partition of documents sharing one schema.
type collection struct {
	name    string
	db      *mongo.Database
	metrics *metrics.Metrics
}

func newCollection(db *mongo.Database, name string, m *metrics.Metrics) collection {
	return collection{name: name, db: db, metrics: m}
}

func (c collection) get() (*mongo.Collection, error) {
	if c.db == nil {
		return nil, fmt.Errorf("%s: %w", c.name, apperrors.ErrStoreUnavailable)
	}
	return c.db.Collection(c.name), nil
}

func (c collection) observe(op string, started time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	c.metrics.ObserveStore(c.name, op, result, started)
}

// wrapError converts driver errors into domain errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicate, err)
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return err
}

// insertOne stores doc. Callers assign _id and timestamps beforehand so the
// document is never visible without them.
func insertOne(ctx context.Context, c collection, doc any) (err error) {
	defer func(start time.Time) { c.observe("insert", start, err) }(time.Now())

	col, err := c.get()
	if err != nil {
		return err
	}
	_, err = col.InsertOne(ctx, doc)
	return wrapError(err)
}

// findOne returns (nil, nil) when no document matches.
func findOne[T any](ctx context.Context, c collection, filter bson.D, opts ...options.Lister[options.FindOneOptions]) (_ *T, err error) {
	missed := false
	defer func(start time.Time) {
		if missed {
			c.observe("find_one", start, apperrors.ErrNotFound)
			return
		}
		c.observe("find_one", start, err)
	}(time.Now())

	col, err := c.get()
	if err != nil {
		return nil, err
	}

	var result T
	if err := col.FindOne(ctx, filter, opts...).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			missed = true
			return nil, nil
		}
		return nil, wrapError(err)
	}
	return &result, nil
}

// findMany returns every match, newest first. It never returns a nil slice.
func findMany[T any](ctx context.Context, c collection, filter bson.D) (_ []T, err error) {
	defer func(start time.Time) { c.observe("find", start, err) }(time.Now())

	col, err := c.get()
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapError(err)
	}
	return results, nil
}

// updateFields merges fields into the document with the given id and stamps
// updated_at in the same single-document write, returning the document as
// stored afterwards. Absent fields are left untouched.
func updateFields[T any](ctx context.Context, c collection, id bson.ObjectID, fields bson.D) (*T, error) {
	set := make(bson.D, 0, len(fields)+1)
	set = append(set, fields...)
	set = append(set, bson.E{Key: "updated_at", Value: now()})

	return findOneAndUpdate[T](ctx, c, "update", id, bson.D{{Key: "$set", Value: set}})
}

// addToSet adds value to the array field unless an equal element is already
// present, and stamps updated_at.
func addToSet[T any](ctx context.Context, c collection, id bson.ObjectID, field string, value any) (*T, error) {
	update := bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: field, Value: value}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now()}}},
	}
	return findOneAndUpdate[T](ctx, c, "add_to_set", id, update)
}

func findOneAndUpdate[T any](ctx context.Context, c collection, op string, id bson.ObjectID, update bson.D) (_ *T, err error) {
	defer func(start time.Time) { c.observe(op, start, err) }(time.Now())

	col, err := c.get()
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var result T
	if err := col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}
