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

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Project, error)
	List(ctx context.Context, studentID string) ([]model.Project, error)
	UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.D) (*model.Project, error)
	AddDeliverable(ctx context.Context, id bson.ObjectID, ref string) (*model.Project, error)
}

type projectRepository struct {
	col collection
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(database *mongo.Database, m *metrics.Metrics) ProjectRepository {
	return &projectRepository{col: newCollection(database, db.ColProjects, m)}
}

// Create assigns id and timestamps and inserts the project.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	ts := now()
	project.ID = ids.New()
	project.CreatedAt = ts
	project.UpdatedAt = ts
	if project.Deliverables == nil {
		project.Deliverables = []string{}
	}
	if err := insertOne(ctx, r.col, project); err != nil {
		project.ID = bson.NilObjectID
		return err
	}
	return nil
}

// FindByID finds a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Project, error) {
	return findOne[model.Project](ctx, r.col, bson.D{{Key: "_id", Value: id}})
}

// List returns projects newest first, restricted to one student when studentID is set.
func (r *projectRepository) List(ctx context.Context, studentID string) ([]model.Project, error) {
	filter := bson.D{}
	if studentID != "" {
		filter = append(filter, bson.E{Key: "studentId", Value: studentID})
	}
	return findMany[model.Project](ctx, r.col, filter)
}

// UpdateFields sets the given fields and returns the updated project, or ErrNotFound.
func (r *projectRepository) UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.D) (*model.Project, error) {
	return updateFields[model.Project](ctx, r.col, id, fields)
}

// AddDeliverable adds ref to the deliverable set. Re-adding an existing ref is a no-op
// apart from the updated_at stamp.
func (r *projectRepository) AddDeliverable(ctx context.Context, id bson.ObjectID, ref string) (*model.Project, error) {
	return addToSet[model.Project](ctx, r.col, id, "deliverables", ref)
}
