package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "studentportal/internal/errors"
	"studentportal/internal/ids"
	"studentportal/internal/model"
	"studentportal/internal/repository"
	"studentportal/internal/validation"
)

// ProjectService handles project requests and their review updates.
type ProjectService interface {
	Create(ctx context.Context, in model.ProjectInput) (*model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, studentID string) ([]model.Project, error)
	// Update applies patch and reports false, with a nil project, when the
	// patch carries no fields. The store is not touched in that case.
	Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, bool, error)
	AttachDeliverable(ctx context.Context, id, ref string) (*model.Project, error)
}

type projectService struct {
	repo      repository.ProjectRepository
	validator *validation.Validator
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, v *validation.Validator) ProjectService {
	return &projectService{repo: repo, validator: v}
}

// Create stores a new project. The studentId is not checked against users.
// A non-empty FileURL is attached afterwards as the first deliverable.
func (s *projectService) Create(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	project, err := s.validator.Project(in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if in.FileURL == nil || *in.FileURL == "" {
		return project, nil
	}
	attached, err := s.repo.AddDeliverable(ctx, project.ID, *in.FileURL)
	if err != nil {
		return nil, fmt.Errorf("attach initial file: %w", err)
	}
	return attached, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	oid, err := ids.Decode(id)
	if err != nil {
		return nil, err
	}
	project, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if project == nil {
		return nil, apperrors.NotFound("project")
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, studentID string) ([]model.Project, error) {
	projects, err := s.repo.List(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) Update(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, bool, error) {
	oid, err := ids.Decode(id)
	if err != nil {
		return nil, false, err
	}
	if err := s.validator.ProjectPatch(patch); err != nil {
		return nil, false, err
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, false, nil
	}

	project, err := s.repo.UpdateFields(ctx, oid, fields)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, apperrors.NotFound("project")
		}
		return nil, false, fmt.Errorf("update project: %w", err)
	}
	return project, true, nil
}

// AttachDeliverable adds ref to the project's deliverables, keeping existing
// entries. Attaching the same ref twice leaves a single copy.
func (s *projectService) AttachDeliverable(ctx context.Context, id, ref string) (*model.Project, error) {
	oid, err := ids.Decode(id)
	if err != nil {
		return nil, err
	}
	in := model.DeliverableInput{URL: ref}
	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	project, err := s.repo.AddDeliverable(ctx, oid, ref)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("project")
		}
		return nil, fmt.Errorf("attach deliverable: %w", err)
	}
	return project, nil
}
