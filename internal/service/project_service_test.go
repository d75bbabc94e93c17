package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "studentportal/internal/errors"
	"studentportal/internal/model"
	"studentportal/internal/validation"
)

func strPtr(s string) *string { return &s }

func TestProjectService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         model.ProjectInput
		setupMock     func(*MockProjectRepository)
		expectedField string
	}{
		{
			name:  "java project gets default statuses",
			input: model.ProjectInput{StudentID: "s1", Title: "ERP", Technology: "Java"},
			setupMock: func(m *MockProjectRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
					return p.Status == model.ProjectStatusRequested &&
						p.PaymentStatus == model.PaymentStatusPending &&
						len(p.Deliverables) == 0
				})).Return(nil)
			},
		},
		{
			name:          "unknown technology is rejected before the store",
			input:         model.ProjectInput{StudentID: "s1", Title: "Legacy", Technology: "COBOL"},
			setupMock:     func(m *MockProjectRepository) {},
			expectedField: "technology",
		},
		{
			name:  "studentId is not checked against users",
			input: model.ProjectInput{StudentID: "no-such-user", Title: "Ghost", Technology: "Web"},
			setupMock: func(m *MockProjectRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)
			},
		},
		{
			name:  "empty fileUrl attaches nothing",
			input: model.ProjectInput{StudentID: "s1", Title: "Bot", Technology: "Python", FileURL: strPtr("")},
			setupMock: func(m *MockProjectRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProjectRepository)
			tt.setupMock(repo)
			svc := NewProjectService(repo, validation.New())

			project, err := svc.Create(context.Background(), tt.input)

			if tt.expectedField != "" {
				var invalid *apperrors.InvalidEntityDataError
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, tt.expectedField, invalid.Field)
				assert.Nil(t, project)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.False(t, project.ID.IsZero())
			}
			repo.AssertNotCalled(t, "AddDeliverable", mock.Anything, mock.Anything, mock.Anything)
			repo.AssertExpectations(t)
		})
	}
}

func TestProjectService_CreateAttachesInitialFile(t *testing.T) {
	attached := &model.Project{ID: bson.NewObjectID(), Deliverables: []string{"/uploads/1_proposal.pdf"}}
	repo := new(MockProjectRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)
	repo.On("AddDeliverable", mock.Anything, mock.AnythingOfType("bson.ObjectID"), "/uploads/1_proposal.pdf").Return(attached, nil)

	svc := NewProjectService(repo, validation.New())
	project, err := svc.Create(context.Background(), model.ProjectInput{
		StudentID:  "s1",
		Title:      "Smart farm",
		Technology: "IoT",
		FileURL:    strPtr("/uploads/1_proposal.pdf"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/1_proposal.pdf"}, project.Deliverables)
	repo.AssertExpectations(t)
}

func TestProjectService_Update(t *testing.T) {
	id := bson.NewObjectID()
	inReview := model.ProjectStatusInReview
	bogus := model.ProjectStatus("Shipped")

	tests := []struct {
		name        string
		id          string
		patch       model.ProjectPatch
		setupMock   func(*MockProjectRepository)
		wantUpdated bool
		wantErr     error
		wantField   string
	}{
		{
			name:      "empty patch is a no-op",
			id:        id.Hex(),
			patch:     model.ProjectPatch{},
			setupMock: func(m *MockProjectRepository) {},
		},
		{
			name:      "malformed id",
			id:        "xyz",
			patch:     model.ProjectPatch{Status: &inReview},
			wantErr:   apperrors.ErrInvalidIdentifier,
			setupMock: func(m *MockProjectRepository) {},
		},
		{
			name:      "invalid status",
			id:        id.Hex(),
			patch:     model.ProjectPatch{Status: &bogus},
			wantField: "status",
			setupMock: func(m *MockProjectRepository) {},
		},
		{
			name:    "missing project",
			id:      id.Hex(),
			patch:   model.ProjectPatch{Status: &inReview},
			wantErr: apperrors.ErrNotFound,
			setupMock: func(m *MockProjectRepository) {
				m.On("UpdateFields", mock.Anything, id, bson.D{{Key: "status", Value: inReview}}).Return(nil, apperrors.ErrNotFound)
			},
		},
		{
			name:        "only supplied fields are sent",
			id:          id.Hex(),
			patch:       model.ProjectPatch{Status: &inReview, AdminRemarks: strPtr("ok")},
			wantUpdated: true,
			setupMock: func(m *MockProjectRepository) {
				m.On("UpdateFields", mock.Anything, id, bson.D{
					{Key: "status", Value: inReview},
					{Key: "adminRemarks", Value: "ok"},
				}).Return(&model.Project{ID: id, Status: inReview}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProjectRepository)
			tt.setupMock(repo)
			svc := NewProjectService(repo, validation.New())

			project, updated, err := svc.Update(context.Background(), tt.id, tt.patch)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantField != "":
				var invalid *apperrors.InvalidEntityDataError
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, tt.wantField, invalid.Field)
			default:
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantUpdated, updated)
			if !tt.wantUpdated {
				assert.Nil(t, project)
			}
			if len(repo.ExpectedCalls) == 0 {
				repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestProjectService_AttachDeliverable(t *testing.T) {
	id := bson.NewObjectID()
	repo := new(MockProjectRepository)
	repo.On("AddDeliverable", mock.Anything, id, "b.pdf").Return(&model.Project{ID: id, Deliverables: []string{"a.pdf", "b.pdf"}}, nil)
	repo.On("AddDeliverable", mock.Anything, mock.Anything, "gone.pdf").Return(nil, apperrors.ErrNotFound)

	svc := NewProjectService(repo, validation.New())
	ctx := context.Background()

	project, err := svc.AttachDeliverable(ctx, id.Hex(), "b.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, project.Deliverables)

	_, err = svc.AttachDeliverable(ctx, bson.NewObjectID().Hex(), "gone.pdf")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AttachDeliverable(ctx, id.Hex(), "")
	var invalid *apperrors.InvalidEntityDataError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "url", invalid.Field)

	_, err = svc.AttachDeliverable(ctx, "bad", "c.pdf")
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)
}

func TestProjectService_GetAndList(t *testing.T) {
	id := bson.NewObjectID()
	repo := new(MockProjectRepository)
	repo.On("FindByID", mock.Anything, id).Return(&model.Project{ID: id, Title: "t"}, nil)
	repo.On("List", mock.Anything, "s1").Return([]model.Project{{ID: id}}, nil)

	svc := NewProjectService(repo, validation.New())
	ctx := context.Background()

	project, err := svc.Get(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "t", project.Title)

	projects, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}
