package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "studentportal/internal/errors"
	"studentportal/internal/model"
	"studentportal/internal/validation"
)

func TestPaymentService_Create(t *testing.T) {
	amount := 2500.0
	repo := new(MockPaymentRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
		return !p.Verified && p.Amount == amount && p.ProjectID == nil
	})).Return(nil)

	svc := NewPaymentService(repo, validation.New())
	payment, err := svc.Create(context.Background(), model.PaymentInput{StudentID: "s1", Amount: &amount, TransactionID: strPtr("UPI-42")})

	require.NoError(t, err)
	assert.Equal(t, "UPI-42", *payment.TransactionID)
	repo.AssertExpectations(t)
}

func TestPaymentService_CreateNegativeAmount(t *testing.T) {
	amount := -10.0
	repo := new(MockPaymentRepository)
	svc := NewPaymentService(repo, validation.New())

	_, err := svc.Create(context.Background(), model.PaymentInput{StudentID: "s1", Amount: &amount})

	var invalid *apperrors.InvalidEntityDataError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "amount", invalid.Field)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_Update(t *testing.T) {
	id := bson.NewObjectID()
	verified := true
	date := time.Date(2024, 4, 10, 8, 0, 0, 0, time.UTC)

	repo := new(MockPaymentRepository)
	repo.On("UpdateFields", mock.Anything, id, bson.D{
		{Key: "verified", Value: true},
		{Key: "verifiedDate", Value: date},
	}).Return(&model.Payment{ID: id, Verified: true, VerifiedDate: &date}, nil)

	svc := NewPaymentService(repo, validation.New())
	ctx := context.Background()

	payment, updated, err := svc.Update(ctx, id.Hex(), model.PaymentPatch{Verified: &verified, VerifiedDate: &date})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.True(t, payment.Verified)

	payment, updated, err = svc.Update(ctx, id.Hex(), model.PaymentPatch{})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Nil(t, payment)

	_, _, err = svc.Update(ctx, "123", model.PaymentPatch{Verified: &verified})
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)

	repo.AssertNumberOfCalls(t, "UpdateFields", 1)
}

func TestPaymentService_UpdateNotFound(t *testing.T) {
	id := bson.NewObjectID()
	by := "admin"
	repo := new(MockPaymentRepository)
	repo.On("UpdateFields", mock.Anything, id, mock.Anything).Return(nil, apperrors.ErrNotFound)

	svc := NewPaymentService(repo, validation.New())
	_, _, err := svc.Update(context.Background(), id.Hex(), model.PaymentPatch{VerifiedBy: &by})

	var notFound *apperrors.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "payment", notFound.Entity)
}

func TestPaymentService_List(t *testing.T) {
	repo := new(MockPaymentRepository)
	repo.On("List", mock.Anything, "").Return([]model.Payment{{StudentID: "a"}, {StudentID: "b"}}, nil)

	svc := NewPaymentService(repo, validation.New())
	payments, err := svc.List(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, payments, 2)
}
