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

// PaymentService handles payment submissions and admin verification.
type PaymentService interface {
	Create(ctx context.Context, in model.PaymentInput) (*model.Payment, error)
	List(ctx context.Context, studentID string) ([]model.Payment, error)
	// Update applies patch and reports false when it carries no fields.
	Update(ctx context.Context, id string, patch model.PaymentPatch) (*model.Payment, bool, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	validator *validation.Validator
}

// NewPaymentService creates a new payment service.
func NewPaymentService(repo repository.PaymentRepository, v *validation.Validator) PaymentService {
	return &paymentService{repo: repo, validator: v}
}

// Create records an unverified payment. studentId and projectId are stored as given.
func (s *paymentService) Create(ctx context.Context, in model.PaymentInput) (*model.Payment, error) {
	payment, err := s.validator.Payment(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) List(ctx context.Context, studentID string) ([]model.Payment, error) {
	payments, err := s.repo.List(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) Update(ctx context.Context, id string, patch model.PaymentPatch) (*model.Payment, bool, error) {
	oid, err := ids.Decode(id)
	if err != nil {
		return nil, false, err
	}
	if err := s.validator.PaymentPatch(patch); err != nil {
		return nil, false, err
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, false, nil
	}

	payment, err := s.repo.UpdateFields(ctx, oid, fields)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, apperrors.NotFound("payment")
		}
		return nil, false, fmt.Errorf("update payment: %w", err)
	}
	return payment, true, nil
}
