package service

import (
	"context"
	"fmt"

	apperrors "studentportal/internal/errors"
	"studentportal/internal/model"
	"studentportal/internal/repository"
	"studentportal/internal/validation"
)

// MessageService handles messages between students and administrators.
type MessageService interface {
	Send(ctx context.Context, in model.MessageInput) (*model.Message, error)
	List(ctx context.Context, userID string) ([]model.Message, error)
}

type messageService struct {
	repo      repository.MessageRepository
	validator *validation.Validator
}

// NewMessageService creates a new message service.
func NewMessageService(repo repository.MessageRepository, v *validation.Validator) MessageService {
	return &messageService{repo: repo, validator: v}
}

func (s *messageService) Send(ctx context.Context, in model.MessageInput) (*model.Message, error) {
	msg, err := s.validator.Message(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}

// List returns the user's conversation, sent and received, newest first.
func (s *messageService) List(ctx context.Context, userID string) ([]model.Message, error) {
	if userID == "" {
		return nil, apperrors.NewInvalidEntityData("userId", "field required")
	}
	msgs, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
