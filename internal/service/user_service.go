package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"studentportal/internal/cache"
	apperrors "studentportal/internal/errors"
	"studentportal/internal/ids"
	"studentportal/internal/model"
	"studentportal/internal/repository"
	"studentportal/internal/validation"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user operations. Register and Login are find-or-create
// keyed by email and perform no credential checks.
type UserService interface {
	Register(ctx context.Context, name, email string) (*model.User, error)
	Login(ctx context.Context, email string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, role string) ([]model.User, error)
	ProvisionAdmin(ctx context.Context, name, email string) (*model.User, bool, error)
}

type userService struct {
	repo      repository.UserRepository
	cache     *cache.Client
	validator *validation.Validator
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client, v *validation.Validator) UserService {
	return &userService{repo: repo, cache: cache, validator: v}
}

func (s *userService) cacheKey(id string) string {
	return "user:" + id
}

// Register returns the existing user for email unchanged, or creates a student
// named name. The lookup and insert are not atomic; see findOrCreate.
func (s *userService) Register(ctx context.Context, name, email string) (*model.User, error) {
	user, err := s.validator.User(model.UserInput{Name: name, Email: email})
	if err != nil {
		return nil, err
	}
	user.Role = model.RoleStudent
	return s.findOrCreate(ctx, user)
}

// Login returns the user for email, provisioning a student whose name is
// derived from the email's local part when none exists.
func (s *userService) Login(ctx context.Context, email string) (*model.User, error) {
	in := model.LoginInput{Email: email}
	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}
	email = validation.NormalizeEmail(email)

	return s.findOrCreate(ctx, &model.User{
		Name:  NameFromEmail(email),
		Email: email,
		Role:  model.RoleStudent,
	})
}

// findOrCreate looks the user up by email and inserts candidate only when no
// match exists. Two concurrent calls for an unseen email can both insert; with
// a unique email index the loser gets ErrDuplicate and re-reads the winner.
func (s *userService) findOrCreate(ctx context.Context, candidate *model.User) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, candidate.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	if err := s.repo.Create(ctx, candidate); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("create user: %w", err)
		}
		winner, findErr := s.repo.FindByEmail(ctx, candidate.Email)
		if findErr != nil {
			return nil, fmt.Errorf("find user after duplicate: %w", findErr)
		}
		if winner == nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return winner, nil
	}
	return candidate, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	oid, err := ids.Decode(id)
	if err != nil {
		return nil, err
	}

	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, role string) ([]model.User, error) {
	users, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ProvisionAdmin makes the user for email an admin, creating it when missing.
// The returned bool reports whether a new user was created. An empty name is
// derived from the email.
func (s *userService) ProvisionAdmin(ctx context.Context, name, email string) (*model.User, bool, error) {
	email = validation.NormalizeEmail(email)
	if strings.TrimSpace(name) == "" {
		name = NameFromEmail(email)
	}
	candidate, err := s.validator.User(model.UserInput{Name: name, Email: email, Role: model.RoleAdmin})
	if err != nil {
		return nil, false, err
	}

	existing, err := s.findOrCreate(ctx, candidate)
	if err != nil {
		return nil, false, err
	}
	if existing == candidate {
		return existing, true, nil
	}
	if existing.Role == model.RoleAdmin {
		return existing, false, nil
	}

	updated, err := s.repo.SetRole(ctx, existing.ID, model.RoleAdmin)
	if err != nil {
		return nil, false, fmt.Errorf("promote user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(ids.Encode(existing.ID)))
	return updated, false, nil
}

// NameFromEmail title-cases the local part of email: the first letter of each
// whitespace-separated token is upper-cased and the rest lower-cased.
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")

	tokens := strings.Fields(local)
	for i, tok := range tokens {
		runes := []rune(strings.ToLower(tok))
		runes[0] = unicode.ToUpper(runes[0])
		tokens[i] = string(runes)
	}
	return strings.Join(tokens, " ")
}
