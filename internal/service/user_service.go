package service

import (
	"context"
	"errors"
	"fmt"

	"streetbite/internal/model"
	"streetbite/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService exposes read access to accounts
type UserService interface {
	GetUser(ctx context.Context, userID int64, actor model.Actor) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// GetUser returns the account with userID. Non-admins may only read their own.
func (s *userService) GetUser(ctx context.Context, userID int64, actor model.Actor) (*model.User, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, ErrForbidden
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users from repo: %w", err)
	}
	return users, nil
}
