package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/internship-board/internal/config"
	"github.com/jonathan/internship-board/internal/storage"
	"github.com/jonathan/internship-board/internal/types"
)

// UserStore is the part of the store UserService needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *types.User) (*types.User, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// UserService provides business logic for user registration
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new user with a bcrypt-hashed password
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	existing, err = s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrUsernameTaken{Username: req.Username}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &types.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	switch {
	case errors.Is(err, storage.ErrEmailExists):
		// lost a race with a concurrent registration
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	case errors.Is(err, storage.ErrUsernameExists):
		return nil, &ErrUsernameTaken{Username: req.Username}
	case err != nil:
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
