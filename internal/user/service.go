package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	ListUsers(ctx context.Context) ([]User, error)
	FindByLogin(ctx context.Context, login string) ([]User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	Exists(ctx context.Context, login string) (bool, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
	UpdateUser(ctx context.Context, user *User) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users in repository")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// FindByLogin returns the users whose login exactly equals the argument.
// An empty result is a valid outcome, not an error.
func (s *service) FindByLogin(ctx context.Context, login string) ([]User, error) {
	users, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		log.Error().Err(err).Str("login", login).Msg("Failed to find users by login in repository")
		return nil, fmt.Errorf("failed to find users by login %q: %w", login, err)
	}

	return users, nil
}

func (s *service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		log.Error().Err(err).Int64("user_id", id).Msg("Failed to get user by id in repository")
		return nil, fmt.Errorf("failed to get user by id %d: %w", id, err)
	}

	return u, nil
}

func (s *service) Exists(ctx context.Context, login string) (bool, error) {
	users, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		log.Error().Err(err).Str("login", login).Msg("Failed to check login existence in repository")
		return false, fmt.Errorf("failed to check login %q: %w", login, err)
	}

	return len(users) > 0, nil
}

// CreateUser inserts a new record. Login carries a unique index in storage;
// the pre-check is advisory only.
func (s *service) CreateUser(ctx context.Context, user *User) (*User, error) {
	taken, err := s.Exists(ctx, user.Login)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrLoginExists
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrLoginExists) {
			return nil, ErrLoginExists
		}

		log.Error().Err(err).Str("login", user.Login).Msg("Failed to create user in repository")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// UpdateUser replaces all mutable fields of the record identified by user.ID.
// When the id is unknown no write happens and ErrNotFound is returned.
func (s *service) UpdateUser(ctx context.Context, user *User) (*User, error) {
	existing, err := s.repo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to load user before update")
		return nil, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}

	existing.Login = user.Login
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.DateOfBirth = user.DateOfBirth
	existing.IsActive = user.IsActive

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrLoginExists) {
			return nil, err
		}

		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to update user in repository")
		return nil, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}

	return updated, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}

		log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user in repository")
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	return nil
}
