// Package user implements user account lifecycle management.
package user

import (
	"errors"

	"bankcards/internal/errs"
	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	repo   repositories.UserRepository
	hasher PasswordHasher
	log    *zap.Logger
}

// NewService creates a user service.
func NewService(repo repositories.UserRepository, hasher PasswordHasher, log *zap.Logger) Service {
	return &service{repo: repo, hasher: hasher, log: log}
}

func (s *service) GetByID(id uuid.UUID) (*models.User, int64, error) {
	u, err := s.findUser(id)
	if err != nil {
		return nil, 0, err
	}
	counts, err := s.repo.CardsCountByUsers([]uuid.UUID{id})
	if err != nil {
		return nil, 0, err
	}
	return u, counts[id], nil
}

func (s *service) Create(input CreateUserInput) (*models.User, error) {
	if err := validation.ValidateNewUser(input.Username, input.Email, input.Password,
		input.FirstName, input.LastName); err != nil {
		return nil, err
	}

	// Username first, then email; the unique indexes catch races.
	taken, err := s.repo.ExistsByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.AlreadyTaken("Username is already taken")
	}
	taken, err = s.repo.ExistsByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.AlreadyTaken("Email is already taken")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errs.Internal("Failed to hash password")
	}

	u := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(u); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return nil, errs.AlreadyTaken("Username or email is already taken")
		}
		return nil, err
	}

	s.log.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *service) Update(id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	u, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != u.Username {
		if err := validation.ValidateUsername(*input.Username); err != nil {
			return nil, err
		}
		taken, err := s.repo.ExistsByUsername(*input.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.AlreadyTaken("Username is already taken")
		}
		u.Username = *input.Username
	}
	if input.Email != nil && *input.Email != u.Email {
		if err := validation.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
		taken, err := s.repo.ExistsByEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.AlreadyTaken("Email is already taken")
		}
		u.Email = *input.Email
	}
	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.Role != nil {
		u.Role = *input.Role
	}

	if err := s.repo.Update(u); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return nil, errs.AlreadyTaken("Username or email is already taken")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return errs.NotFound("User not found with id: " + id.String())
		}
		return err
	}
	s.log.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *service) Activate(id uuid.UUID) (*models.User, error) {
	return s.toggleActive(id, true)
}

func (s *service) Deactivate(id uuid.UUID) (*models.User, error) {
	return s.toggleActive(id, false)
}

func (s *service) toggleActive(id uuid.UUID, active bool) (*models.User, error) {
	u, err := s.findUser(id)
	if err != nil {
		return nil, err
	}
	u.IsActive = active
	if err := s.repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) List(filter repositories.UserFilter, page, size int) ([]models.User, map[uuid.UUID]int64, int64, error) {
	users, total, err := s.repo.List(filter, page, size)
	if err != nil {
		return nil, nil, 0, err
	}

	ids := make([]uuid.UUID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	counts, err := s.repo.CardsCountByUsers(ids)
	if err != nil {
		return nil, nil, 0, err
	}
	return users, counts, total, nil
}

func (s *service) findUser(id uuid.UUID) (*models.User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errs.NotFound("User not found with id: " + id.String())
		}
		return nil, err
	}
	return u, nil
}
