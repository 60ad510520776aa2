// Package auth implements login and self-registration.
package auth

import (
	"bankcards/internal/errs"
	"bankcards/internal/models"
	"bankcards/internal/observability"
	"bankcards/internal/repositories"
	"bankcards/internal/services/user"
	"bankcards/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthResponse is the session artifact returned to a logged in subject.
type AuthResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"tokenType"`
	ID        uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Role      models.UserRole `json:"role"`
}

// RegisterInput carries the self-registration fields.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Service authenticates subjects and registers new users.
type Service interface {
	Login(username, password string) (*AuthResponse, error)
	Register(input RegisterInput) (*AuthResponse, error)
}

type service struct {
	users   repositories.UserRepository
	userSvc user.Service
	log     *zap.Logger
}

// NewService creates an auth service.
func NewService(users repositories.UserRepository, userSvc user.Service, log *zap.Logger) Service {
	return &service{users: users, userSvc: userSvc, log: log}
}

// Login verifies credentials and issues a bearer token. Unknown user,
// wrong password and deactivated account all surface as the same generic
// message so accounts cannot be enumerated.
func (s *service) Login(username, password string) (*AuthResponse, error) {
	u, err := s.users.GetByUsername(username)
	if err != nil {
		observability.LoginsTotal.WithLabelValues("failed").Inc()
		return nil, errs.Unauthorized("Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		observability.LoginsTotal.WithLabelValues("failed").Inc()
		return nil, errs.Unauthorized("Invalid username or password")
	}
	if !u.IsActive {
		observability.LoginsTotal.WithLabelValues("failed").Inc()
		return nil, errs.Unauthorized("Invalid username or password")
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
	if err != nil {
		s.log.Error("token generation failed", zap.Error(err))
		return nil, errs.Internal("Failed to generate token")
	}

	observability.LoginsTotal.WithLabelValues("ok").Inc()
	return &AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}, nil
}

// Register creates a USER account and logs it in.
func (s *service) Register(input RegisterInput) (*AuthResponse, error) {
	_, err := s.userSvc.Create(user.CreateUserInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      models.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("new user registered", zap.String("username", input.Username))
	return s.Login(input.Username, input.Password)
}
