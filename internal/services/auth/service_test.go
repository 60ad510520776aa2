package auth

import (
	"testing"

	"bankcards/internal/errs"
	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/services/user"
	"bankcards/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(u *models.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(u *models.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) List(filter repositories.UserFilter, page, size int) ([]models.User, int64, error) {
	args := m.Called(filter, page, size)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CardsCountByUsers(ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

// stubUserService records the Create call; the other operations are
// never reached from the auth service.
type stubUserService struct {
	created *user.CreateUserInput
	err     error
}

func (s *stubUserService) Create(input user.CreateUserInput) (*models.User, error) {
	s.created = &input
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: uuid.New(), Username: input.Username, Role: input.Role}, nil
}

func (s *stubUserService) GetByID(uuid.UUID) (*models.User, int64, error) { panic("not used") }
func (s *stubUserService) Update(uuid.UUID, user.UpdateUserInput) (*models.User, error) {
	panic("not used")
}
func (s *stubUserService) Delete(uuid.UUID) error                     { panic("not used") }
func (s *stubUserService) Activate(uuid.UUID) (*models.User, error)   { panic("not used") }
func (s *stubUserService) Deactivate(uuid.UUID) (*models.User, error) { panic("not used") }
func (s *stubUserService) List(repositories.UserFilter, int, int) ([]models.User, map[uuid.UUID]int64, int64, error) {
	panic("not used")
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func activeUser(t *testing.T, password string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Username:     "ivan",
		Email:        "ivan@example.com",
		PasswordHash: hashPassword(t, password),
		FirstName:    "Ivan",
		LastName:     "Petrov",
		Role:         models.RoleUser,
		IsActive:     true,
	}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("issues a bearer token for valid credentials", func(t *testing.T) {
		u := activeUser(t, "correct-password")
		repo := new(MockUserRepository)
		repo.On("GetByUsername", "ivan").Return(u, nil)

		svc := NewService(repo, &stubUserService{}, zap.NewNop())
		resp, err := svc.Login("ivan", "correct-password")

		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, u.ID, resp.ID)
		assert.Equal(t, models.RoleUser, resp.Role)

		claims, err := utils.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, "ivan", claims.Username)
	})

	// Unknown user, wrong password and deactivated account must be
	// indistinguishable to the caller.
	t.Run("failures collapse to one generic message", func(t *testing.T) {
		tests := []struct {
			name     string
			setup    func(*MockUserRepository)
			password string
		}{
			{
				name: "unknown username",
				setup: func(repo *MockUserRepository) {
					repo.On("GetByUsername", "ivan").Return(nil, repositories.ErrUserNotFound)
				},
				password: "correct-password",
			},
			{
				name: "wrong password",
				setup: func(repo *MockUserRepository) {
					repo.On("GetByUsername", "ivan").Return(activeUser(t, "correct-password"), nil)
				},
				password: "wrong-password",
			},
			{
				name: "deactivated account",
				setup: func(repo *MockUserRepository) {
					u := activeUser(t, "correct-password")
					u.IsActive = false
					repo.On("GetByUsername", "ivan").Return(u, nil)
				},
				password: "correct-password",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := new(MockUserRepository)
				tt.setup(repo)

				svc := NewService(repo, &stubUserService{}, zap.NewNop())
				_, err := svc.Login("ivan", tt.password)

				require.Error(t, err)
				assert.Equal(t, "Invalid username or password", errs.MessageOf(err))
				assert.Equal(t, 401, errs.StatusOf(err))
			})
		}
	})
}

func TestRegister(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("registers with the USER role and logs in", func(t *testing.T) {
		repo := new(MockUserRepository)
		stub := &stubUserService{}
		svc := NewService(repo, stub, zap.NewNop())

		u := activeUser(t, "secret-password")
		u.Username = "newuser"
		repo.On("GetByUsername", "newuser").Return(u, nil)

		resp, err := svc.Register(RegisterInput{
			Username:  "newuser",
			Email:     "new@example.com",
			Password:  "secret-password",
			FirstName: "New",
			LastName:  "User",
		})

		require.NoError(t, err)
		require.NotNil(t, stub.created)
		assert.Equal(t, models.RoleUser, stub.created.Role)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("propagates uniqueness failures", func(t *testing.T) {
		stub := &stubUserService{err: errs.AlreadyTaken("Username is already taken")}
		svc := NewService(new(MockUserRepository), stub, zap.NewNop())

		_, err := svc.Register(RegisterInput{Username: "taken"})
		require.Error(t, err)
		assert.Equal(t, 409, errs.StatusOf(err))
	})
}
