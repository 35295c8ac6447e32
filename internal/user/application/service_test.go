package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mateusmacedo/train-booking/internal/user/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	zapAdapter "github.com/mateusmacedo/train-booking/pkg/infrastructure/zaplogger/adapter"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Save(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

const userID = "7d7c7d1e-8a8e-4c6b-9d25-5c1f0a3b2e11"

func newService(repo domain.UserRepository) *UserService {
	service := NewUserService(repo, func() string { return userID }, zapAdapter.NewZapAppLoggerFrom(zap.NewNop()))
	service.hashCost = bcrypt.MinCost
	return service
}

func ptr(s string) *string { return &s }

func TestCreateHashesPassword(t *testing.T) {
	repo := new(mockUserRepository)
	var saved domain.User
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil)

	user, err := newService(repo).Create(context.Background(), UserData{
		Name:     ptr("John Doe"),
		Email:    ptr("John@Example.com"),
		Password: ptr("Password123"),
	})

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "john@example.com", saved.Email)
	assert.NotEqual(t, "Password123", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("Password123")))
	repo.AssertExpectations(t)
}

func TestCreateReportsPasswordRulesInOrder(t *testing.T) {
	repo := new(mockUserRepository)

	_, err := newService(repo).Create(context.Background(), UserData{
		Name:     ptr("John Doe"),
		Email:    ptr("john@example.com"),
		Password: ptr("pass"),
	})

	var appErr *pkgApp.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []pkgApp.FieldError{
		{Msg: "Password must be at least 8 characters long", Path: "password"},
		{Msg: "Password must contain at least one number", Path: "password"},
		{Msg: "Password must contain at least one uppercase letter", Path: "password"},
	}, appErr.Fields)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateRejectsInvalidEmail(t *testing.T) {
	_, err := newService(new(mockUserRepository)).Create(context.Background(), UserData{
		Name:     ptr("John Doe"),
		Email:    ptr("invalid-email"),
		Password: ptr("Password123"),
	})

	var appErr *pkgApp.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []pkgApp.FieldError{{Msg: "Please provide a valid email address", Path: "email"}}, appErr.Fields)
}

func TestCreateRequiresName(t *testing.T) {
	_, err := newService(new(mockUserRepository)).Create(context.Background(), UserData{
		Email:    ptr("john@example.com"),
		Password: ptr("Password123"),
	})

	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := domain.User{ID: userID, Email: "john@example.com", Password: string(hash)}

	repo := new(mockUserRepository)
	repo.On("FindByEmail", mock.Anything, "john@example.com").Return(stored, nil)
	repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(domain.User{}, domain.ErrUserNotFound)
	service := newService(repo)

	user, err := service.Authenticate(context.Background(), "john@example.com", "Password123")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	_, err = service.Authenticate(context.Background(), "john@example.com", "WrongPassword1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Authenticate(context.Background(), "nobody@example.com", "Password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGetChecksIDAndOwnership(t *testing.T) {
	service := newService(new(mockUserRepository))

	_, err := service.Get(context.Background(), userID, "invalid-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = service.Get(context.Background(), userID, "1b0f3f7e-2f57-4d4e-8d8a-6b0c2c9f4a10")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
