package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mateusmacedo/train-booking/internal/user/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
)

// UserData carries registration and update input. Nil fields are left untouched on update.
type UserData struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type UserService struct {
	repository  domain.UserRepository
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
	hashCost    int
	now         func() time.Time
}

func NewUserService(repo domain.UserRepository, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) *UserService {
	return &UserService{
		repository:  repo,
		idGenerator: idGenerator,
		logger:      logger,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
	}
}

func (s *UserService) Create(ctx context.Context, data UserData) (domain.User, error) {
	if err := validateRegistration(data); err != nil {
		return domain.User{}, err
	}

	hash, err := s.hash(*data.Password)
	if err != nil {
		pkgApp.LogError(ctx, s.logger, "failed to hash password", err, nil)
		return domain.User{}, err
	}

	now := s.now().UTC()
	user := domain.User{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(*data.Name),
		Email:     normalizeEmail(*data.Email),
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.Save(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrEmailTaken) {
			pkgApp.LogError(ctx, s.logger, "failed to create user", err, nil)
		}
		return domain.User{}, err
	}

	pkgApp.LogInfo(ctx, s.logger, "user created", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// Get returns the user with id on behalf of actorID, who may only read itself.
func (s *UserService) Get(ctx context.Context, actorID, id string) (domain.User, error) {
	if err := authorize(actorID, id); err != nil {
		return domain.User{}, err
	}
	return s.repository.FindByID(ctx, id)
}

// Profile returns the user behind a session without the ownership check.
func (s *UserService) Profile(ctx context.Context, id string) (domain.User, error) {
	if !pkgInfra.IsValidID(id) {
		return domain.User{}, domain.ErrUserNotFound
	}
	return s.repository.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, actorID, id string, data UserData) (domain.User, error) {
	user, err := s.Get(ctx, actorID, id)
	if err != nil {
		return domain.User{}, err
	}
	if err := validateChanges(data); err != nil {
		return domain.User{}, err
	}

	if data.Name != nil {
		user.Name = strings.TrimSpace(*data.Name)
	}
	if data.Email != nil {
		user.Email = normalizeEmail(*data.Email)
	}
	if data.Password != nil {
		if user.Password, err = s.hash(*data.Password); err != nil {
			pkgApp.LogError(ctx, s.logger, "failed to hash password", err, map[string]interface{}{"user_id": id})
			return domain.User{}, err
		}
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.repository.Update(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrEmailTaken) {
			pkgApp.LogError(ctx, s.logger, "failed to update user", err, map[string]interface{}{"user_id": id})
		}
		return domain.User{}, err
	}

	pkgApp.LogInfo(ctx, s.logger, "user updated", map[string]interface{}{"user_id": id})
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if err := authorize(actorID, id); err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	pkgApp.LogInfo(ctx, s.logger, "user deleted", map[string]interface{}{"user_id": id})
	return nil
}

// Authenticate returns the user matching email and password, or ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repository.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		pkgApp.LogInfo(ctx, s.logger, "login rejected", map[string]interface{}{"reason": "unknown email"})
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		pkgApp.LogInfo(ctx, s.logger, "login rejected", map[string]interface{}{"user_id": user.ID, "reason": "password mismatch"})
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func authorize(actorID, id string) error {
	if !pkgInfra.IsValidID(id) {
		return domain.ErrInvalidID
	}
	if actorID != id {
		return domain.ErrForbidden
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
