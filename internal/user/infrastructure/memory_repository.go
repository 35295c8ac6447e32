package infrastructure

import (
	"context"
	"sync"

	"github.com/mateusmacedo/train-booking/internal/user/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

type InMemoryUserRepository struct {
	mu      sync.RWMutex
	data    map[string]domain.User
	byEmail map[string]string
	logger  pkgApp.AppLogger
}

func NewInMemoryUserRepository(logger pkgApp.AppLogger) *InMemoryUserRepository {
	return &InMemoryUserRepository{
		data:    make(map[string]domain.User),
		byEmail: make(map[string]string),
		logger:  logger,
	}
}

func (r *InMemoryUserRepository) Save(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return domain.ErrEmailTaken
	}
	r.data[user.ID] = user
	r.byEmail[user.Email] = user.ID
	pkgApp.LogDebug(ctx, r.logger, "user saved", map[string]interface{}{"user_id": user.ID})
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.data[id]
	if !exists {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[email]
	if !exists {
		return domain.User{}, domain.ErrUserNotFound
	}
	return r.data[id], nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.data[user.ID]
	if !exists {
		return domain.ErrUserNotFound
	}
	if owner, taken := r.byEmail[user.Email]; taken && owner != user.ID {
		return domain.ErrEmailTaken
	}
	delete(r.byEmail, current.Email)
	r.byEmail[user.Email] = user.ID
	r.data[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.data[id]
	if !exists {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, user.Email)
	delete(r.data, id)
	return nil
}
