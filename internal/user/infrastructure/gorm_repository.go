package infrastructure

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mateusmacedo/train-booking/internal/user/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger pkgApp.AppLogger
}

// NewGormUserRepository expects db to be opened with TranslateError so unique
// violations surface as gorm.ErrDuplicatedKey.
func NewGormUserRepository(db *gorm.DB, logger pkgApp.AppLogger) domain.UserRepository {
	return &gormUserRepository{db: db, logger: logger}
}

func (r *gormUserRepository) Save(ctx context.Context, user domain.User) error {
	err := r.db.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to save user", err, map[string]interface{}{"user_id": user.ID})
		return err
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormUserRepository) first(ctx context.Context, query string, arg interface{}) (domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, err
}

func (r *gormUserRepository) Update(ctx context.Context, user domain.User) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.Password,
		"updated_at": user.UpdatedAt,
	})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	if result.Error != nil {
		pkgApp.LogError(ctx, r.logger, "failed to update user", result.Error, map[string]interface{}{"user_id": user.ID})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *gormUserRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if result.Error != nil {
		pkgApp.LogError(ctx, r.logger, "failed to delete user", result.Error, map[string]interface{}{"user_id": id})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
