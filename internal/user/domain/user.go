package domain

import (
	"context"
	"time"

	"github.com/mateusmacedo/train-booking/pkg/application"
)

var (
	ErrUserNotFound       = application.NewError(application.KindNotFound, "User not found")
	ErrEmailTaken         = application.NewError(application.KindConflict, "Email already in use")
	ErrInvalidID          = application.NewError(application.KindInvalidFormat, "Invalid ID format")
	ErrInvalidCredentials = application.NewError(application.KindAuthenticationFailure, "Invalid email or password")
	ErrForbidden          = application.NewError(application.KindForbidden, "Forbidden")
)

type User struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserRepository interface {
	Save(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id string) error
}
