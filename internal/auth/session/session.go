package session

import (
	"context"
	"time"

	"github.com/mateusmacedo/train-booking/pkg/application"
)

var ErrSessionNotFound = application.NewError(application.KindAuthenticationFailure, "Authentication required")

// Session is server-side authentication state referenced by the client cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Store interface {
	Create(ctx context.Context, userID string) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
