package auth

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/auth/infrastructure"
	"github.com/mateusmacedo/train-booking/internal/auth/session"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

type AuthSlice struct {
	httpHandler *infrastructure.AuthHTTPHandler
}

func NewAuthSlice(users infrastructure.Authenticator, sessions *session.Manager, logger pkgApp.AppLogger) *AuthSlice {
	return &AuthSlice{httpHandler: infrastructure.NewAuthHTTPHandler(users, sessions, logger)}
}

func (s *AuthSlice) RegisterRoutes(router chi.Router) {
	s.httpHandler.RegisterRoutes(router)
}
