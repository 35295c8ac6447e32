package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/auth/session"
	"github.com/mateusmacedo/train-booking/internal/user/application"
	"github.com/mateusmacedo/train-booking/internal/user/domain"
	"github.com/mateusmacedo/train-booking/internal/user/infrastructure"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
)

type UserSlice struct {
	Service     *application.UserService
	httpHandler *infrastructure.UserHTTPHandler
}

func NewUserSlice(repository domain.UserRepository, sessions *session.Manager, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) *UserSlice {
	service := application.NewUserService(repository, idGenerator, logger)
	return &UserSlice{
		Service:     service,
		httpHandler: infrastructure.NewUserHTTPHandler(service, sessions),
	}
}

func (s *UserSlice) RegisterRoutes(router chi.Router) {
	s.httpHandler.RegisterRoutes(router)
}
