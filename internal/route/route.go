package route

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/route/application"
	"github.com/mateusmacedo/train-booking/internal/route/domain"
	"github.com/mateusmacedo/train-booking/internal/route/infrastructure"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
)

type RouteSlice struct {
	httpHandler *infrastructure.RouteHTTPHandler
}

func NewRouteSlice(repository domain.RouteRepository, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) *RouteSlice {
	service := application.NewRouteService(repository, idGenerator, logger)
	return &RouteSlice{httpHandler: infrastructure.NewRouteHTTPHandler(service)}
}

func (s *RouteSlice) RegisterRoutes(router chi.Router) {
	s.httpHandler.RegisterRoutes(router)
}
