package application

import (
	"context"
	"strings"
	"time"

	"github.com/mateusmacedo/train-booking/internal/route/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
)

var (
	ErrStartStationRequired = pkgApp.NewError(pkgApp.KindMissingField, "startStation is required")
	ErrEndStationRequired   = pkgApp.NewError(pkgApp.KindMissingField, "endStation is required")
)

// RouteData carries create and update input. Nil fields are left untouched on update.
type RouteData struct {
	StartStation *string `json:"startStation"`
	EndStation   *string `json:"endStation"`
}

type RouteService struct {
	repository  domain.RouteRepository
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
	now         func() time.Time
}

func NewRouteService(repo domain.RouteRepository, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) *RouteService {
	return &RouteService{
		repository:  repo,
		idGenerator: idGenerator,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *RouteService) Create(ctx context.Context, data RouteData) (domain.Route, error) {
	start, end := trimmed(data.StartStation), trimmed(data.EndStation)
	if start == "" {
		return domain.Route{}, ErrStartStationRequired
	}
	if end == "" {
		return domain.Route{}, ErrEndStationRequired
	}

	now := s.now().UTC()
	route := domain.Route{
		ID:           s.idGenerator(),
		StartStation: start,
		EndStation:   end,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repository.Save(ctx, route); err != nil {
		pkgApp.LogError(ctx, s.logger, "failed to create route", err, nil)
		return domain.Route{}, err
	}

	pkgApp.LogInfo(ctx, s.logger, "route created", map[string]interface{}{"route_id": route.ID})
	return route, nil
}

func (s *RouteService) Get(ctx context.Context, id string) (domain.Route, error) {
	if !pkgInfra.IsValidID(id) {
		return domain.Route{}, domain.ErrRouteNotFound
	}
	return s.repository.FindByID(ctx, id)
}

func (s *RouteService) List(ctx context.Context) ([]domain.Route, error) {
	return s.repository.FindAll(ctx)
}

func (s *RouteService) Update(ctx context.Context, id string, data RouteData) (domain.Route, error) {
	route, err := s.Get(ctx, id)
	if err != nil {
		return domain.Route{}, err
	}

	if data.StartStation != nil {
		if route.StartStation = trimmed(data.StartStation); route.StartStation == "" {
			return domain.Route{}, ErrStartStationRequired
		}
	}
	if data.EndStation != nil {
		if route.EndStation = trimmed(data.EndStation); route.EndStation == "" {
			return domain.Route{}, ErrEndStationRequired
		}
	}
	route.UpdatedAt = s.now().UTC()

	if err := s.repository.Update(ctx, route); err != nil {
		pkgApp.LogError(ctx, s.logger, "failed to update route", err, map[string]interface{}{"route_id": id})
		return domain.Route{}, err
	}
	return route, nil
}

func (s *RouteService) Delete(ctx context.Context, id string) error {
	if !pkgInfra.IsValidID(id) {
		return domain.ErrRouteNotFound
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	pkgApp.LogInfo(ctx, s.logger, "route deleted", map[string]interface{}{"route_id": id})
	return nil
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
