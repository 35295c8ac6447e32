package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/mateusmacedo/train-booking/internal/route/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

type InMemoryRouteRepository struct {
	mu     sync.RWMutex
	data   map[string]domain.Route
	logger pkgApp.AppLogger
}

func NewInMemoryRouteRepository(logger pkgApp.AppLogger) *InMemoryRouteRepository {
	return &InMemoryRouteRepository{
		data:   make(map[string]domain.Route),
		logger: logger,
	}
}

func (r *InMemoryRouteRepository) Save(ctx context.Context, route domain.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[route.ID] = route
	pkgApp.LogDebug(ctx, r.logger, "route saved", map[string]interface{}{"route_id": route.ID})
	return nil
}

func (r *InMemoryRouteRepository) FindByID(ctx context.Context, id string) (domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, exists := r.data[id]
	if !exists {
		return domain.Route{}, domain.ErrRouteNotFound
	}
	return route, nil
}

func (r *InMemoryRouteRepository) FindAll(ctx context.Context) ([]domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]domain.Route, 0, len(r.data))
	for _, route := range r.data {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].CreatedAt.Before(routes[j].CreatedAt) })
	return routes, nil
}

func (r *InMemoryRouteRepository) Update(ctx context.Context, route domain.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[route.ID]; !exists {
		return domain.ErrRouteNotFound
	}
	r.data[route.ID] = route
	return nil
}

func (r *InMemoryRouteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return domain.ErrRouteNotFound
	}
	delete(r.data, id)
	return nil
}
