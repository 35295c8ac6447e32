package infrastructure

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mateusmacedo/train-booking/internal/route/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

type gormRouteRepository struct {
	db     *gorm.DB
	logger pkgApp.AppLogger
}

func NewGormRouteRepository(db *gorm.DB, logger pkgApp.AppLogger) domain.RouteRepository {
	return &gormRouteRepository{db: db, logger: logger}
}

func (r *gormRouteRepository) Save(ctx context.Context, route domain.Route) error {
	if err := r.db.WithContext(ctx).Create(&route).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to save route", err, map[string]interface{}{"route_id": route.ID})
		return err
	}
	return nil
}

func (r *gormRouteRepository) FindByID(ctx context.Context, id string) (domain.Route, error) {
	var route domain.Route
	err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Route{}, domain.ErrRouteNotFound
	}
	return route, err
}

func (r *gormRouteRepository) FindAll(ctx context.Context) ([]domain.Route, error) {
	var routes []domain.Route
	if err := r.db.WithContext(ctx).Order("created_at").Find(&routes).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to list routes", err, nil)
		return nil, err
	}
	return routes, nil
}

func (r *gormRouteRepository) Update(ctx context.Context, route domain.Route) error {
	result := r.db.WithContext(ctx).Model(&domain.Route{}).Where("id = ?", route.ID).Updates(map[string]interface{}{
		"start_station": route.StartStation,
		"end_station":   route.EndStation,
		"updated_at":    route.UpdatedAt,
	})
	if result.Error != nil {
		pkgApp.LogError(ctx, r.logger, "failed to update route", result.Error, map[string]interface{}{"route_id": route.ID})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRouteNotFound
	}
	return nil
}

func (r *gormRouteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Route{}, "id = ?", id)
	if result.Error != nil {
		pkgApp.LogError(ctx, r.logger, "failed to delete route", result.Error, map[string]interface{}{"route_id": id})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRouteNotFound
	}
	return nil
}
