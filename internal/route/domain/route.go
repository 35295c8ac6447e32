package domain

import (
	"context"
	"time"

	"github.com/mateusmacedo/train-booking/pkg/application"
)

var ErrRouteNotFound = application.NewError(application.KindNotFound, "Route not found")

// Route is a station pair served by trains.
type Route struct {
	ID           string    `json:"_id" gorm:"primaryKey;type:uuid"`
	StartStation string    `json:"startStation" gorm:"not null"`
	EndStation   string    `json:"endStation" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RouteRepository interface {
	Save(ctx context.Context, route Route) error
	FindByID(ctx context.Context, id string) (Route, error)
	FindAll(ctx context.Context) ([]Route, error)
	Update(ctx context.Context, route Route) error
	Delete(ctx context.Context, id string) error
}
