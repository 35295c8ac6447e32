package train

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/train/application"
	"github.com/mateusmacedo/train-booking/internal/train/domain"
	"github.com/mateusmacedo/train-booking/internal/train/infrastructure"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
)

type TrainSlice struct {
	httpHandler *infrastructure.TrainHTTPHandler
}

func NewTrainSlice(repository domain.TrainRepository, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) *TrainSlice {
	service := application.NewTrainService(repository, idGenerator, logger)
	return &TrainSlice{httpHandler: infrastructure.NewTrainHTTPHandler(service)}
}

func (s *TrainSlice) RegisterRoutes(router chi.Router) {
	s.httpHandler.RegisterRoutes(router)
}
