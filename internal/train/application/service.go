package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mateusmacedo/train-booking/internal/train/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
)

var (
	ErrNameRequired  = pkgApp.NewError(pkgApp.KindMissingField, "name is required")
	ErrRouteRequired = pkgApp.NewError(pkgApp.KindMissingField, "route is required")
	ErrInvalidRoute  = pkgApp.NewError(pkgApp.KindInvalidFormat, "Invalid route ID format")
)

type AvailabilityData struct {
	Date           *time.Time `json:"date"`
	AvailableSeats int        `json:"availableSeats"`
	SeatsBooked    int        `json:"seatsBooked"`
}

// TrainData carries create and update input. Nil fields are left untouched on update.
// On update a non-nil AvailableDates is merged into the stored schedule: existing days
// keep their booked seats, and booked days cannot be dropped or shrunk below bookings.
type TrainData struct {
	Name           *string             `json:"name"`
	Route          *string             `json:"route"`
	DepartureTime  *time.Time          `json:"departureTime"`
	ArrivalTime    *time.Time          `json:"arrivalTime"`
	AvailableSeats *int                `json:"availableSeats"`
	AvailableDates *[]AvailabilityData `json:"availableDates"`
}

type TrainService struct {
	repository  domain.TrainRepository
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
	now         func() time.Time
}

func NewTrainService(repo domain.TrainRepository, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) *TrainService {
	return &TrainService{
		repository:  repo,
		idGenerator: idGenerator,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *TrainService) Create(ctx context.Context, data TrainData) (domain.Train, error) {
	if data.Name == nil {
		return domain.Train{}, ErrNameRequired
	}
	if data.Route == nil {
		return domain.Train{}, ErrRouteRequired
	}

	now := s.now().UTC()
	train := domain.Train{ID: s.idGenerator(), CreatedAt: now, UpdatedAt: now}
	if err := apply(&train, data); err != nil {
		return domain.Train{}, err
	}
	if data.AvailableDates != nil {
		records, err := availabilityRecords(train.ID, *data.AvailableDates)
		if err != nil {
			return domain.Train{}, err
		}
		train.AvailableDates = records
	}

	if err := s.repository.Save(ctx, train); err != nil {
		pkgApp.LogError(ctx, s.logger, "failed to create train", err, nil)
		return domain.Train{}, err
	}

	pkgApp.LogInfo(ctx, s.logger, "train created", map[string]interface{}{
		"train_id": train.ID,
		"dates":    len(train.AvailableDates),
	})
	return train, nil
}

func (s *TrainService) Get(ctx context.Context, id string) (domain.Train, error) {
	if !pkgInfra.IsValidID(id) {
		return domain.Train{}, domain.ErrTrainNotFound
	}
	return s.repository.FindByID(ctx, id)
}

func (s *TrainService) List(ctx context.Context) ([]domain.Train, error) {
	return s.repository.FindAll(ctx)
}

func (s *TrainService) Update(ctx context.Context, id string, data TrainData) (domain.Train, error) {
	train, err := s.Get(ctx, id)
	if err != nil {
		return domain.Train{}, err
	}

	if err := apply(&train, data); err != nil {
		return domain.Train{}, err
	}
	train.UpdatedAt = s.now().UTC()

	var schedule *[]domain.Availability
	if data.AvailableDates != nil {
		records, err := availabilityRecords(train.ID, *data.AvailableDates)
		if err != nil {
			return domain.Train{}, err
		}
		schedule = &records
	}

	updated, err := s.repository.Update(ctx, train, schedule)
	if err != nil {
		pkgApp.LogError(ctx, s.logger, "failed to update train", err, map[string]interface{}{"train_id": id})
		return domain.Train{}, err
	}
	return updated, nil
}

func (s *TrainService) Delete(ctx context.Context, id string) error {
	if !pkgInfra.IsValidID(id) {
		return domain.ErrTrainNotFound
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	pkgApp.LogInfo(ctx, s.logger, "train deleted", map[string]interface{}{"train_id": id})
	return nil
}

func apply(train *domain.Train, data TrainData) error {
	if data.Name != nil {
		if train.Name = strings.TrimSpace(*data.Name); train.Name == "" {
			return ErrNameRequired
		}
	}
	if data.Route != nil {
		if *data.Route == "" {
			return ErrRouteRequired
		}
		if !pkgInfra.IsValidID(*data.Route) {
			return ErrInvalidRoute
		}
		train.RouteID = *data.Route
	}
	if data.DepartureTime != nil {
		train.DepartureTime = data.DepartureTime.UTC()
	}
	if data.ArrivalTime != nil {
		train.ArrivalTime = data.ArrivalTime.UTC()
	}
	if data.AvailableSeats != nil {
		if *data.AvailableSeats < 0 {
			return pkgApp.NewError(pkgApp.KindInvalidFormat, "availableSeats must not be negative")
		}
		train.AvailableSeats = *data.AvailableSeats
	}
	if !train.DepartureTime.IsZero() && !train.ArrivalTime.IsZero() && train.ArrivalTime.Before(train.DepartureTime) {
		return pkgApp.NewError(pkgApp.KindInvalidFormat, "arrivalTime must not be before departureTime")
	}
	return nil
}

func availabilityRecords(trainID string, input []AvailabilityData) ([]domain.Availability, error) {
	records := make([]domain.Availability, 0, len(input))
	seen := make(map[time.Time]bool, len(input))

	for i, item := range input {
		if item.Date == nil {
			return nil, pkgApp.NewError(pkgApp.KindMissingField, fmt.Sprintf("availableDates[%d].date is required", i))
		}
		if item.AvailableSeats < 0 || item.SeatsBooked < 0 || item.SeatsBooked > item.AvailableSeats {
			return nil, pkgApp.NewError(pkgApp.KindInvalidFormat,
				fmt.Sprintf("availableDates[%d] must satisfy 0 <= seatsBooked <= availableSeats", i))
		}

		day := domain.Day(*item.Date)
		if seen[day] {
			return nil, pkgApp.NewError(pkgApp.KindInvalidFormat,
				fmt.Sprintf("availableDates[%d] duplicates %s", i, day.Format(time.DateOnly)))
		}
		seen[day] = true

		records = append(records, domain.Availability{
			TrainID:        trainID,
			Date:           day,
			AvailableSeats: item.AvailableSeats,
			SeatsBooked:    item.SeatsBooked,
		})
	}
	return records, nil
}
