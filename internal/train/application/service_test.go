package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mateusmacedo/train-booking/internal/train/application"
	"github.com/mateusmacedo/train-booking/internal/train/domain"
	"github.com/mateusmacedo/train-booking/internal/train/infrastructure"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/train-booking/pkg/infrastructure/zaplogger/adapter"
)

var serviceDay = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

// racingRepository books seats between the service's read and its write,
// the window a concurrent booking request can land in.
type racingRepository struct {
	*infrastructure.InMemoryTrainRepository
	seats int
}

func (r *racingRepository) FindByID(ctx context.Context, id string) (domain.Train, error) {
	train, err := r.InMemoryTrainRepository.FindByID(ctx, id)
	if err != nil || r.seats == 0 {
		return train, err
	}
	if err := r.InMemoryTrainRepository.ReserveSeats(ctx, id, serviceDay, r.seats); err != nil {
		return domain.Train{}, err
	}
	r.seats = 0
	return train, nil
}

func newServiceFixture(t *testing.T) (*application.TrainService, *racingRepository, domain.Train) {
	t.Helper()
	logger := zapAdapter.NewZapAppLoggerFrom(zap.NewNop())
	repo := &racingRepository{InMemoryTrainRepository: infrastructure.NewInMemoryTrainRepository(logger)}
	service := application.NewTrainService(repo, pkgInfra.GenerateUUID, logger)

	name, route := "Express", uuid.NewString()
	train, err := service.Create(context.Background(), application.TrainData{
		Name:  &name,
		Route: &route,
		AvailableDates: &[]application.AvailabilityData{
			{Date: &serviceDay, AvailableSeats: 10},
		},
	})
	require.NoError(t, err)
	return service, repo, train
}

func TestUpdateKeepsSeatsBookedDuringRename(t *testing.T) {
	service, repo, train := newServiceFixture(t)
	repo.seats = 5

	name := "Night Express"
	updated, err := service.Update(context.Background(), train.ID, application.TrainData{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Night Express", updated.Name)

	stored, err := repo.InMemoryTrainRepository.FindByID(context.Background(), train.ID)
	require.NoError(t, err)
	record, ok := stored.AvailabilityOn(serviceDay)
	require.True(t, ok)
	assert.Equal(t, 5, record.SeatsBooked)
	assert.Equal(t, "Night Express", stored.Name)
}

func TestUpdateScheduleMergesWithBookedSeats(t *testing.T) {
	service, repo, train := newServiceFixture(t)
	repo.seats = 4
	nextDay := serviceDay.AddDate(0, 0, 1)

	updated, err := service.Update(context.Background(), train.ID, application.TrainData{
		AvailableDates: &[]application.AvailabilityData{
			{Date: &serviceDay, AvailableSeats: 12},
			{Date: &nextDay, AvailableSeats: 8},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.AvailableDates, 2)
	assert.Equal(t, 12, updated.AvailableDates[0].AvailableSeats)
	assert.Equal(t, 4, updated.AvailableDates[0].SeatsBooked)
	assert.Equal(t, 8, updated.AvailableDates[1].AvailableSeats)
}

func TestUpdateScheduleRejectsShrinkingBelowBookings(t *testing.T) {
	service, repo, train := newServiceFixture(t)
	require.NoError(t, repo.ReserveSeats(context.Background(), train.ID, serviceDay, 6))
	nextDay := serviceDay.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		dates []application.AvailabilityData
		err   error
	}{
		{"capacity below booked", []application.AvailabilityData{{Date: &serviceDay, AvailableSeats: 5}}, domain.ErrCapacityBelowBooked},
		{"booked day removed", []application.AvailabilityData{{Date: &nextDay, AvailableSeats: 10}}, domain.ErrBookedDateRemoved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := tt.dates
			_, err := service.Update(context.Background(), train.ID, application.TrainData{AvailableDates: &dates})
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, pkgApp.KindConflict, pkgApp.KindOf(err))

			stored, err := repo.FindByID(context.Background(), train.ID)
			require.NoError(t, err)
			record, ok := stored.AvailabilityOn(serviceDay)
			require.True(t, ok)
			assert.Equal(t, 10, record.AvailableSeats)
			assert.Equal(t, 6, record.SeatsBooked)
		})
	}
}
