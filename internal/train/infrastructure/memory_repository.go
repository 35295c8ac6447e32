package infrastructure

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mateusmacedo/train-booking/internal/train/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

// InMemoryTrainRepository serializes seat mutations behind its mutex, so the
// check and the increment in ReserveSeats happen as one step.
type InMemoryTrainRepository struct {
	mu     sync.RWMutex
	data   map[string]domain.Train
	logger pkgApp.AppLogger
}

func NewInMemoryTrainRepository(logger pkgApp.AppLogger) *InMemoryTrainRepository {
	return &InMemoryTrainRepository{
		data:   make(map[string]domain.Train),
		logger: logger,
	}
}

func (r *InMemoryTrainRepository) Save(ctx context.Context, train domain.Train) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[train.ID] = train.Clone()
	pkgApp.LogDebug(ctx, r.logger, "train saved", map[string]interface{}{"train_id": train.ID})
	return nil
}

func (r *InMemoryTrainRepository) FindByID(ctx context.Context, id string) (domain.Train, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	train, exists := r.data[id]
	if !exists {
		return domain.Train{}, domain.ErrTrainNotFound
	}
	return train.Clone(), nil
}

func (r *InMemoryTrainRepository) FindAll(ctx context.Context) ([]domain.Train, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trains := make([]domain.Train, 0, len(r.data))
	for _, train := range r.data {
		trains = append(trains, train.Clone())
	}
	sort.Slice(trains, func(i, j int) bool { return trains[i].CreatedAt.Before(trains[j].CreatedAt) })
	return trains, nil
}

func (r *InMemoryTrainRepository) Update(ctx context.Context, train domain.Train, schedule *[]domain.Availability) (domain.Train, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.data[train.ID]
	if !exists {
		return domain.Train{}, domain.ErrTrainNotFound
	}

	updated := train.Clone()
	updated.CreatedAt = stored.CreatedAt
	updated.AvailableDates = stored.Clone().AvailableDates
	if schedule != nil {
		merged, err := domain.MergeAvailability(stored.AvailableDates, *schedule)
		if err != nil {
			return domain.Train{}, err
		}
		updated.AvailableDates = merged
	}

	r.data[train.ID] = updated
	return updated.Clone(), nil
}

func (r *InMemoryTrainRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return domain.ErrTrainNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *InMemoryTrainRepository) ReserveSeats(ctx context.Context, trainID string, day time.Time, seats int) error {
	return r.mutate(ctx, trainID, func(train *domain.Train) error {
		return train.Reserve(day, seats)
	})
}

func (r *InMemoryTrainRepository) ReleaseSeats(ctx context.Context, trainID string, day time.Time, seats int) error {
	return r.mutate(ctx, trainID, func(train *domain.Train) error {
		return train.Release(day, seats)
	})
}

func (r *InMemoryTrainRepository) mutate(ctx context.Context, trainID string, fn func(train *domain.Train) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.data[trainID]
	if !exists {
		return domain.ErrTrainNotFound
	}

	train := stored.Clone()
	if err := fn(&train); err != nil {
		return err
	}
	r.data[trainID] = train
	return nil
}
