package infrastructure

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mateusmacedo/train-booking/internal/booking/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

type InMemoryBookingRepository struct {
	mu     sync.RWMutex
	data   map[string]domain.Booking
	logger pkgApp.AppLogger
}

func NewInMemoryBookingRepository(logger pkgApp.AppLogger) *InMemoryBookingRepository {
	return &InMemoryBookingRepository{
		data:   make(map[string]domain.Booking),
		logger: logger,
	}
}

func (r *InMemoryBookingRepository) Save(ctx context.Context, booking domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[booking.ID] = booking
	pkgApp.LogDebug(ctx, r.logger, "booking saved", map[string]interface{}{"booking_id": booking.ID})
	return nil
}

func (r *InMemoryBookingRepository) FindByID(ctx context.Context, id string) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, exists := r.data[id]
	if !exists {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return booking, nil
}

func (r *InMemoryBookingRepository) Find(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]domain.Booking, 0)
	for _, booking := range r.data {
		if filter.Matches(booking) {
			bookings = append(bookings, booking)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.Before(bookings[j].CreatedAt) })
	return bookings, nil
}

func (r *InMemoryBookingRepository) Update(ctx context.Context, booking domain.Booking, expected time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkVersion(booking.ID, expected); err != nil {
		return err
	}
	r.data[booking.ID] = booking
	return nil
}

func (r *InMemoryBookingRepository) Delete(ctx context.Context, id string, expected time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkVersion(id, expected); err != nil {
		return err
	}
	delete(r.data, id)
	return nil
}

// checkVersion must be called with the lock held.
func (r *InMemoryBookingRepository) checkVersion(id string, expected time.Time) error {
	stored, exists := r.data[id]
	if !exists {
		return domain.ErrBookingNotFound
	}
	if !stored.UpdatedAt.Equal(expected) {
		return domain.ErrBookingModified
	}
	return nil
}
