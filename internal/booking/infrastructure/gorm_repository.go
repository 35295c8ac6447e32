package infrastructure

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mateusmacedo/train-booking/internal/booking/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

type gormBookingRepository struct {
	db     *gorm.DB
	logger pkgApp.AppLogger
}

func NewGormBookingRepository(db *gorm.DB, logger pkgApp.AppLogger) domain.BookingRepository {
	return &gormBookingRepository{db: db, logger: logger}
}

func (r *gormBookingRepository) Save(ctx context.Context, booking domain.Booking) error {
	if err := r.db.WithContext(ctx).Create(&booking).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to save booking", err, map[string]interface{}{"booking_id": booking.ID})
		return err
	}
	return nil
}

func (r *gormBookingRepository) FindByID(ctx context.Context, id string) (domain.Booking, error) {
	var booking domain.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return booking, err
}

func (r *gormBookingRepository) Find(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := r.db.WithContext(ctx).Order("created_at")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.TrainID != "" {
		query = query.Where("train_id = ?", filter.TrainID)
	}

	bookings := make([]domain.Booking, 0)
	if err := query.Find(&bookings).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to find bookings", err, nil)
		return nil, err
	}
	return bookings, nil
}

// Update is a conditional write on updated_at, so two requests that read the
// same version cannot both apply their seat changes.
func (r *gormBookingRepository) Update(ctx context.Context, booking domain.Booking, expected time.Time) error {
	result := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND updated_at = ?", booking.ID, expected).
		Updates(map[string]interface{}{
			"seats_booked": booking.SeatsBooked,
			"booking_date": booking.BookingDate,
			"updated_at":   booking.UpdatedAt,
		})
	if result.Error != nil {
		pkgApp.LogError(ctx, r.logger, "failed to update booking", result.Error, map[string]interface{}{"booking_id": booking.ID})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrModified(ctx, booking.ID)
	}
	return nil
}

func (r *gormBookingRepository) Delete(ctx context.Context, id string, expected time.Time) error {
	result := r.db.WithContext(ctx).Delete(&domain.Booking{}, "id = ? AND updated_at = ?", id, expected)
	if result.Error != nil {
		pkgApp.LogError(ctx, r.logger, "failed to delete booking", result.Error, map[string]interface{}{"booking_id": id})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrModified(ctx, id)
	}
	return nil
}

func (r *gormBookingRepository) missingOrModified(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrBookingNotFound
	}
	return domain.ErrBookingModified
}
