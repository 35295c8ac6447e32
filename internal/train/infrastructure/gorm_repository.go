package infrastructure

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mateusmacedo/train-booking/internal/train/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

type gormTrainRepository struct {
	db     *gorm.DB
	logger pkgApp.AppLogger
}

func NewGormTrainRepository(db *gorm.DB, logger pkgApp.AppLogger) domain.TrainRepository {
	return &gormTrainRepository{db: db, logger: logger}
}

func (r *gormTrainRepository) Save(ctx context.Context, train domain.Train) error {
	if err := r.db.WithContext(ctx).Create(&train).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to save train", err, map[string]interface{}{"train_id": train.ID})
		return err
	}
	return nil
}

func (r *gormTrainRepository) FindByID(ctx context.Context, id string) (domain.Train, error) {
	var train domain.Train
	err := r.withDates(ctx).First(&train, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Train{}, domain.ErrTrainNotFound
	}
	return train, err
}

func (r *gormTrainRepository) FindAll(ctx context.Context) ([]domain.Train, error) {
	var trains []domain.Train
	if err := r.withDates(ctx).Order("created_at").Find(&trains).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to list trains", err, nil)
		return nil, err
	}
	return trains, nil
}

// Update locks the train row and, when a schedule is given, its availability
// rows, so a concurrent ReserveSeats waits and then sees the merged capacity.
func (r *gormTrainRepository) Update(ctx context.Context, train domain.Train, schedule *[]domain.Availability) (domain.Train, error) {
	var updated domain.Train
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Train
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, "id = ?", train.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTrainNotFound
		}
		if err != nil {
			return err
		}

		err = tx.Model(&domain.Train{}).Where("id = ?", train.ID).Updates(map[string]interface{}{
			"name":            train.Name,
			"route_id":        train.RouteID,
			"departure_time":  train.DepartureTime,
			"arrival_time":    train.ArrivalTime,
			"available_seats": train.AvailableSeats,
			"updated_at":      train.UpdatedAt,
		}).Error
		if err != nil {
			return err
		}

		if schedule != nil {
			if err := mergeSchedule(tx, train.ID, *schedule); err != nil {
				return err
			}
		}

		return tx.Preload("AvailableDates", func(db *gorm.DB) *gorm.DB {
			return db.Order("date")
		}).First(&updated, "id = ?", train.ID).Error
	})
	if err != nil {
		if !errors.Is(err, domain.ErrTrainNotFound) && pkgApp.KindOf(err) == pkgApp.KindInternal {
			pkgApp.LogError(ctx, r.logger, "failed to update train", err, map[string]interface{}{"train_id": train.ID})
		}
		return domain.Train{}, err
	}
	return updated, nil
}

// mergeSchedule rewrites capacity in place and never writes seats_booked on
// days that already exist.
func mergeSchedule(tx *gorm.DB, trainID string, schedule []domain.Availability) error {
	var stored []domain.Availability
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("train_id = ?", trainID).Find(&stored).Error
	if err != nil {
		return err
	}

	merged, err := domain.MergeAvailability(stored, schedule)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(stored))
	for _, record := range stored {
		existing[dateKey(record.Date)] = true
	}

	for _, record := range merged {
		key := dateKey(record.Date)
		if existing[key] {
			delete(existing, key)
			err = tx.Model(&domain.Availability{}).
				Where("train_id = ? AND date = ?", trainID, key).
				UpdateColumn("available_seats", record.AvailableSeats).Error
		} else {
			record.TrainID = trainID
			err = tx.Create(&record).Error
		}
		if err != nil {
			return err
		}
	}

	for key := range existing {
		err := tx.Where("train_id = ? AND date = ?", trainID, key).Delete(&domain.Availability{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *gormTrainRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("train_id = ?", id).Delete(&domain.Availability{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Train{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrTrainNotFound
		}
		return nil
	})
}

// ReserveSeats relies on a conditional UPDATE so concurrent requests cannot
// push seats_booked past available_seats.
func (r *gormTrainRepository) ReserveSeats(ctx context.Context, trainID string, day time.Time, seats int) error {
	result := r.db.WithContext(ctx).Model(&domain.Availability{}).
		Where("train_id = ? AND date = ? AND seats_booked + ? <= available_seats", trainID, dateKey(day), seats).
		UpdateColumn("seats_booked", gorm.Expr("seats_booked + ?", seats))
	if result.Error != nil {
		pkgApp.LogError(ctx, r.logger, "failed to reserve seats", result.Error, map[string]interface{}{
			"train_id": trainID, "date": dateKey(day), "seats": seats,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOr(ctx, trainID, domain.ErrNotEnoughSeats)
	}

	pkgApp.LogInfo(ctx, r.logger, "seats reserved", map[string]interface{}{
		"train_id": trainID, "date": dateKey(day), "seats": seats,
	})
	return nil
}

func (r *gormTrainRepository) ReleaseSeats(ctx context.Context, trainID string, day time.Time, seats int) error {
	result := r.db.WithContext(ctx).Model(&domain.Availability{}).
		Where("train_id = ? AND date = ?", trainID, dateKey(day)).
		UpdateColumn("seats_booked", gorm.Expr("GREATEST(seats_booked - ?, 0)", seats))
	if result.Error != nil {
		pkgApp.LogError(ctx, r.logger, "failed to release seats", result.Error, map[string]interface{}{
			"train_id": trainID, "date": dateKey(day), "seats": seats,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOr(ctx, trainID, domain.ErrAvailabilityNotFound)
	}

	pkgApp.LogInfo(ctx, r.logger, "seats released", map[string]interface{}{
		"train_id": trainID, "date": dateKey(day), "seats": seats,
	})
	return nil
}

func (r *gormTrainRepository) withDates(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("AvailableDates", func(db *gorm.DB) *gorm.DB {
		return db.Order("date")
	})
}

// missingOr returns ErrTrainNotFound when the train is gone, otherwise fallback.
func (r *gormTrainRepository) missingOr(ctx context.Context, trainID string, fallback error) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Train{}).Where("id = ?", trainID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrTrainNotFound
	}
	return fallback
}

func dateKey(day time.Time) string {
	return domain.Day(day).Format(time.DateOnly)
}
