package domain

import (
	"context"
	"time"

	"github.com/mateusmacedo/train-booking/pkg/application"
)

var (
	ErrBookingNotFound = application.NewError(application.KindNotFound, "Booking not found")
	ErrBookingModified = application.NewError(application.KindConflict, "Booking was modified concurrently, retry the request")
)

// Booking reserves SeatsBooked seats on a train for the calendar day of BookingDate.
// User and train are referenced by id only.
type Booking struct {
	ID          string    `json:"_id" gorm:"primaryKey;type:uuid"`
	UserID      string    `json:"user" gorm:"column:user_id;not null;index"`
	TrainID     string    `json:"train" gorm:"column:train_id;type:uuid;not null;index"`
	SeatsBooked int       `json:"seatsBooked" gorm:"not null"`
	BookingDate time.Time `json:"bookingDate" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingFilter narrows Find; empty fields match everything.
type BookingFilter struct {
	UserID  string
	TrainID string
}

func (f BookingFilter) Matches(b Booking) bool {
	return (f.UserID == "" || f.UserID == b.UserID) && (f.TrainID == "" || f.TrainID == b.TrainID)
}

type BookingRepository interface {
	Save(ctx context.Context, booking Booking) error
	FindByID(ctx context.Context, id string) (Booking, error)
	Find(ctx context.Context, filter BookingFilter) ([]Booking, error)
	// Update and Delete only apply while the stored UpdatedAt still equals
	// expected, and fail with ErrBookingModified otherwise.
	Update(ctx context.Context, booking Booking, expected time.Time) error
	Delete(ctx context.Context, id string, expected time.Time) error
}
