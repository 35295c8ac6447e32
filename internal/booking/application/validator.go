package application

import (
	"context"
	"strings"
	"time"

	trainDomain "github.com/mateusmacedo/train-booking/internal/train/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
)

var (
	ErrMissingBookingFields = pkgApp.NewError(pkgApp.KindMissingField, "User, train, seatsBooked, and bookingDate are required")
	ErrInvalidBookingDate   = pkgApp.NewError(pkgApp.KindInvalidFormat, "Invalid booking date")
	ErrInvalidSeatCount     = pkgApp.NewError(pkgApp.KindInvalidFormat, "seatsBooked must be a positive integer")
)

var bookingDateLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateOnly}

// BookingRequest is a create request whose fields passed format checks.
type BookingRequest struct {
	UserID      string
	TrainID     string
	Seats       int
	BookingDate time.Time
}

// Day is the availability record key the request books against.
func (r BookingRequest) Day() time.Time {
	return trainDomain.Day(r.BookingDate)
}

// TrainLoader reads the train a booking request points at.
type TrainLoader func(ctx context.Context, id string) (trainDomain.Train, error)

// Validator holds the booking checks. It may read trains but never writes.
type Validator struct{}

// ValidateCreate runs every create check in order: presence and format, train
// lookup, then availability on a snapshot of the train. The snapshot only
// rejects early; ReserveSeats remains the authoritative check.
func (v Validator) ValidateCreate(ctx context.Context, data CreateBookingData, load TrainLoader) (BookingRequest, error) {
	request, err := v.Parse(data)
	if err != nil {
		return BookingRequest{}, err
	}
	if !pkgInfra.IsValidID(request.TrainID) {
		return BookingRequest{}, trainDomain.ErrTrainNotFound
	}

	train, err := load(ctx, request.TrainID)
	if err != nil {
		return BookingRequest{}, err
	}
	if err := v.CheckAvailability(train, request.Day(), request.Seats); err != nil {
		return BookingRequest{}, err
	}
	return request, nil
}

// Parse checks presence and format. A zero seat count counts as missing.
func (v Validator) Parse(data CreateBookingData) (BookingRequest, error) {
	user, train, date := strings.TrimSpace(data.User), strings.TrimSpace(data.Train), strings.TrimSpace(data.BookingDate)
	if user == "" || train == "" || data.SeatsBooked == nil || *data.SeatsBooked == 0 || date == "" {
		return BookingRequest{}, ErrMissingBookingFields
	}

	bookingDate, err := ParseBookingDate(date)
	if err != nil {
		return BookingRequest{}, err
	}
	if *data.SeatsBooked < 0 {
		return BookingRequest{}, ErrInvalidSeatCount
	}

	return BookingRequest{
		UserID:      user,
		TrainID:     train,
		Seats:       *data.SeatsBooked,
		BookingDate: bookingDate,
	}, nil
}

// CheckAvailability fails with ErrNotEnoughSeats when train has no record for day
// or fewer than seats remaining on it.
func (v Validator) CheckAvailability(train trainDomain.Train, day time.Time, seats int) error {
	return train.CanReserve(day, seats)
}

// ValidateUpdate checks the optional fields of an update.
func (v Validator) ValidateUpdate(data UpdateBookingData) (seats *int, bookingDate *time.Time, err error) {
	if data.SeatsBooked != nil {
		if *data.SeatsBooked <= 0 {
			return nil, nil, ErrInvalidSeatCount
		}
		seats = data.SeatsBooked
	}
	if data.BookingDate != nil {
		parsed, err := ParseBookingDate(strings.TrimSpace(*data.BookingDate))
		if err != nil {
			return nil, nil, err
		}
		bookingDate = &parsed
	}
	return seats, bookingDate, nil
}

func ParseBookingDate(value string) (time.Time, error) {
	for _, layout := range bookingDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidBookingDate
}
