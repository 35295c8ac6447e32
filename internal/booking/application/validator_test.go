package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trainDomain "github.com/mateusmacedo/train-booking/internal/train/domain"
)

var travelDay = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func trainWithSeats(available, booked int) trainDomain.Train {
	return trainDomain.Train{
		ID: "0b6f9c36-3f7a-4c4e-9d5c-2a9b3b0f1e21",
		AvailableDates: []trainDomain.Availability{
			{Date: travelDay, AvailableSeats: available, SeatsBooked: booked},
		},
	}
}

func seats(n int) *int { return &n }

func loadTrain(train trainDomain.Train) TrainLoader {
	return func(ctx context.Context, id string) (trainDomain.Train, error) {
		return train, nil
	}
}

func validateCreate(data CreateBookingData, train trainDomain.Train) (BookingRequest, error) {
	return Validator{}.ValidateCreate(context.Background(), data, loadTrain(train))
}

func validCreate() CreateBookingData {
	return CreateBookingData{
		User:        "5a4c2f9e-1c3b-4b0e-8f7a-9d6e5c4b3a21",
		Train:       "0b6f9c36-3f7a-4c4e-9d5c-2a9b3b0f1e21",
		SeatsBooked: seats(2),
		BookingDate: "2026-06-01T15:04:05.123Z",
	}
}

func TestValidateCreateAccepts(t *testing.T) {
	request, err := validateCreate(validCreate(), trainWithSeats(100, 0))

	require.NoError(t, err)
	assert.Equal(t, 2, request.Seats)
	assert.Equal(t, travelDay, request.Day())
}

func TestValidateCreateMissingFields(t *testing.T) {
	cases := map[string]func(*CreateBookingData){
		"user":        func(d *CreateBookingData) { d.User = "" },
		"train":       func(d *CreateBookingData) { d.Train = "" },
		"seatsBooked": func(d *CreateBookingData) { d.SeatsBooked = nil },
		"zero seats":  func(d *CreateBookingData) { d.SeatsBooked = seats(0) },
		"bookingDate": func(d *CreateBookingData) { d.BookingDate = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			data := validCreate()
			mutate(&data)

			_, err := validateCreate(data, trainWithSeats(100, 0))
			assert.ErrorIs(t, err, ErrMissingBookingFields)
			assert.EqualError(t, err, "User, train, seatsBooked, and bookingDate are required")
		})
	}
}

func TestValidateCreateInvalidDate(t *testing.T) {
	data := validCreate()
	data.BookingDate = "not-a-date"

	_, err := validateCreate(data, trainWithSeats(100, 0))
	assert.ErrorIs(t, err, ErrInvalidBookingDate)
}

func TestValidateCreateNegativeSeats(t *testing.T) {
	data := validCreate()
	data.SeatsBooked = seats(-1)

	_, err := validateCreate(data, trainWithSeats(100, 0))
	assert.ErrorIs(t, err, ErrInvalidSeatCount)
}

func TestValidateCreateNotEnoughSeats(t *testing.T) {
	data := validCreate()
	data.SeatsBooked = seats(101)
	_, err := validateCreate(data, trainWithSeats(100, 0))
	assert.ErrorIs(t, err, trainDomain.ErrNotEnoughSeats)

	data.SeatsBooked = seats(3)
	_, err = validateCreate(data, trainWithSeats(10, 8))
	assert.EqualError(t, err, "Not enough available seats")
}

func TestValidateCreateNoRecordForDay(t *testing.T) {
	data := validCreate()
	data.BookingDate = "2026-06-02"

	_, err := validateCreate(data, trainWithSeats(100, 0))
	assert.ErrorIs(t, err, trainDomain.ErrNotEnoughSeats)
}

func TestValidateCreateLooksUpTrainAfterFormatChecks(t *testing.T) {
	calls := 0
	load := func(ctx context.Context, id string) (trainDomain.Train, error) {
		calls++
		return trainDomain.Train{}, trainDomain.ErrTrainNotFound
	}

	data := validCreate()
	data.SeatsBooked = nil
	_, err := Validator{}.ValidateCreate(context.Background(), data, load)
	assert.ErrorIs(t, err, ErrMissingBookingFields)

	data = validCreate()
	data.Train = "not-a-uuid"
	_, err = Validator{}.ValidateCreate(context.Background(), data, load)
	assert.ErrorIs(t, err, trainDomain.ErrTrainNotFound)
	assert.Equal(t, 0, calls)

	_, err = Validator{}.ValidateCreate(context.Background(), validCreate(), load)
	assert.ErrorIs(t, err, trainDomain.ErrTrainNotFound)
	assert.Equal(t, 1, calls)
}

func TestParseBookingDateLayouts(t *testing.T) {
	for _, value := range []string{"2026-06-01", "2026-06-01T10:00:00Z", "2026-06-01T10:00:00.000+00:00"} {
		parsed, err := ParseBookingDate(value)
		require.NoError(t, err, value)
		assert.Equal(t, travelDay, trainDomain.Day(parsed), value)
	}
}

func TestValidateUpdate(t *testing.T) {
	_, _, err := Validator{}.ValidateUpdate(UpdateBookingData{SeatsBooked: seats(0)})
	assert.ErrorIs(t, err, ErrInvalidSeatCount)

	bad := "yesterday"
	_, _, err = Validator{}.ValidateUpdate(UpdateBookingData{BookingDate: &bad})
	assert.ErrorIs(t, err, ErrInvalidBookingDate)

	good := "2026-06-01"
	n, date, err := Validator{}.ValidateUpdate(UpdateBookingData{SeatsBooked: seats(4), BookingDate: &good})
	require.NoError(t, err)
	assert.Equal(t, 4, *n)
	assert.Equal(t, travelDay, *date)
}
