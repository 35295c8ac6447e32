package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrain(day time.Time) Train {
	return Train{
		ID:             "t1",
		AvailableSeats: 100,
		AvailableDates: []Availability{{TrainID: "t1", Date: Day(day), AvailableSeats: 100}},
	}
}

func TestDayTruncatesToUTCCalendarDay(t *testing.T) {
	local := time.Date(2026, 3, 10, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), Day(local))
}

func TestReserveMatchesAnyTimeOnTheSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	train := newTrain(morning)

	require.NoError(t, train.Reserve(morning.Add(10*time.Hour), 2))

	record, ok := train.AvailabilityOn(morning)
	require.True(t, ok)
	assert.Equal(t, 2, record.SeatsBooked)
	assert.Equal(t, 98, record.Remaining())
}

func TestReserveRejectsOverbooking(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	train := newTrain(day)

	assert.ErrorIs(t, train.Reserve(day, 101), ErrNotEnoughSeats)
	assert.NoError(t, train.Reserve(day, 100))
	assert.ErrorIs(t, train.Reserve(day, 1), ErrNotEnoughSeats)
}

func TestReserveWithoutRecordForDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	train := newTrain(day)

	assert.ErrorIs(t, train.Reserve(day.AddDate(0, 0, 1), 1), ErrNotEnoughSeats)
}

func TestReleaseClampsAtZero(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	train := newTrain(day)
	require.NoError(t, train.Reserve(day, 3))

	require.NoError(t, train.Release(day, 5))
	record, _ := train.AvailabilityOn(day)
	assert.Equal(t, 0, record.SeatsBooked)

	assert.ErrorIs(t, train.Release(day.AddDate(0, 0, 2), 1), ErrAvailabilityNotFound)
}

func TestCloneDoesNotShareAvailability(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	train := newTrain(day)
	clone := train.Clone()

	require.NoError(t, clone.Reserve(day, 4))
	record, _ := train.AvailabilityOn(day)
	assert.Equal(t, 0, record.SeatsBooked)
}

func TestMergeAvailabilityKeepsStoredBookings(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	stored := []Availability{{TrainID: "t1", Date: day, AvailableSeats: 10, SeatsBooked: 5}}
	incoming := []Availability{
		{TrainID: "t1", Date: day.AddDate(0, 0, 1), AvailableSeats: 20},
		{TrainID: "t1", Date: day.Add(9 * time.Hour), AvailableSeats: 12, SeatsBooked: 0},
	}

	merged, err := MergeAvailability(stored, incoming)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, day, merged[0].Date)
	assert.Equal(t, 12, merged[0].AvailableSeats)
	assert.Equal(t, 5, merged[0].SeatsBooked)
	assert.Equal(t, 0, merged[1].SeatsBooked)
}

func TestMergeAvailabilityRejectsCapacityBelowBooked(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	stored := []Availability{{TrainID: "t1", Date: day, AvailableSeats: 10, SeatsBooked: 5}}

	_, err := MergeAvailability(stored, []Availability{{TrainID: "t1", Date: day, AvailableSeats: 4}})
	assert.ErrorIs(t, err, ErrCapacityBelowBooked)
}

func TestMergeAvailabilityDroppedDays(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	stored := []Availability{
		{TrainID: "t1", Date: day, AvailableSeats: 10, SeatsBooked: 1},
		{TrainID: "t1", Date: day.AddDate(0, 0, 1), AvailableSeats: 10},
	}

	_, err := MergeAvailability(stored, nil)
	assert.ErrorIs(t, err, ErrBookedDateRemoved)

	merged, err := MergeAvailability(stored, stored[:1])
	require.NoError(t, err)
	assert.Len(t, merged, 1)
}
