package domain

import (
	"context"
	"sort"
	"time"

	"github.com/mateusmacedo/train-booking/pkg/application"
)

var (
	ErrTrainNotFound        = application.NewError(application.KindNotFound, "Train not found")
	ErrNotEnoughSeats       = application.NewError(application.KindBusinessRuleViolation, "Not enough available seats")
	ErrAvailabilityNotFound = application.NewError(application.KindNotFound, "No availability for the requested date")
	ErrCapacityBelowBooked  = application.NewError(application.KindConflict, "availableSeats cannot drop below seats already booked")
	ErrBookedDateRemoved    = application.NewError(application.KindConflict, "Cannot remove a date that has booked seats")
)

// Availability is the seat capacity of a train on one calendar day (UTC).
// Invariant: 0 <= SeatsBooked <= AvailableSeats.
type Availability struct {
	TrainID        string    `json:"-" gorm:"primaryKey;type:uuid"`
	Date           time.Time `json:"date" gorm:"primaryKey;type:date"`
	AvailableSeats int       `json:"availableSeats" gorm:"not null"`
	SeatsBooked    int       `json:"seatsBooked" gorm:"not null;default:0"`
}

func (a Availability) Remaining() int {
	return a.AvailableSeats - a.SeatsBooked
}

// Train owns its per-day availability records.
type Train struct {
	ID             string         `json:"_id" gorm:"primaryKey;type:uuid"`
	Name           string         `json:"name" gorm:"not null"`
	RouteID        string         `json:"route" gorm:"column:route_id;type:uuid;index"`
	DepartureTime  time.Time      `json:"departureTime"`
	ArrivalTime    time.Time      `json:"arrivalTime"`
	AvailableSeats int            `json:"availableSeats"`
	AvailableDates []Availability `json:"availableDates" gorm:"foreignKey:TrainID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Day truncates t to its UTC calendar day, the key of availability records.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AvailabilityOn returns the record for the day containing t.
func (t *Train) AvailabilityOn(day time.Time) (*Availability, bool) {
	key := Day(day)
	for i := range t.AvailableDates {
		if Day(t.AvailableDates[i].Date).Equal(key) {
			return &t.AvailableDates[i], true
		}
	}
	return nil, false
}

// CanReserve reports ErrNotEnoughSeats when the day has no record or too few remaining seats.
func (t *Train) CanReserve(day time.Time, seats int) error {
	record, ok := t.AvailabilityOn(day)
	if !ok || seats > record.Remaining() {
		return ErrNotEnoughSeats
	}
	return nil
}

func (t *Train) Reserve(day time.Time, seats int) error {
	if err := t.CanReserve(day, seats); err != nil {
		return err
	}
	record, _ := t.AvailabilityOn(day)
	record.SeatsBooked += seats
	return nil
}

// Release returns seats to the day, never dropping SeatsBooked below zero.
func (t *Train) Release(day time.Time, seats int) error {
	record, ok := t.AvailabilityOn(day)
	if !ok {
		return ErrAvailabilityNotFound
	}
	record.SeatsBooked -= seats
	if record.SeatsBooked < 0 {
		record.SeatsBooked = 0
	}
	return nil
}

// Clone copies the train so callers cannot mutate shared availability slices.
func (t Train) Clone() Train {
	clone := t
	clone.AvailableDates = append([]Availability(nil), t.AvailableDates...)
	return clone
}

// MergeAvailability applies an incoming schedule over the stored one. Days
// present in both keep the stored SeatsBooked, since only the seat ledger
// writes that column after creation.
func MergeAvailability(stored, incoming []Availability) ([]Availability, error) {
	current := make(map[time.Time]Availability, len(stored))
	for _, record := range stored {
		current[Day(record.Date)] = record
	}

	merged := make([]Availability, 0, len(incoming))
	kept := make(map[time.Time]bool, len(incoming))
	for _, record := range incoming {
		day := Day(record.Date)
		record.Date = day
		if existing, ok := current[day]; ok {
			if record.AvailableSeats < existing.SeatsBooked {
				return nil, ErrCapacityBelowBooked
			}
			record.SeatsBooked = existing.SeatsBooked
		}
		kept[day] = true
		merged = append(merged, record)
	}

	for day, record := range current {
		if !kept[day] && record.SeatsBooked > 0 {
			return nil, ErrBookedDateRemoved
		}
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) })
	return merged, nil
}

type TrainRepository interface {
	Save(ctx context.Context, train Train) error
	FindByID(ctx context.Context, id string) (Train, error)
	FindAll(ctx context.Context) ([]Train, error)
	// Update writes the train columns and returns the stored train. The seat
	// ledger is only touched when schedule is non-nil, through MergeAvailability.
	Update(ctx context.Context, train Train, schedule *[]Availability) (Train, error)
	Delete(ctx context.Context, id string) error

	// ReserveSeats atomically checks and books seats for one (train, day).
	ReserveSeats(ctx context.Context, trainID string, day time.Time, seats int) error
	// ReleaseSeats atomically returns seats to one (train, day), clamped at zero.
	ReleaseSeats(ctx context.Context, trainID string, day time.Time, seats int) error
}
