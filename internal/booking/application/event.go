package application

import (
	"context"
	"time"

	"github.com/mateusmacedo/train-booking/internal/booking/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
)

const (
	BookingCreatedEventName   = "BookingCreated"
	BookingUpdatedEventName   = "BookingUpdated"
	BookingCancelledEventName = "BookingCancelled"
)

// BookingEventData is the payload published for every booking lifecycle event.
type BookingEventData struct {
	BookingID   string    `json:"bookingId"`
	UserID      string    `json:"user"`
	TrainID     string    `json:"train"`
	SeatsBooked int       `json:"seatsBooked"`
	BookingDate time.Time `json:"bookingDate"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type BookingEventBus = pkgApp.EventBus[pkgDomain.Event[BookingEventData], BookingEventData]

type bookingEvent struct {
	name string
	data BookingEventData
}

func (e bookingEvent) EventName() string {
	return e.name
}

func (e bookingEvent) Payload() BookingEventData {
	return e.data
}

func newBookingEvent(name string, booking domain.Booking, at time.Time) pkgDomain.Event[BookingEventData] {
	return bookingEvent{name: name, data: BookingEventData{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		TrainID:     booking.TrainID,
		SeatsBooked: booking.SeatsBooked,
		BookingDate: booking.BookingDate,
		OccurredAt:  at,
	}}
}

func NewBookingCreatedEvent(booking domain.Booking, at time.Time) pkgDomain.Event[BookingEventData] {
	return newBookingEvent(BookingCreatedEventName, booking, at)
}

func NewBookingUpdatedEvent(booking domain.Booking, at time.Time) pkgDomain.Event[BookingEventData] {
	return newBookingEvent(BookingUpdatedEventName, booking, at)
}

func NewBookingCancelledEvent(booking domain.Booking, at time.Time) pkgDomain.Event[BookingEventData] {
	return newBookingEvent(BookingCancelledEventName, booking, at)
}

type bookingEventLogger struct {
	logger pkgApp.AppLogger
}

func (h *bookingEventLogger) Handle(ctx context.Context, event pkgDomain.Event[BookingEventData]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return ctx.Err()
	}

	data := event.Payload()
	pkgApp.LogInfo(ctx, h.logger, "booking event received", map[string]interface{}{
		"event_name":   event.EventName(),
		"booking_id":   data.BookingID,
		"train_id":     data.TrainID,
		"seats_booked": data.SeatsBooked,
	})
	return nil
}

func NewBookingEventLogger(logger pkgApp.AppLogger) pkgApp.EventHandler[pkgDomain.Event[BookingEventData], BookingEventData] {
	return &bookingEventLogger{logger: logger}
}
