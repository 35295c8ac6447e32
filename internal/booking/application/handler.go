package application

import (
	"context"
	"errors"
	"time"

	"github.com/mateusmacedo/train-booking/internal/booking/domain"
	trainDomain "github.com/mateusmacedo/train-booking/internal/train/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
)

// seatLedger is the part of the train repository that owns seat counts.
type seatLedger interface {
	FindByID(ctx context.Context, id string) (trainDomain.Train, error)
	ReserveSeats(ctx context.Context, trainID string, day time.Time, seats int) error
	ReleaseSeats(ctx context.Context, trainID string, day time.Time, seats int) error
}

// handlerBase carries the collaborators shared by the booking command handlers.
type handlerBase struct {
	repository domain.BookingRepository
	trains     seatLedger
	eventBus   BookingEventBus
	validator  Validator
	logger     pkgApp.AppLogger
	now        func() time.Time
}

func (h *handlerBase) checkContext(ctx context.Context) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return ctx.Err()
	}
	return nil
}

// publish reports event failures without failing the already persisted change.
func (h *handlerBase) publish(ctx context.Context, event pkgDomain.Event[BookingEventData]) {
	if err := h.eventBus.Publish(ctx, event); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to publish booking event", err, map[string]interface{}{
			"event_name": event.EventName(),
			"booking_id": event.Payload().BookingID,
		})
	}
}

// release returns seats and only logs failures; the booking change stands either way.
func (h *handlerBase) release(ctx context.Context, trainID string, day time.Time, seats int) {
	if err := h.trains.ReleaseSeats(ctx, trainID, day, seats); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to release seats", err, map[string]interface{}{
			"train_id": trainID,
			"day":      day.Format(time.DateOnly),
			"seats":    seats,
		})
	}
}

func (h *handlerBase) find(ctx context.Context, id string) (domain.Booking, error) {
	if !pkgInfra.IsValidID(id) {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return h.repository.FindByID(ctx, id)
}

type createBookingHandler struct {
	handlerBase
}

func (h *createBookingHandler) Handle(ctx context.Context, command pkgDomain.Command[CreateBookingData]) error {
	if err := h.checkContext(ctx); err != nil {
		return err
	}

	data := command.Payload()
	request, err := h.validator.ValidateCreate(ctx, data, h.trains.FindByID)
	if err != nil {
		if errors.Is(err, trainDomain.ErrNotEnoughSeats) {
			pkgApp.LogInfo(ctx, h.logger, "booking rejected", map[string]interface{}{
				"train_id": data.Train,
				"reason":   err.Error(),
			})
		}
		return err
	}

	if err := h.trains.ReserveSeats(ctx, request.TrainID, request.Day(), request.Seats); err != nil {
		return err
	}

	now := h.now().UTC()
	booking := domain.Booking{
		ID:          data.ID,
		UserID:      request.UserID,
		TrainID:     request.TrainID,
		SeatsBooked: request.Seats,
		BookingDate: request.BookingDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repository.Save(ctx, booking); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to save booking", err, map[string]interface{}{"booking_id": booking.ID})
		h.release(ctx, booking.TrainID, request.Day(), booking.SeatsBooked)
		return err
	}

	pkgApp.LogInfo(ctx, h.logger, "booking created", map[string]interface{}{
		"booking_id": booking.ID,
		"train_id":   booking.TrainID,
		"seats":      booking.SeatsBooked,
	})
	h.publish(ctx, NewBookingCreatedEvent(booking, now))
	return nil
}

func NewCreateBookingHandler(repo domain.BookingRepository, trains trainDomain.TrainRepository, eventBus BookingEventBus, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[CreateBookingData], CreateBookingData] {
	return &createBookingHandler{handlerBase: newHandlerBase(repo, trains, eventBus, logger)}
}

type updateBookingHandler struct {
	handlerBase
}

// Handle re-validates seat changes against the ledger. On the same day only the
// difference is reserved or released; on a new day the full count moves.
func (h *updateBookingHandler) Handle(ctx context.Context, command pkgDomain.Command[UpdateBookingData]) error {
	if err := h.checkContext(ctx); err != nil {
		return err
	}

	data := command.Payload()
	booking, err := h.find(ctx, data.ID)
	if err != nil {
		return err
	}
	seats, bookingDate, err := h.validator.ValidateUpdate(data)
	if err != nil {
		return err
	}

	updated := booking
	if seats != nil {
		updated.SeatsBooked = *seats
	}
	if bookingDate != nil {
		updated.BookingDate = *bookingDate
	}

	undo, err := h.moveSeats(ctx, booking, updated)
	if err != nil {
		return err
	}

	updated.UpdatedAt = h.now().UTC()
	if err := h.repository.Update(ctx, updated, booking.UpdatedAt); err != nil {
		if pkgApp.KindOf(err) == pkgApp.KindInternal {
			pkgApp.LogError(ctx, h.logger, "failed to update booking", err, map[string]interface{}{"booking_id": booking.ID})
		}
		undo()
		return err
	}

	pkgApp.LogInfo(ctx, h.logger, "booking updated", map[string]interface{}{
		"booking_id": updated.ID,
		"seats":      updated.SeatsBooked,
	})
	h.publish(ctx, NewBookingUpdatedEvent(updated, updated.UpdatedAt))
	return nil
}

// moveSeats applies the ledger change from before to after and returns its inverse.
func (h *updateBookingHandler) moveSeats(ctx context.Context, before, after domain.Booking) (func(), error) {
	oldDay, newDay := trainDomain.Day(before.BookingDate), trainDomain.Day(after.BookingDate)
	trainID := before.TrainID

	if oldDay.Equal(newDay) {
		delta := after.SeatsBooked - before.SeatsBooked
		switch {
		case delta > 0:
			if err := h.trains.ReserveSeats(ctx, trainID, newDay, delta); err != nil {
				return nil, err
			}
			return func() { h.release(ctx, trainID, newDay, delta) }, nil
		case delta < 0:
			h.release(ctx, trainID, oldDay, -delta)
			return func() { h.reserveBack(ctx, trainID, oldDay, -delta) }, nil
		default:
			return func() {}, nil
		}
	}

	if err := h.trains.ReserveSeats(ctx, trainID, newDay, after.SeatsBooked); err != nil {
		return nil, err
	}
	h.release(ctx, trainID, oldDay, before.SeatsBooked)
	return func() {
		h.release(ctx, trainID, newDay, after.SeatsBooked)
		h.reserveBack(ctx, trainID, oldDay, before.SeatsBooked)
	}, nil
}

func (h *updateBookingHandler) reserveBack(ctx context.Context, trainID string, day time.Time, seats int) {
	if err := h.trains.ReserveSeats(ctx, trainID, day, seats); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to restore released seats", err, map[string]interface{}{
			"train_id": trainID,
			"day":      day.Format(time.DateOnly),
			"seats":    seats,
		})
	}
}

func NewUpdateBookingHandler(repo domain.BookingRepository, trains trainDomain.TrainRepository, eventBus BookingEventBus, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[UpdateBookingData], UpdateBookingData] {
	return &updateBookingHandler{handlerBase: newHandlerBase(repo, trains, eventBus, logger)}
}

type deleteBookingHandler struct {
	handlerBase
}

func (h *deleteBookingHandler) Handle(ctx context.Context, command pkgDomain.Command[DeleteBookingData]) error {
	if err := h.checkContext(ctx); err != nil {
		return err
	}

	booking, err := h.find(ctx, command.Payload().ID)
	if err != nil {
		return err
	}

	if err := h.repository.Delete(ctx, booking.ID, booking.UpdatedAt); err != nil {
		if pkgApp.KindOf(err) == pkgApp.KindInternal {
			pkgApp.LogError(ctx, h.logger, "failed to delete booking", err, map[string]interface{}{"booking_id": booking.ID})
		}
		return err
	}
	h.release(ctx, booking.TrainID, trainDomain.Day(booking.BookingDate), booking.SeatsBooked)

	now := h.now().UTC()
	pkgApp.LogInfo(ctx, h.logger, "booking deleted", map[string]interface{}{"booking_id": booking.ID})
	h.publish(ctx, NewBookingCancelledEvent(booking, now))
	return nil
}

func NewDeleteBookingHandler(repo domain.BookingRepository, trains trainDomain.TrainRepository, eventBus BookingEventBus, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[DeleteBookingData], DeleteBookingData] {
	return &deleteBookingHandler{handlerBase: newHandlerBase(repo, trains, eventBus, logger)}
}

type findBookingHandler struct {
	handlerBase
}

func (h *findBookingHandler) Handle(ctx context.Context, query pkgDomain.Query[FindBookingData]) (domain.Booking, error) {
	if err := h.checkContext(ctx); err != nil {
		return domain.Booking{}, err
	}
	return h.find(ctx, query.Payload().ID)
}

func NewFindBookingHandler(repo domain.BookingRepository, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[FindBookingData], FindBookingData, domain.Booking] {
	return &findBookingHandler{handlerBase: handlerBase{repository: repo, logger: logger}}
}

type listBookingsHandler struct {
	repository domain.BookingRepository
	logger     pkgApp.AppLogger
}

func (h *listBookingsHandler) Handle(ctx context.Context, query pkgDomain.Query[ListBookingsData]) ([]domain.Booking, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return nil, ctx.Err()
	}

	data := query.Payload()
	bookings, err := h.repository.Find(ctx, domain.BookingFilter{UserID: data.UserID, TrainID: data.TrainID})
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to list bookings", err, map[string]interface{}{
			"user_id":  data.UserID,
			"train_id": data.TrainID,
		})
		return nil, err
	}
	return bookings, nil
}

func NewListBookingsHandler(repo domain.BookingRepository, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ListBookingsData], ListBookingsData, []domain.Booking] {
	return &listBookingsHandler{repository: repo, logger: logger}
}

func newHandlerBase(repo domain.BookingRepository, trains seatLedger, eventBus BookingEventBus, logger pkgApp.AppLogger) handlerBase {
	return handlerBase{
		repository: repo,
		trains:     trains,
		eventBus:   eventBus,
		logger:     logger,
		now:        time.Now,
	}
}
