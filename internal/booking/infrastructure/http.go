package infrastructure

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/booking/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
	"github.com/mateusmacedo/train-booking/pkg/infrastructure/httpx"
)

const requestTimeout = 10 * time.Second

// BookingBuses groups the buses the HTTP layer dispatches to.
type BookingBuses struct {
	Create application.CreateBookingBus
	Update application.UpdateBookingBus
	Delete application.DeleteBookingBus
	Find   application.FindBookingBus
	List   application.ListBookingsBus
}

type BookingHTTPHandler struct {
	buses       BookingBuses
	idGenerator pkgDomain.IDGenerator[string]
}

func NewBookingHTTPHandler(buses BookingBuses, idGenerator pkgDomain.IDGenerator[string]) *BookingHTTPHandler {
	return &BookingHTTPHandler{
		buses:       buses,
		idGenerator: idGenerator,
	}
}

func (h *BookingHTTPHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var data application.CreateBookingData
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.WriteError(w, err)
		return
	}
	data.ID = h.idGenerator()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.buses.Create.Dispatch(ctx, application.NewCreateBookingCommand(data)); err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.writeBooking(ctx, w, http.StatusCreated, data.ID)
}

func (h *BookingHTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	query := application.NewListBookingsQuery(application.ListBookingsData{
		UserID:  r.URL.Query().Get("user"),
		TrainID: r.URL.Query().Get("train"),
	})
	bookings, err := h.buses.List.Dispatch(ctx, query)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bookings)
}

func (h *BookingHTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.writeBooking(ctx, w, http.StatusOK, chi.URLParam(r, "bookingID"))
}

func (h *BookingHTTPHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var data application.UpdateBookingData
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.WriteError(w, err)
		return
	}
	data.ID = chi.URLParam(r, "bookingID")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.buses.Update.Dispatch(ctx, application.NewUpdateBookingCommand(data)); err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.writeBooking(ctx, w, http.StatusOK, data.ID)
}

func (h *BookingHTTPHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	command := application.NewDeleteBookingCommand(application.DeleteBookingData{ID: chi.URLParam(r, "bookingID")})
	if err := h.buses.Delete.Dispatch(ctx, command); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Booking successfully deleted")
}

func (h *BookingHTTPHandler) writeBooking(ctx context.Context, w http.ResponseWriter, status int, id string) {
	booking, err := h.buses.Find.Dispatch(ctx, application.NewFindBookingQuery(application.FindBookingData{ID: id}))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, status, booking)
}

func (h *BookingHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{bookingID}", h.HandleGet)
		r.Put("/{bookingID}", h.HandleUpdate)
		r.Delete("/{bookingID}", h.HandleDelete)
	})
}
