package infrastructure

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/train/application"
	"github.com/mateusmacedo/train-booking/pkg/infrastructure/httpx"
)

type TrainHTTPHandler struct {
	service *application.TrainService
}

func NewTrainHTTPHandler(service *application.TrainService) *TrainHTTPHandler {
	return &TrainHTTPHandler{service: service}
}

func (h *TrainHTTPHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var data application.TrainData
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.WriteError(w, err)
		return
	}

	train, err := h.service.Create(r.Context(), data)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, train)
}

func (h *TrainHTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	trains, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, trains)
}

func (h *TrainHTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	train, err := h.service.Get(r.Context(), chi.URLParam(r, "trainID"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, train)
}

func (h *TrainHTTPHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var data application.TrainData
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.WriteError(w, err)
		return
	}

	train, err := h.service.Update(r.Context(), chi.URLParam(r, "trainID"), data)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, train)
}

func (h *TrainHTTPHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "trainID")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Train successfully deleted")
}

func (h *TrainHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Route("/trains", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{trainID}", h.HandleGet)
		r.Put("/{trainID}", h.HandleUpdate)
		r.Delete("/{trainID}", h.HandleDelete)
	})
}
