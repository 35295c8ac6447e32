package infrastructure

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/route/application"
	"github.com/mateusmacedo/train-booking/pkg/infrastructure/httpx"
)

type RouteHTTPHandler struct {
	service *application.RouteService
}

func NewRouteHTTPHandler(service *application.RouteService) *RouteHTTPHandler {
	return &RouteHTTPHandler{service: service}
}

func (h *RouteHTTPHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var data application.RouteData
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.WriteError(w, err)
		return
	}

	route, err := h.service.Create(r.Context(), data)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, route)
}

func (h *RouteHTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, routes)
}

func (h *RouteHTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	route, err := h.service.Get(r.Context(), chi.URLParam(r, "routeID"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, route)
}

func (h *RouteHTTPHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var data application.RouteData
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.WriteError(w, err)
		return
	}

	route, err := h.service.Update(r.Context(), chi.URLParam(r, "routeID"), data)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, route)
}

func (h *RouteHTTPHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "routeID")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Route successfully deleted")
}

func (h *RouteHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Route("/routes", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{routeID}", h.HandleGet)
		r.Put("/{routeID}", h.HandleUpdate)
		r.Delete("/{routeID}", h.HandleDelete)
	})
}
