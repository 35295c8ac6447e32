package infrastructure

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/auth/session"
	"github.com/mateusmacedo/train-booking/internal/user/application"
	"github.com/mateusmacedo/train-booking/pkg/infrastructure/httpx"
)

type UserHTTPHandler struct {
	service  *application.UserService
	sessions *session.Manager
}

func NewUserHTTPHandler(service *application.UserService, sessions *session.Manager) *UserHTTPHandler {
	return &UserHTTPHandler{service: service, sessions: sessions}
}

func (h *UserHTTPHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var data application.UserData
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.WriteError(w, err)
		return
	}

	user, err := h.service.Create(r.Context(), data)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, user)
}

func (h *UserHTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actorID, _ := session.UserIDFrom(r.Context())
	user, err := h.service.Get(r.Context(), actorID, chi.URLParam(r, "userID"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

func (h *UserHTTPHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var data application.UserData
	if err := httpx.DecodeJSON(r, &data); err != nil {
		httpx.WriteError(w, err)
		return
	}

	actorID, _ := session.UserIDFrom(r.Context())
	user, err := h.service.Update(r.Context(), actorID, chi.URLParam(r, "userID"), data)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

func (h *UserHTTPHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := session.UserIDFrom(r.Context())
	if err := h.service.Delete(r.Context(), actorID, chi.URLParam(r, "userID")); err != nil {
		httpx.WriteError(w, err)
		return
	}

	// The account is gone; a failure to drop its session is already logged.
	_ = h.sessions.End(w, r)
	httpx.WriteMessage(w, http.StatusOK, "User successfully deleted")
}

func (h *UserHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Route("/users", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Group(func(r chi.Router) {
			r.Use(h.sessions.Require)
			r.Get("/{userID}", h.HandleGet)
			r.Put("/{userID}", h.HandleUpdate)
			r.Delete("/{userID}", h.HandleDelete)
		})
	})
}
