package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/train-booking/internal/auth/session"
	userDomain "github.com/mateusmacedo/train-booking/internal/user/domain"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	"github.com/mateusmacedo/train-booking/pkg/infrastructure/httpx"
)

const (
	loginPath   = "/auth/login"
	profilePath = "/auth/profile"
)

// Authenticator resolves credentials and sessions to users.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (userDomain.User, error)
	Profile(ctx context.Context, id string) (userDomain.User, error)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthHTTPHandler struct {
	users    Authenticator
	sessions *session.Manager
	logger   pkgApp.AppLogger
}

func NewAuthHTTPHandler(users Authenticator, sessions *session.Manager, logger pkgApp.AppLogger) *AuthHTTPHandler {
	return &AuthHTTPHandler{users: users, sessions: sessions, logger: logger}
}

func (h *AuthHTTPHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	httpx.WriteMessage(w, http.StatusOK, "Please login with correct credentials.")
}

// HandleLogin accepts a JSON or form body and always answers with a redirect.
func (h *AuthHTTPHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(r)
	if err != nil {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	user, err := h.users.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if !errors.Is(err, userDomain.ErrInvalidCredentials) {
			pkgApp.LogError(r.Context(), h.logger, "login failed", err, nil)
		}
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	if _, err := h.sessions.Start(r.Context(), w, user.ID); err != nil {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}
	http.Redirect(w, r, profilePath, http.StatusFound)
}

func (h *AuthHTTPHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	_ = h.sessions.End(w, r)
	http.Redirect(w, r, loginPath, http.StatusFound)
}

func (h *AuthHTTPHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	current, err := h.sessions.Current(r)
	if err != nil {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	user, err := h.users.Profile(r.Context(), current.UserID)
	if err != nil {
		if !errors.Is(err, userDomain.ErrUserNotFound) {
			pkgApp.LogError(r.Context(), h.logger, "failed to load profile", err, map[string]interface{}{"user_id": current.UserID})
		}
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profile{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (h *AuthHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Route("/auth", func(r chi.Router) {
		r.Get("/login", h.HandleLoginPage)
		r.Post("/login", h.HandleLogin)
		r.Get("/logout", h.HandleLogout)
		r.Get("/profile", h.HandleProfile)
	})
}

func readCredentials(r *http.Request) (credentials, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var creds credentials
		err := json.NewDecoder(r.Body).Decode(&creds)
		return creds, err
	}

	if err := r.ParseForm(); err != nil {
		return credentials{}, err
	}
	return credentials{Email: r.PostForm.Get("email"), Password: r.PostForm.Get("password")}, nil
}
