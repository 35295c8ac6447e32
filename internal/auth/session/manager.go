package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mateusmacedo/train-booking/pkg/application"
	"github.com/mateusmacedo/train-booking/pkg/infrastructure/httpx"
)

const DefaultCookieName = "sid"

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Manager binds sessions in a Store to the client cookie.
type Manager struct {
	store  Store
	cookie CookieConfig
	logger application.AppLogger
}

func NewManager(store Store, cookie CookieConfig, logger application.AppLogger) *Manager {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	return &Manager{store: store, cookie: cookie, logger: logger}
}

// Start opens a session for userID and sets the cookie on w.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, userID string) (Session, error) {
	session, err := m.store.Create(ctx, userID)
	if err != nil {
		application.LogError(ctx, m.logger, "failed to create session", err, map[string]interface{}{"user_id": userID})
		return Session{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(m.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	application.LogInfo(ctx, m.logger, "session started", map[string]interface{}{"user_id": userID})
	return session, nil
}

// Current returns the session referenced by the request cookie.
func (m *Manager) Current(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(m.cookie.Name)
	if err != nil || cookie.Value == "" {
		return Session{}, ErrSessionNotFound
	}
	return m.store.Get(r.Context(), cookie.Value)
}

// End deletes the current session, if any, and expires the cookie.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) error {
	defer m.clearCookie(w)

	cookie, err := r.Cookie(m.cookie.Name)
	if err != nil || cookie.Value == "" {
		return nil
	}
	if err := m.store.Delete(r.Context(), cookie.Value); err != nil {
		application.LogError(r.Context(), m.logger, "failed to delete session", err, nil)
		return err
	}
	application.LogInfo(r.Context(), m.logger, "session ended", nil)
	return nil
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type userIDKey struct{}

func UserIDFrom(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// Require rejects requests without a live session with 401 and exposes
// the session's user id through UserIDFrom.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Current(r)
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) {
				application.LogError(r.Context(), m.logger, "failed to load session", err, nil)
			}
			httpx.WriteError(w, ErrSessionNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), session.UserID)))
	})
}
