package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/train-booking/pkg/infrastructure/zaplogger/adapter"
)

func newManager(store Store) *Manager {
	return NewManager(store, CookieConfig{TTL: time.Hour}, zapAdapter.NewZapAppLoggerFrom(zap.NewNop()))
}

func TestInMemoryStoreExpiresSessions(t *testing.T) {
	store := NewInMemoryStore(time.Minute, pkgInfra.GenerateUUID)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	session, err := store.Create(context.Background(), "user-1")
	require.NoError(t, err)

	got, err := store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRequireRejectsMissingSession(t *testing.T) {
	manager := newManager(NewInMemoryStore(time.Hour, pkgInfra.GenerateUUID))
	handler := manager.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/1", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, rr.Body.String())
}

func TestStartThenRequireExposesUserID(t *testing.T) {
	manager := newManager(NewInMemoryStore(time.Hour, pkgInfra.GenerateUUID))

	login := httptest.NewRecorder()
	_, err := manager.Start(context.Background(), login, "user-42")
	require.NoError(t, err)
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	var seen string
	handler := manager.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFrom(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "user-42", seen)
}

func TestEndDeletesSessionAndExpiresCookie(t *testing.T) {
	store := NewInMemoryStore(time.Hour, pkgInfra.GenerateUUID)
	manager := newManager(store)

	login := httptest.NewRecorder()
	session, err := manager.Start(context.Background(), login, "user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.AddCookie(login.Result().Cookies()[0])
	rr := httptest.NewRecorder()
	require.NoError(t, manager.End(rr, req))

	_, err = store.Get(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	require.Len(t, rr.Result().Cookies(), 1)
	assert.Equal(t, -1, rr.Result().Cookies()[0].MaxAge)
}
