package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl, pkgInfra.GenerateUUID), server
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, server := newRedisStore(t, 30*time.Minute)
	ctx := context.Background()

	session, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, server.Exists(keyPrefix+session.ID))
	assert.Equal(t, 30*time.Minute, server.TTL(keyPrefix+session.ID))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "user-1", got.UserID)
	assert.WithinDuration(t, session.ExpiresAt, got.ExpiresAt, 5*time.Second)
}

func TestRedisStoreMissingSession(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)

	_, err := store.Get(context.Background(), pkgInfra.GenerateUUID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreExpiresSessions(t *testing.T) {
	store, server := newRedisStore(t, time.Minute)
	ctx := context.Background()

	session, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	server.FastForward(59 * time.Second)
	_, err = store.Get(ctx, session.ID)
	require.NoError(t, err)

	server.FastForward(2 * time.Second)
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	store, server := newRedisStore(t, time.Minute)
	ctx := context.Background()

	session, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, session.ID))

	assert.False(t, server.Exists(keyPrefix+session.ID))
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, store.Delete(ctx, session.ID))
}

func TestRedisStoreUnreachableIsNotAuthFailure(t *testing.T) {
	store, server := newRedisStore(t, time.Minute)
	server.Close()

	_, err := store.Get(context.Background(), pkgInfra.GenerateUUID())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestRequireWithRedisStore(t *testing.T) {
	store, server := newRedisStore(t, time.Minute)
	manager := newManager(store)

	var seen string
	handler := manager.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFrom(r.Context())
	}))

	login := httptest.NewRecorder()
	_, err := manager.Start(context.Background(), login, "user-1")
	require.NoError(t, err)
	cookie := login.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-1", seen)

	server.FastForward(2 * time.Minute)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
