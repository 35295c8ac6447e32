package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
)

const keyPrefix = "session:"

// RedisStore keeps sessions as keys holding the user id, expired by Redis itself.
type RedisStore struct {
	client      redis.UniversalClient
	ttl         time.Duration
	idGenerator pkgDomain.IDGenerator[string]
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration, idGenerator pkgDomain.IDGenerator[string]) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, idGenerator: idGenerator}
}

func (s *RedisStore) Create(ctx context.Context, userID string) (Session, error) {
	session := Session{
		ID:        s.idGenerator(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.client.Set(ctx, keyPrefix+session.ID, userID, s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	pipe := s.client.Pipeline()
	userCmd := pipe.Get(ctx, keyPrefix+id)
	ttlCmd := pipe.PTTL(ctx, keyPrefix+id)
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	return Session{
		ID:        id,
		UserID:    userCmd.Val(),
		ExpiresAt: time.Now().Add(ttlCmd.Val()),
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
