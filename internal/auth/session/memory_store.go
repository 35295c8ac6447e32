package session

import (
	"context"
	"sync"
	"time"

	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
)

type InMemoryStore struct {
	mu          sync.Mutex
	sessions    map[string]Session
	ttl         time.Duration
	idGenerator pkgDomain.IDGenerator[string]
	now         func() time.Time
}

func NewInMemoryStore(ttl time.Duration, idGenerator pkgDomain.IDGenerator[string]) *InMemoryStore {
	return &InMemoryStore{
		sessions:    make(map[string]Session),
		ttl:         ttl,
		idGenerator: idGenerator,
		now:         time.Now,
	}
}

func (s *InMemoryStore) Create(ctx context.Context, userID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := Session{
		ID:        s.idGenerator(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.sessions[session.ID] = session
	return session, nil
}

// Get drops the session when it has expired.
func (s *InMemoryStore) Get(ctx context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if !s.now().Before(session.ExpiresAt) {
		delete(s.sessions, id)
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
