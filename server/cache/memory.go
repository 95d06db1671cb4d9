package cache

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
		done:     make(chan struct{}),
	}

	go s.cleanupSessions()

	return s
}

// MemoryStore keeps sessions in process memory and forgets them after ttl without writes.
type MemoryStore struct {
	ttl      time.Duration
	mu       sync.Mutex
	sessions map[string]*memorySession
	done     chan struct{}
	once     sync.Once
}

type memorySession struct {
	groups    map[Group]map[string]string
	expiresAt time.Time
}

func (s *MemoryStore) SetGroup(_ context.Context, sessionID string, group Group, values map[string]string) error {
	if err := ValidateGroup(group, values); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session(sessionID)
	session.groups[group] = maps.Clone(values)
	session.expiresAt = s.expiry()
	return nil
}

func (s *MemoryStore) Group(_ context.Context, sessionID string, group Group) (map[string]string, bool, error) {
	if !group.Valid() {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownGroup, group)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.expired() {
		return nil, false, nil
	}
	values, ok := session.groups[group]
	if !ok {
		return nil, false, nil
	}
	return maps.Clone(values), true, nil
}

func (s *MemoryStore) ClearGroups(_ context.Context, sessionID string, groups ...Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	for _, group := range groups {
		delete(session.groups, group)
	}
	return nil
}

func (s *MemoryStore) ClearSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *MemoryStore) session(sessionID string) *memorySession {
	session, ok := s.sessions[sessionID]
	if !ok || session.expired() {
		session = &memorySession{
			groups: make(map[Group]map[string]string),
		}
		s.sessions[sessionID] = session
	}
	return session
}

func (s *MemoryStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(s.ttl)
}

func (m *memorySession) expired() bool {
	return !m.expiresAt.IsZero() && m.expiresAt.Before(time.Now())
}

func (s *MemoryStore) cleanupSessions() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.doCleanupSessions()
		}
	}
}

func (s *MemoryStore) doCleanupSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if session.expired() {
			delete(s.sessions, id)
		}
	}
}
