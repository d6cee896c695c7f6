package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"clinical-assistant/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisSessionKeyPrefix namespaces session records in Redis
const RedisSessionKeyPrefix = "session:"

// Interval between sweeps of expired in-memory sessions
const sessionCleanupInterval = 10 * time.Minute

// SessionStore maps session tokens to the signed-in identity.
// Find returns nil, nil for unknown or expired sessions.
type SessionStore interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

// =============================================================================
// In-memory store
// =============================================================================

// MemorySessionStore keeps sessions in process memory.
// Call Stop() during graceful shutdown.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
	now      func() time.Time
	log      *logrus.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewMemorySessionStore(log *logrus.Logger) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]entity.Session),
		now:      time.Now,
		log:      log,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *MemorySessionStore) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	stored := *session
	if ttl > 0 {
		stored.ExpiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.sessions[session.ID] = stored
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Find(ctx context.Context, id string) (*entity.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if session.IsExpired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, nil
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Stop ends the cleanup goroutine. Safe to call multiple times.
func (s *MemorySessionStore) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
	}
}

func (s *MemorySessionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.removeExpired()
		}
	}
}

func (s *MemorySessionStore) removeExpired() {
	now := s.now()
	var cleaned int

	s.mu.Lock()
	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
			cleaned++
		}
	}
	s.mu.Unlock()

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d expired sessions", cleaned)
	}
}

// =============================================================================
// Redis store
// =============================================================================

// RedisSessionStore shares sessions between server instances
type RedisSessionStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewRedisSessionStore(redisClient *redis.Client, log *logrus.Logger) *RedisSessionStore {
	return &RedisSessionStore{
		redisClient: redisClient,
		log:         log,
	}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	stored := *session
	if ttl > 0 {
		stored.ExpiresAt = time.Now().Add(ttl)
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}

	if err := s.redisClient.Set(ctx, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		s.log.Warnf("Failed to store session %s in Redis: %+v", session.ID, err)
		return fmt.Errorf("store session %s: %w", session.ID, err)
	}
	return nil
}

func (s *RedisSessionStore) Find(ctx context.Context, id string) (*entity.Session, error) {
	payload, err := s.redisClient.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.log.Warnf("Failed to load session %s from Redis: %+v", id, err)
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.redisClient.Del(ctx, sessionKey(id)).Err(); err != nil {
		s.log.Warnf("Failed to delete session %s from Redis: %+v", id, err)
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func sessionKey(id string) string {
	return RedisSessionKeyPrefix + id
}
