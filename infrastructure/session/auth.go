package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// AuthSessions binds a session id to a signed-in user id. Kept separate
// from the domain session slots: the binding is an API concern read by the
// session middleware on every request.
type AuthSessions interface {
	UserID(ctx context.Context, sessionID string) (string, error)
	SignIn(ctx context.Context, sessionID, userID string) error
	SignOut(ctx context.Context, sessionID string) error
}

type RedisAuthSessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAuthSessions(client *redis.Client, ttl time.Duration) *RedisAuthSessions {
	return &RedisAuthSessions{client: client, ttl: ttl}
}

func userKey(sessionID string) string {
	return "session:" + sessionID + ":user"
}

func (s *RedisAuthSessions) UserID(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, userKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session user: %w", err)
	}
	return userID, nil
}

func (s *RedisAuthSessions) SignIn(ctx context.Context, sessionID, userID string) error {
	return s.client.Set(ctx, userKey(sessionID), userID, s.ttl).Err()
}

func (s *RedisAuthSessions) SignOut(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, userKey(sessionID)).Err()
}

var _ AuthSessions = (*RedisAuthSessions)(nil)

// MemoryAuthSessions is the test double.
type MemoryAuthSessions struct {
	mu    sync.RWMutex
	users map[string]string
}

func NewMemoryAuthSessions() *MemoryAuthSessions {
	return &MemoryAuthSessions{users: make(map[string]string)}
}

func (s *MemoryAuthSessions) UserID(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[sessionID], nil
}

func (s *MemoryAuthSessions) SignIn(ctx context.Context, sessionID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[sessionID] = userID
	return nil
}

func (s *MemoryAuthSessions) SignOut(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, sessionID)
	return nil
}

var _ AuthSessions = (*MemoryAuthSessions)(nil)
