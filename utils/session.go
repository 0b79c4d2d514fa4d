package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionTTL = 30 * 24 * time.Hour

/*

SessionStore is the session resolver: it maps an opaque token, minted at
login, to the authenticated user's id. Tokens carry no structure; revoking
one is a plain delete. The TTL slides forward on every successful resolve.

*/

type SessionStore interface {
	Create(ctx context.Context, userId string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(addr string, password string) *RedisSessionStore {
	return &RedisSessionStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *RedisSessionStore) Create(ctx context.Context, userId string) (string, error) {
	token := uuid.New().String()
	if err := s.client.Set(ctx, sessionKey(token), userId, sessionTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisSessionStore) Resolve(ctx context.Context, token string) (string, error) {
	userId, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	s.client.Expire(ctx, sessionKey(token), sessionTTL)
	return userId, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// FakeSessionStore is an in-memory stand-in used by tests and local runs
// without a redis instance.
type FakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{sessions: map[string]string{}}
}

func (s *FakeSessionStore) Create(ctx context.Context, userId string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.New().String()
	s.sessions[token] = userId
	return token, nil
}

func (s *FakeSessionStore) Resolve(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[token], nil
}

func (s *FakeSessionStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
