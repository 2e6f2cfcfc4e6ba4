package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore hands out per-browser slot storage.
// Key format: session:<session_id>:<slot>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps client. Slots expire ttl after their last write or
// read; defaultSessionTTL is used when ttl <= 0.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// For returns the storage of one browser session.
func (s *SessionStore) For(sessionID string) ports.SessionStorage {
	return &sessionSlots{store: s, sessionID: sessionID}
}

type sessionSlots struct {
	store     *SessionStore
	sessionID string
}

func (s *sessionSlots) Get(ctx context.Context, slot string) (string, bool, error) {
	v, err := s.store.client.GetEx(ctx, s.key(slot), s.store.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session slot get: %w", err)
	}
	return v, true, nil
}

func (s *sessionSlots) Set(ctx context.Context, slot, value string) error {
	if err := s.store.client.Set(ctx, s.key(slot), value, s.store.ttl).Err(); err != nil {
		return fmt.Errorf("session slot set: %w", err)
	}
	return nil
}

func (s *sessionSlots) Delete(ctx context.Context, slots ...string) error {
	if len(slots) == 0 {
		return nil
	}
	keys := make([]string, len(slots))
	for i, slot := range slots {
		keys[i] = s.key(slot)
	}
	if err := s.store.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session slot delete: %w", err)
	}
	return nil
}

func (s *sessionSlots) key(slot string) string {
	return fmt.Sprintf("session:%s:%s", s.sessionID, slot)
}
