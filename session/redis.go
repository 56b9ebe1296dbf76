package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/agendamesh/core"
)

// RedisStoreOptions configures a RedisStore instance.
type RedisStoreOptions struct {
	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string
	// TTL expires idle sessions. Zero keeps them forever.
	TTL time.Duration
}

// RedisStore persists schedules as JSON blobs in Redis so multiple assistant
// processes can share sessions.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore creates a session store backed by the given Redis client.
func NewRedisStore(client *redis.Client, optFns ...func(o *RedisStoreOptions)) *RedisStore {
	opts := RedisStoreOptions{
		KeyPrefix: "agendamesh:session:",
		TTL:       24 * time.Hour,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: opts.KeyPrefix,
		ttl:       opts.TTL,
	}
}

// Get loads and decodes the schedule stored for the session.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*core.Schedule, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %q: %w", sessionID, err)
	}

	var sched core.Schedule
	if err := json.Unmarshal(payload, &sched); err != nil {
		return nil, fmt.Errorf("decoding session %q: %w", sessionID, err)
	}
	return &sched, nil
}

// Save encodes the schedule and writes it under the session key.
func (s *RedisStore) Save(ctx context.Context, sessionID string, schedule *core.Schedule) error {
	payload, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("encoding session %q: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing session %q: %w", sessionID, err)
	}
	return nil
}

func (s *RedisStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

var _ Store = (*RedisStore)(nil)
