package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
)

// Redis key prefix for session transcripts.
const sessionKeyPrefix = "chat_session:"

// RedisStore is a core.SessionStore backed by Redis. The whole transcript is
// stored as one JSON value per session key with a native TTL, so expiry needs
// no application-side sweeping. All transport failures are wrapped with
// core.ErrStoreUnavailable so callers can degrade to stateless operation.
type RedisStore struct {
	client      *redis.Client
	ttl         time.Duration
	maxMessages int
	logger      logging.Logger
}

var _ core.SessionStore = (*RedisStore)(nil)

// RedisOptions configures the Redis-backed store.
type RedisOptions struct {
	TTL         time.Duration
	MaxMessages int
	Logger      logging.Logger
}

// NewRedisStore creates a session store over an existing Redis client.
func NewRedisStore(client *redis.Client, optFns ...func(o *RedisOptions)) *RedisStore {
	opts := RedisOptions{
		TTL:         time.Hour,
		MaxMessages: 20,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &RedisStore{
		client:      client,
		ttl:         opts.TTL,
		maxMessages: opts.MaxMessages,
		logger:      opts.Logger,
	}
}

// Append adds one message, stamps the server-side timestamp, enforces the
// length bound and rewrites the transcript with a fresh TTL.
func (s *RedisStore) Append(ctx context.Context, key string, msg core.Message) error {
	log, err := s.ReadAll(ctx, key)
	if err != nil {
		return err
	}

	msg.Timestamp = time.Now().UTC()
	log = append(log, msg)
	if over := len(log) - s.maxMessages; over > 0 {
		log = log[over:]
	}

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

// ReadAll returns the full transcript in insertion order. A missing or
// expired key yields an empty slice; a malformed payload is treated as an
// empty transcript rather than poisoning the session.
func (s *RedisStore) ReadAll(ctx context.Context, key string) ([]core.Message, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return []core.Message{}, nil
	}
	if err != nil {
		return []core.Message{}, storeErr(err)
	}

	var log []core.Message
	if err := json.Unmarshal([]byte(val), &log); err != nil {
		s.logger.Warn("discarding malformed transcript", "session_key", key, "error", err.Error())
		return []core.Message{}, nil
	}
	return log, nil
}

// ReadRecent returns the last n messages of the transcript.
func (s *RedisStore) ReadRecent(ctx context.Context, key string, n int) ([]core.Message, error) {
	log, err := s.ReadAll(ctx, key)
	if err != nil {
		return log, err
	}
	if len(log) > n {
		log = log[len(log)-n:]
	}
	return log, nil
}

// Delete removes the transcript. Deleting a non-existent key succeeds.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

// RefreshTTL resets the expiry countdown without mutating content. EXPIRE on
// a missing key is a no-op, matching the in-memory backend.
func (s *RedisStore) RefreshTTL(ctx context.Context, key string) error {
	if err := s.client.Expire(ctx, s.key(key), s.ttl).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

// Ping probes the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) key(sessionKey string) string { return sessionKeyPrefix + sessionKey }

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", core.ErrStoreUnavailable, err)
}
