package session

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hupe1980/tripmesh/core"
)

// Options holds configuration overrides shared by the store constructors.
type Options struct {
	// TTL is the session expiry countdown, refreshed on every append.
	TTL time.Duration
	// MaxMessages bounds the transcript length; oldest entries are evicted
	// first on overflow.
	MaxMessages int
	// CleanupInterval controls how often the in-memory backend purges
	// expired entries (ignored by the Redis backend, which expires natively).
	CleanupInterval time.Duration
}

func defaultOptions() Options {
	return Options{
		TTL:             time.Hour,
		MaxMessages:     20,
		CleanupInterval: 5 * time.Minute,
	}
}

// InMemoryStore is a process-local core.SessionStore backed by an expiring
// cache, giving it the same TTL behavior as the Redis store without an
// external dependency. Suited for tests, demos and single-node deployments.
type InMemoryStore struct {
	cache       *gocache.Cache
	ttl         time.Duration
	maxMessages int

	// mu serializes the read-modify-write cycle in Append and RefreshTTL;
	// the cache itself is already safe for concurrent access.
	mu sync.Mutex
}

var _ core.SessionStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{
		cache:       gocache.New(opts.TTL, opts.CleanupInterval),
		ttl:         opts.TTL,
		maxMessages: opts.MaxMessages,
	}
}

// Append adds one message, stamps the server-side timestamp, enforces the
// length bound and resets the TTL countdown.
func (s *InMemoryStore) Append(_ context.Context, key string, msg core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.read(key)
	msg.Timestamp = time.Now().UTC()
	log = append(log, msg)
	if over := len(log) - s.maxMessages; over > 0 {
		log = log[over:]
	}
	s.cache.Set(key, log, s.ttl)
	return nil
}

// ReadAll returns the full transcript in insertion order, or an empty slice
// for a missing or expired key.
func (s *InMemoryStore) ReadAll(_ context.Context, key string) ([]core.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(key), nil
}

// ReadRecent returns the last n messages of the transcript.
func (s *InMemoryStore) ReadRecent(ctx context.Context, key string, n int) ([]core.Message, error) {
	log, err := s.ReadAll(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(log) > n {
		log = log[len(log)-n:]
	}
	return log, nil
}

// Delete removes the transcript. Deleting a non-existent key succeeds.
func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(key)
	return nil
}

// RefreshTTL resets the expiry countdown without mutating content. A missing
// key is a no-op.
func (s *InMemoryStore) RefreshTTL(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.cache.Get(key); ok {
		s.cache.Set(key, v, s.ttl)
	}
	return nil
}

// Ping always reports healthy for the in-process backend.
func (s *InMemoryStore) Ping(context.Context) error { return nil }

// Close discards all sessions.
func (s *InMemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Flush()
	return nil
}

// read returns a defensive copy so callers cannot mutate the cached slice.
func (s *InMemoryStore) read(key string) []core.Message {
	v, ok := s.cache.Get(key)
	if !ok {
		return []core.Message{}
	}
	log, ok := v.([]core.Message)
	if !ok {
		return []core.Message{}
	}
	out := make([]core.Message, len(log))
	copy(out, log)
	return out
}
