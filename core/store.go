package core

import "context"

// SessionStore persists an ordered message log per session key with a bounded
// length and a time-to-live. All reads and writes are scoped to a single key;
// there is no cross-session visibility.
//
// Contract:
//   - Append stamps a server-side timestamp, enforces the length bound by
//     evicting oldest entries first (FIFO) and (re)applies the TTL.
//   - ReadAll returns the full transcript in insertion order; a missing or
//     expired key yields an empty slice, not an error.
//   - ReadRecent returns the last n messages of ReadAll.
//   - Delete is idempotent; deleting a non-existent key succeeds.
//   - RefreshTTL resets the expiry countdown without mutating content.
//   - Ping is a liveness probe independent of any session key.
//
// Every operation must degrade to an empty / no-op result with an error
// wrapping ErrStoreUnavailable rather than a fatal failure: conversational
// continuity is a quality-of-service feature, not a correctness requirement
// of a single turn.
type SessionStore interface {
	Append(ctx context.Context, key string, msg Message) error
	ReadAll(ctx context.Context, key string) ([]Message, error)
	ReadRecent(ctx context.Context, key string, n int) ([]Message, error)
	Delete(ctx context.Context, key string) error
	RefreshTTL(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
