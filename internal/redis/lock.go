package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

func playbackKey(code string) string {
	return fmt.Sprintf("lock:playback:%s", code)
}

// AcquirePlaybackLock attempts to take the playback lock for a booking.
// Returns true if the lock was acquired, false if another instance holds it.
func (s *LockStore) AcquirePlaybackLock(ctx context.Context, code string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, playbackKey(code), "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// RefreshPlaybackLock extends the lock TTL. Returns false if the lock expired.
func (s *LockStore) RefreshPlaybackLock(ctx context.Context, code string, ttl time.Duration) (bool, error) {
	return s.client.Expire(ctx, playbackKey(code), ttl).Result()
}

// ReleasePlaybackLock releases the playback lock for a booking.
func (s *LockStore) ReleasePlaybackLock(ctx context.Context, code string) error {
	return s.client.Del(ctx, playbackKey(code)).Err()
}
