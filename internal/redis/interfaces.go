package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquirePlaybackLock(ctx context.Context, code string, ttl time.Duration) (bool, error)
	RefreshPlaybackLock(ctx context.Context, code string, ttl time.Duration) (bool, error)
	ReleasePlaybackLock(ctx context.Context, code string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface = (*LockStore)(nil)
)
