// Package redis provides the Redis-backed prep execution lease
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/internal/infrastructure/config"
	"github.com/trayline/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// NewClient opens the Redis connection used for the execution lease.
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.Database,
		DialTimeout: cfg.Redis.DialTimeout,
		PoolSize:    cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// ExecutionLocker implements the (slot, day) lease with redislock. Holding
// the lease keeps a second scheduler instance from starting the same run;
// the execution record's unique index remains the final backstop.
type ExecutionLocker struct {
	locker *redislock.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewExecutionLocker creates a Redis-backed execution locker
func NewExecutionLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) outbound.ExecutionLocker {
	return &ExecutionLocker{
		locker: redislock.New(client),
		ttl:    ttl,
		logger: logger.Named("execution-locker"),
	}
}

// Lock acquires the lease for the slot and day. No retries: a held lease
// means another scheduler owns the run.
func (l *ExecutionLocker) Lock(ctx context.Context, slot prep.Slot, day time.Time) (func(), error) {
	key := fmt.Sprintf("trayline:prep-lease:%s:%s", slot, day.Format("2006-01-02"))

	lock, err := l.locker.Obtain(ctx, key, l.ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, prep.ErrAlreadyExecuted
		}
		return nil, fmt.Errorf("obtain prep lease: %w", err)
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warn("Failed to release prep lease", zap.String("key", key), zap.Error(err))
		}
	}
	return release, nil
}

// NoopLocker satisfies the locker port for single-instance deployments
// where Redis is not configured. It grants every lease.
type NoopLocker struct{}

// NewNoopLocker creates a locker that always grants the lease
func NewNoopLocker() outbound.ExecutionLocker {
	return NoopLocker{}
}

// Lock implements outbound.ExecutionLocker
func (NoopLocker) Lock(ctx context.Context, slot prep.Slot, day time.Time) (func(), error) {
	return func() {}, nil
}
