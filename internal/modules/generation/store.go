// README: Per-user generation lock backed by Redis SETNX.
package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrInFlight is returned while another generation for the same user holds the lock.
var ErrInFlight = errors.New("generation already in progress")

const (
	lockKeyPattern = "generation:user:%s:lock"
	// DefaultTTL outlives one full retry cycle so a crashed holder cannot block the user forever.
	DefaultTTL = 3 * time.Minute
)

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type Locker struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Locker{redis: client, ttl: ttl}
}

// Lock is a held generation slot.
type Lock struct {
	key   string
	token string
}

func (l *Locker) Acquire(ctx context.Context, uid string) (*Lock, error) {
	lock := &Lock{key: lockKey(uid), token: uuid.NewString()}
	ok, err := l.redis.SetNX(ctx, lock.key, lock.token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire generation lock: %w", err)
	}
	if !ok {
		return nil, ErrInFlight
	}
	return lock, nil
}

// Release frees lock if it has not expired and been taken by someone else.
func (l *Locker) Release(ctx context.Context, lock *Lock) error {
	if lock == nil {
		return nil
	}
	return releaseScript.Run(ctx, l.redis, []string{lock.key}, lock.token).Err()
}

func lockKey(uid string) string {
	return fmt.Sprintf(lockKeyPattern, uid)
}
