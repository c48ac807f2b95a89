// README: Generation lock tests against a live Redis.
package generation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippo/internal/testutil"
)

func TestLocker_SingleHolderPerUser(t *testing.T) {
	locker := NewLocker(testutil.NewRedis(t), time.Minute)
	ctx := context.Background()

	first, err := locker.Acquire(ctx, "u1")
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "u1")
	assert.ErrorIs(t, err, ErrInFlight)

	other, err := locker.Acquire(ctx, "u2")
	require.NoError(t, err)
	require.NoError(t, locker.Release(ctx, other))

	require.NoError(t, locker.Release(ctx, first))
	again, err := locker.Acquire(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, locker.Release(ctx, again))
}

func TestLocker_ReleaseIgnoresForeignToken(t *testing.T) {
	client := testutil.NewRedis(t)
	locker := NewLocker(client, time.Minute)
	ctx := context.Background()

	held, err := locker.Acquire(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, locker.Release(ctx, &Lock{key: lockKey("u1"), token: "stale"}))
	val, err := client.Get(ctx, lockKey("u1")).Result()
	require.NoError(t, err)
	assert.Equal(t, held.token, val)
}

func TestLocker_Expires(t *testing.T) {
	locker := NewLocker(testutil.NewRedis(t), 200*time.Millisecond)
	ctx := context.Background()

	_, err := locker.Acquire(ctx, "u1")
	require.NoError(t, err)
	time.Sleep(400 * time.Millisecond)

	_, err = locker.Acquire(ctx, "u1")
	assert.NoError(t, err)
}

func TestLockKey(t *testing.T) {
	assert.Equal(t, "generation:user:abc:lock", lockKey("abc"))
	assert.Nil(t, NewLocker(nil, 0).Release(context.Background(), nil))
	assert.Equal(t, DefaultTTL, NewLocker(nil, 0).ttl)
}
