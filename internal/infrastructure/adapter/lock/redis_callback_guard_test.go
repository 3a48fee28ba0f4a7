package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/logger"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCallbackGuard_AcquireAndRelease(t *testing.T) {
	mr, client := setupMiniredis(t)
	guard := NewRedisCallbackGuard(client, 10*time.Second, logger.NewNoopLogger())
	ctx := context.Background()

	acquired, release, err := guard.Acquire(ctx, "A1")
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.True(t, mr.Exists("wallet:callback:A1"))
	assert.Equal(t, 10*time.Second, mr.TTL("wallet:callback:A1"))

	second, secondRelease, err := guard.Acquire(ctx, "A1")
	require.NoError(t, err)
	assert.False(t, second)
	require.NotNil(t, secondRelease)
	secondRelease()
	assert.True(t, mr.Exists("wallet:callback:A1"), "losing caller must not delete the winner's marker")

	other, otherRelease, err := guard.Acquire(ctx, "B2")
	require.NoError(t, err)
	assert.True(t, other)
	otherRelease()

	release()
	assert.False(t, mr.Exists("wallet:callback:A1"))

	again, againRelease, err := guard.Acquire(ctx, "A1")
	require.NoError(t, err)
	assert.True(t, again)
	againRelease()
}

func TestRedisCallbackGuard_ExpiredMarkerIsNotDeletedByOldOwner(t *testing.T) {
	mr, client := setupMiniredis(t)
	guard := NewRedisCallbackGuard(client, time.Second, logger.NewNoopLogger())
	ctx := context.Background()

	_, staleRelease, err := guard.Acquire(ctx, "A1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	acquired, release, err := guard.Acquire(ctx, "A1")
	require.NoError(t, err)
	require.True(t, acquired)

	staleRelease()
	assert.True(t, mr.Exists("wallet:callback:A1"))
	release()
	assert.False(t, mr.Exists("wallet:callback:A1"))
}

func TestRedisCallbackGuard_FailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	guard := NewRedisCallbackGuard(client, 0, logger.NewNoopLogger())

	acquired, release, err := guard.Acquire(context.Background(), "A1")

	assert.NoError(t, err)
	assert.True(t, acquired)
	require.NotNil(t, release)
	release()
}
