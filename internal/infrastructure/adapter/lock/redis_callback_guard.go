package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
)

const (
	keyPrefix  = "wallet:callback:"
	defaultTTL = 30 * time.Second
)

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCallbackGuard marks a callback authority as in flight with SET NX PX.
// Redis failures fail open: the caller proceeds and relies on the row lock.
type RedisCallbackGuard struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger coreport.Logger
}

// NewRedisCallbackGuard creates a guard; a non-positive ttl uses 30s
func NewRedisCallbackGuard(client redis.UniversalClient, ttl time.Duration, logger coreport.Logger) *RedisCallbackGuard {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCallbackGuard{client: client, ttl: ttl, logger: logger}
}

// Acquire tries to take the in-flight marker; release is never nil
func (g *RedisCallbackGuard) Acquire(ctx context.Context, authority string) (bool, func(), error) {
	key := keyPrefix + authority
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		g.logger.Warn("Callback guard unavailable, continuing without it", map[string]any{
			"authority": authority,
			"error":     err.Error(),
		})
		return true, func() {}, nil
	}
	if !ok {
		return false, func() {}, nil
	}

	release := func() {
		// The request context may already be done when the handler returns
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, g.client, []string{key}, token).Err(); err != nil {
			g.logger.Warn("Failed to release callback guard", map[string]any{
				"authority": authority,
				"error":     err.Error(),
			})
		}
	}
	return true, release, nil
}
