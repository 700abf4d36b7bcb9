//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7-alpine"

// RedisContainer backs the issue-code and site-config store tests.
type RedisContainer struct {
	Container *tcredis.RedisContainer
	URL       string
	Client    *redis.Client
}

// NewRedisContainer starts a disposable Redis and returns a pinged client.
// Any failure stops the calling test.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	rc := &RedisContainer{}
	var err error
	rc.Container, err = tcredis.Run(ctx, redisImage)
	require.NoError(t, err, "start redis")

	ok := false
	defer func() {
		if !ok {
			rc.terminate(ctx)
		}
	}()

	rc.URL, err = rc.Container.ConnectionString(ctx)
	require.NoError(t, err, "redis connection string")
	opts, err := redis.ParseURL(rc.URL)
	require.NoError(t, err, "parse redis URL")
	rc.Client = redis.NewClient(opts)
	require.NoError(t, rc.Client.Ping(ctx).Err(), "ping redis")

	ok = true
	return rc
}

func (r *RedisContainer) terminate(ctx context.Context) {
	if r.Client != nil {
		_ = r.Client.Close()
	}
	_ = r.Container.Terminate(ctx)
}

// FlushAll empties the database between tests.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}
