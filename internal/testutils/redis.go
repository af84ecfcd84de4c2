// Package testutils provides shared helpers for integration tests
package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisImage is the image started when no TEST_REDIS_URL is given
const RedisImage = "redis:7-alpine"

// CreateTestRedisClient connects to TEST_REDIS_URL, or starts a throwaway
// Redis container. The test is skipped when neither is available.
func CreateTestRedisClient(t *testing.T) redis.UniversalClient {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	opts, err := redisOptions(ctx, t)
	if err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}
	// DB 15 keeps tests away from anything else on a shared server
	opts.DB = 15

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	require.NoError(t, client.FlushDB(ctx).Err(), "Failed to flush test Redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}

func redisOptions(ctx context.Context, t *testing.T) (*redis.Options, error) {
	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		return redis.ParseURL(url)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        RedisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		return nil, err
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		return nil, err
	}
	return &redis.Options{Addr: endpoint}, nil
}
