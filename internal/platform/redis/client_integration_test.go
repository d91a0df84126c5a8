//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"looview/internal/platform/config"
	"looview/internal/platform/redis"
	"looview/pkg/testutil/containers"
)

func TestNewConnectsAndReportsHealth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)

	client, err := redis.New(context.Background(), config.RedisConfig{
		URL:         rc.Addr,
		PoolSize:    2,
		DialTimeout: 5 * time.Second,
		ReadTimeout: time.Second,
	})
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.Health(context.Background()))
}
