package redis_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"concurrent-ledger/config"
	"concurrent-ledger/internal/adapter/storage/redis"
	"concurrent-ledger/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisConfigFor(t *testing.T, addr string) config.RedisConfig {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return config.RedisConfig{
		Host:        host,
		Port:        port,
		PoolSize:    4,
		DialTimeout: 2 * time.Second,
	}
}

func TestNewClient_ConnectsAndPings(t *testing.T) {
	mr := miniredis.RunT(t)
	log := logger.New("error", false)

	client, err := redis.NewClient(context.Background(), redisConfigFor(t, mr.Addr()), log)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	val, err := client.Get(context.Background(), "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestNewClient_FailsFastWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := redisConfigFor(t, mr.Addr())
	mr.Close()

	log := logger.New("error", false)
	_, err := redis.NewClient(context.Background(), cfg, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}
