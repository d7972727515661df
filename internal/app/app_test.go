package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-board/internal/config"
	"github.com/pribylovaa/go-board/internal/counter"
	"github.com/pribylovaa/go-board/internal/storage/memory"
)

func TestOpen_MemoryDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}

	d, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer d.Close()

	require.IsType(t, &memory.Storage{}, d.Storage)
	require.IsType(t, &counter.MemoryStore{}, d.Deltas)
	require.NoError(t, d.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, d.Ping(ctx))
}

func TestOpen_BadRedisURL(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Redis:   config.RedisConfig{RedisURL: "not-a-url", DeltaKey: "k"},
	}

	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
}
