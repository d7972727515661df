package redis

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/pribylovaa/go-board/internal/storage"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты буфера дельт на реальном Redis (redis:7-alpine).
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/redis -v -race -count=1

func startRedis(t *testing.T) (*DeltaStore, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	d, err := New(ctx, fmt.Sprintf("redis://%s:%s/0", host, port.Port()), "")
	require.NoError(t, err)

	cleanup := func() {
		_ = d.Close()
		_ = c.Terminate(context.Background())
	}
	return d, cleanup
}

func TestIntegration_AddPendingSettle(t *testing.T) {
	d, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Add(ctx, 7, 1))
	}
	require.NoError(t, d.Add(ctx, 7, -1))
	require.NoError(t, d.Add(ctx, 8, 1))
	require.NoError(t, d.Add(ctx, 8, -1))

	pending, err := d.Pending(ctx)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{7: 2}, pending, "zero net delta is not surfaced")

	// приращение между чтением и settle не теряется
	require.NoError(t, d.Add(ctx, 7, 1))
	require.NoError(t, d.Settle(ctx, 7, 2))

	pending, err = d.Pending(ctx)
	require.NoError(t, err)
	require.Equal(t, map[int64]int64{7: 1}, pending)

	require.NoError(t, d.Settle(ctx, 7, 1))
	n, err := d.rdb.HLen(ctx, d.key).Result()
	require.NoError(t, err)
	require.Zero(t, n, "settled field is removed")
}

func TestIntegration_ConcurrentAdds_NoLostUpdates(t *testing.T) {
	d, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			delta := int64(1)
			if i%5 == 0 {
				delta = -1
			}
			_ = d.Add(ctx, 1, delta)
		}(i)
	}
	wg.Wait()

	pending, err := d.Pending(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(30), pending[1])
}

func TestIntegration_ClosedClient_Unavailable(t *testing.T) {
	d, cleanup := startRedis(t)
	defer cleanup()

	require.NoError(t, d.Close())
	err := d.Add(context.Background(), 1, 1)
	require.ErrorIs(t, err, storage.ErrUnavailable)
}
