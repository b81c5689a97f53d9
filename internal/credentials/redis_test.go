package credentials

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты RedisStore: поднимают redis:7-alpine через testcontainers-go.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/credentials -v -race -count=1

func startRedis(t *testing.T) (*RedisStore, func()) {
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

	st, err := NewRedisStore(ctx, fmt.Sprintf("redis://%s:%s/0", host, port.Port()), "test:")
	require.NoError(t, err)

	cleanup := func() {
		_ = st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

func TestIntegration_RedisStore_RoundTrip(t *testing.T) {
	st, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	id := uuid.New()

	_, err := st.Cookie(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.SetCookie(ctx, id, "zuid=abc", time.Hour))
	got, err := st.Cookie(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "zuid=abc", got)

	ttl, err := st.rdb.TTL(ctx, st.key(id)).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	require.NoError(t, st.DeleteCookie(ctx, id))
	_, err = st.Cookie(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIntegration_RedisStore_PingAndSharedClient(t *testing.T) {
	st, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.Ping(ctx))

	id := uuid.New()
	require.NoError(t, st.SetCookie(ctx, id, "zuid=shared", 0))
	got, err := st.Client().Get(ctx, "test:cookie:"+id.String()).Result()
	require.NoError(t, err)
	require.Equal(t, "zuid=shared", got)
}

func TestIntegration_RedisStore_InvalidInput(t *testing.T) {
	st, cleanup := startRedis(t)
	defer cleanup()

	require.ErrorIs(t, st.SetCookie(context.Background(), uuid.Nil, "c", 0), ErrInvalidInput)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisStore(context.Background(), "://bad", "")
	require.Error(t, err)
}
