package credentials

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	id := uuid.New()

	_, err := s.Cookie(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SetCookie(ctx, id, "zuid=abc", 0))
	got, err := s.Cookie(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "zuid=abc", got)

	require.NoError(t, s.DeleteCookie(ctx, id))
	_, err = s.Cookie(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	// повторное удаление — не ошибка.
	require.NoError(t, s.DeleteCookie(ctx, id))
}

func TestMemoryStore_TTLExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	id := uuid.New()
	require.NoError(t, s.SetCookie(ctx, id, "c", time.Minute))

	_, err := s.Cookie(ctx, id)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = s.Cookie(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_InvalidInput(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	require.ErrorIs(t, s.SetCookie(context.Background(), uuid.Nil, "c", 0), ErrInvalidInput)
	require.ErrorIs(t, s.SetCookie(context.Background(), uuid.New(), "", 0), ErrInvalidInput)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Cookie(ctx, uuid.New())
	require.ErrorIs(t, err, context.Canceled)
}
