package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/notification-extension/internal/job"
	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/network"
)

// chanReader отдаёт сообщения из слайса, затем блокируется до отмены ctx.
type chanReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []kafka.Message
	fetchErr  error
}

func (r *chanReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if r.fetchErr != nil {
		err := r.fetchErr
		r.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *chanReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *chanReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

type captureWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

// extFunc — Extension из функции.
type extFunc func(ctx context.Context, req models.Request) models.Content

func (f extFunc) DidReceive(ctx context.Context, req models.Request) models.Content { return f(ctx, req) }

func wakeupValue(t *testing.T, identifier string, user uuid.UUID) []byte {
	t.Helper()
	b, err := json.Marshal(models.Request{
		Identifier: identifier,
		UserInfo: json.RawMessage(`{"data":{"user":"` + user.String() +
			`","data":{"id":"` + uuid.NewString() + `"}}}`),
	})
	require.NoError(t, err)
	return b
}

func TestHandle_PublishesContent(t *testing.T) {
	t.Parallel()

	user := uuid.New()
	w := &captureWriter{}
	var seenRID string
	var hasDeadline bool

	c := NewConsumer(&chanReader{}, w, extFunc(func(ctx context.Context, req models.Request) models.Content {
		seenRID = network.RequestIDFrom(ctx)
		_, hasDeadline = ctx.Deadline()
		return models.Content{Title: "Wire", Body: "test123", ThreadID: "conv"}
	}), time.Second)

	err := c.Handle(context.Background(), kafka.Message{Value: wakeupValue(t, "req-1", user)})
	require.NoError(t, err)
	require.Equal(t, "req-1", seenRID)
	require.True(t, hasDeadline)

	require.Len(t, w.msgs, 1)
	require.Equal(t, user.String(), string(w.msgs[0].Key))

	var n Notification
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &n))
	require.Equal(t, "req-1", n.Identifier)
	require.Equal(t, user.String(), n.UserID)
	require.Equal(t, "test123", n.Body)
	require.Equal(t, "conv", n.ThreadID)
	require.False(t, n.RenderedAt.IsZero())
}

func TestHandle_EmptyContentNotPublished(t *testing.T) {
	t.Parallel()

	w := &captureWriter{}
	c := NewConsumer(&chanReader{}, w, extFunc(func(context.Context, models.Request) models.Content {
		return models.EmptyContent()
	}), 0)

	require.NoError(t, c.Handle(context.Background(), kafka.Message{Value: wakeupValue(t, "req-1", uuid.New())}))
	require.Empty(t, w.msgs)
}

func TestHandle_IdentifierFromOffset(t *testing.T) {
	t.Parallel()

	var got string
	c := NewConsumer(&chanReader{}, &captureWriter{}, extFunc(func(_ context.Context, req models.Request) models.Content {
		got = req.Identifier
		return models.EmptyContent()
	}), 0)

	msg := kafka.Message{Topic: "wakeups", Partition: 2, Offset: 17, Value: wakeupValue(t, "", uuid.New())}
	require.NoError(t, c.Handle(context.Background(), msg))
	require.Equal(t, "wakeups/2/17", got)
}

func TestHandle_InvalidMessages(t *testing.T) {
	t.Parallel()

	called := false
	c := NewConsumer(&chanReader{}, &captureWriter{}, extFunc(func(context.Context, models.Request) models.Content {
		called = true
		return models.EmptyContent()
	}), 0)

	err := c.Handle(context.Background(), kafka.Message{Value: []byte(`{`)})
	require.ErrorIs(t, err, ErrInvalidWakeup)

	err = c.Handle(context.Background(), kafka.Message{Value: []byte(`{"identifier":"x","user_info":{}}`)})
	require.ErrorIs(t, err, job.ErrMalformedPushPayload)
	require.False(t, called)
}

func TestHandle_PublishError(t *testing.T) {
	t.Parallel()

	w := &captureWriter{err: errors.New("broker down")}
	c := NewConsumer(&chanReader{}, w, extFunc(func(context.Context, models.Request) models.Content {
		return models.Content{Body: "x"}
	}), 0)

	err := c.Handle(context.Background(), kafka.Message{Value: wakeupValue(t, "r", uuid.New())})
	require.Error(t, err)
	require.Contains(t, err.Error(), "broker down")
}

func TestRun_CommitsEveryMessageAndStopsOnCancel(t *testing.T) {
	t.Parallel()

	r := &chanReader{msgs: []kafka.Message{
		{Value: wakeupValue(t, "a", uuid.New())},
		{Value: []byte(`not json`)},
		{Value: wakeupValue(t, "b", uuid.New())},
	}}
	w := &captureWriter{}
	c := NewConsumer(r, w, extFunc(func(context.Context, models.Request) models.Content {
		return models.Content{Body: "hi"}
	}), 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return r.commits() == 3 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	require.Len(t, w.msgs, 2)
}

func TestRun_FetchErrorIsReturned(t *testing.T) {
	t.Parallel()

	c := NewConsumer(&chanReader{fetchErr: errors.New("rebalance failed")}, &captureWriter{}, extFunc(func(context.Context, models.Request) models.Content {
		return models.EmptyContent()
	}), 0)

	err := c.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "rebalance failed")
}
