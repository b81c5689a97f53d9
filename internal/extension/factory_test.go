package extension

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/calls"
	"github.com/pribylovaa/notification-extension/internal/credentials"
	"github.com/pribylovaa/notification-extension/internal/decoder"
	"github.com/pribylovaa/notification-extension/internal/decoder/decodertest"
	"github.com/pribylovaa/notification-extension/internal/job"
	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/network"
	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	"github.com/pribylovaa/notification-extension/internal/storage"
	"github.com/stretchr/testify/require"
)

const testMasterKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

// memEvents — in-memory EventStorage.
type memEvents struct {
	mu     sync.Mutex
	events map[[2]uuid.UUID]*models.StoredEvent
}

func newMemEvents() *memEvents {
	return &memEvents{events: make(map[[2]uuid.UUID]*models.StoredEvent)}
}

func (m *memEvents) SaveEvent(_ context.Context, ev *models.StoredEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := [2]uuid.UUID{ev.AccountID, ev.EventID}
	if _, ok := m.events[k]; ok {
		return storage.ErrAlreadyExists
	}
	m.events[k] = ev
	return nil
}

func (m *memEvents) EventByID(_ context.Context, account, id uuid.UUID) (*models.StoredEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[[2]uuid.UUID{account, id}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return ev, nil
}

func (m *memEvents) DeleteEventsBefore(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *memEvents) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

type captureReporter struct {
	mu  sync.Mutex
	got []models.VoIPPayload
}

func (r *captureReporter) Report(_ context.Context, p models.VoIPPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, p)
	return nil
}

// backend — фейковый REST API: /access по cookie, /notifications/{id} по токену.
type backend struct {
	cookie   string
	eventID  uuid.UUID
	eventRaw []byte
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/access":
		if r.Header.Get("Cookie") != b.cookie {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":403,"label":"invalid-credentials","message":"no"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":900}`))
	case "/notifications/" + b.eventID.String():
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"label":"missing-auth","message":"no"}`))
			return
		}
		_, _ = w.Write(b.eventRaw)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"label":"not-found","message":"no"}`))
	}
}

type fixture struct {
	factory  *Factory
	events   *memEvents
	reporter *captureReporter
	userID   uuid.UUID
	eventID  uuid.UUID
	conv     uuid.UUID
}

// newFixture поднимает backend, который отдаёт событие с зашифрованным message.
func newFixture(t *testing.T, message string, withCookie bool) *fixture {
	t.Helper()

	x, err := decoder.NewXChaChaDecrypter(testMasterKey)
	require.NoError(t, err)

	fx := &fixture{
		events:   newMemEvents(),
		reporter: &captureReporter{},
		userID:   uuid.New(),
		eventID:  uuid.New(),
		conv:     uuid.New(),
	}

	ct := decodertest.Seal(t, testMasterKey, fx.userID, []byte(message))

	data, err := json.Marshal(models.OTRData{Sender: "b7d8296a54a59151", Recipient: "fd27d34a62e5980", Text: ct})
	require.NoError(t, err)

	raw, err := json.Marshal(map[string]any{
		"id": fx.eventID.String(),
		"payload": []models.EventPayload{{
			Type:         models.EventOTRMessageAdd,
			Conversation: fx.conv.String(),
			From:         uuid.NewString(),
			Time:         "2022-09-02T07:12:21.023Z",
			Data:         data,
		}},
	})
	require.NoError(t, err)

	srv := httptest.NewServer(&backend{cookie: "zuid=abc", eventID: fx.eventID, eventRaw: raw})
	t.Cleanup(srv.Close)

	creds := credentials.NewMemoryStore()
	if withCookie {
		require.NoError(t, creds.SetCookie(context.Background(), fx.userID, "zuid=abc", time.Hour))
	}

	fx.factory = &Factory{
		Credentials: creds,
		Events:      fx.events,
		Decrypter:   x,
		Registry:    calls.NewMemoryRegistry(),
		Reporter:    fx.reporter,
		HTTPClient:  srv.Client(),
		BaseURL:     srv.URL,
		UserAgent:   "nse-test",
		Title:       "Wire",
	}

	return fx
}

func (fx *fixture) request() models.Request {
	return models.Request{
		Identifier: "req-1",
		UserInfo: json.RawMessage(`{"data":{"user":"` + fx.userID.String() +
			`","data":{"id":"` + fx.eventID.String() + `"}}}`),
	}
}

func TestFactory_TextMessageEndToEnd(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, `{"text":{"content":"test123"}}`, true)

	j, err := fx.factory.NewJob(context.Background(), fx.request())
	require.NoError(t, err)

	content, err := j.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.Content{Title: "Wire", Body: "test123", ThreadID: fx.conv.String()}, content)
	require.Equal(t, 1, fx.events.len())
	require.Empty(t, fx.reporter.got)
}

func TestFactory_CallMessageEndToEnd(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, `{"calling":{"content":"{\"type\":\"SETUP\",\"resp\":false}"}}`, true)

	j, err := fx.factory.NewJob(context.Background(), fx.request())
	require.NoError(t, err)

	content, err := j.Execute(context.Background())
	require.NoError(t, err)
	require.True(t, content.IsEmpty())
	require.Len(t, fx.reporter.got, 1)
	require.Equal(t, fx.userID, fx.reporter.got[0].AccountID)
	require.Equal(t, fx.conv, fx.reporter.got[0].ConversationID)
}

func TestFactory_NoCookieIsNotAuthenticated(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, `{"text":{"content":"x"}}`, false)

	j, err := fx.factory.NewJob(context.Background(), fx.request())
	require.NoError(t, err)

	_, err = j.Execute(context.Background())
	require.ErrorIs(t, err, job.ErrUserNotAuthenticated)
}

func TestFactory_ServiceEndToEnd(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, `{"knock":{}}`, true)
	svc, _ := newTestService(t, fx.factory, false)

	got := svc.DidReceive(context.Background(), fx.request())
	require.Equal(t, "pinged", got.Body)
}

func TestFactory_MalformedPayload(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, `{}`, true)
	_, err := fx.factory.NewJob(context.Background(), models.Request{UserInfo: json.RawMessage(`{}`)})
	require.ErrorIs(t, err, job.ErrMalformedPushPayload)
}

func TestFactory_Misconfigured(t *testing.T) {
	t.Parallel()

	f := &Factory{}
	_, err := f.NewJob(context.Background(), models.Request{})
	require.ErrorIs(t, err, ErrFactoryMisconfigured)
}

func TestFactory_LogsSessionWithoutSecrets(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, `{"text":{"content":"test123"}}`, true)

	var buf strings.Builder
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logctx.Into(context.Background(), log)

	base := fx.factory.HTTPClient.(*http.Client).Transport
	fx.factory.HTTPClient = network.NewHTTPClient(base, time.Second, log)

	j, err := fx.factory.NewJob(ctx, fx.request())
	require.NoError(t, err)
	_, err = j.Execute(ctx)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "job_created")
	require.Contains(t, out, "session.user_id="+fx.userID.String())
	require.Contains(t, out, "event_id="+fx.eventID.String())
	require.Contains(t, out, "session.authenticated=true")
	require.Contains(t, out, "authorization=\"Bearer [REDACTED_TOKEN]\"")
	require.Contains(t, out, "cookie=[REDACTED_COOKIE]")
	require.NotContains(t, out, "zuid=abc")
	require.NotContains(t, out, "Bearer tok")
}
