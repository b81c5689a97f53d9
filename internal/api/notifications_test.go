package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/credentials"
	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/network"
	"github.com/stretchr/testify/require"
)

const exampleEventJSON = `{"id":"96188b94-2a8e-11ed-8002-124b5cbe3b2d","payload":[{"conversation":"d7174dca-488b-463b-bb64-2c2bec442deb","data":{"data":"","recipient":"fd27d34a62e5980","sender":"b7d8296a54a59151","text":"owABAaEAWCC4Yoo+oc7/JLSHCih1oLjWah7e/A2amSVaeCX+Om4cngJYbwGlAFC/I/Rp7dx7VX5rGMfnxKV2AQACAQOhAFggxRJFDfIG6ds7GC90UZKoaBVgJrRQvqHGqh2xqS8eHeMEWC/W/eip/c2hCxfsF/Re5luDuINPLPEG+ErdhPFlQTjJFoDTtXutaXwkr8qVa+XeVQ=="},"from":"16b0c8ed-2026-4643-8c6e-4b7b7160890b","qualified_conversation":{"domain":"wire.com","id":"d7174dca-488b-463b-bb64-2c2bec442deb"},"qualified_from":{"domain":"wire.com","id":"16b0c8ed-2026-4643-8c6e-4b7b7160890b"},"time":"2022-09-02T07:12:21.023Z","type":"conversation.otr-message-add"}]}`

var exampleEventID = uuid.MustParse("96188b94-2a8e-11ed-8002-124b5cbe3b2d")

func TestNotificationByIDEndpoint_RequestPath(t *testing.T) {
	t.Parallel()

	e := NewNotificationByIDEndpoint(uuid.MustParse("16B0C8ed-2026-4643-8c6e-4b7b7160890b"))
	req := e.Request()
	require.Equal(t, "/notifications/16b0c8ed-2026-4643-8c6e-4b7b7160890b", req.Path)
	require.Equal(t, http.MethodGet, req.Method)
	require.False(t, req.SendCookie)
}

func TestNotificationByIDEndpoint_ParseSuccess(t *testing.T) {
	t.Parallel()

	e := NewNotificationByIDEndpoint(exampleEventID)
	ev, err := e.ParseResponse(success(exampleEventJSON))
	require.NoError(t, err)

	require.Equal(t, exampleEventID, ev.ID)
	require.Equal(t, models.EventOTRMessageAdd, ev.Type())
	require.False(t, ev.Decrypted)

	conv, ok := ev.ConversationID()
	require.True(t, ok)
	require.Equal(t, uuid.MustParse("d7174dca-488b-463b-bb64-2c2bec442deb"), conv)

	data, err := ev.OTRData()
	require.NoError(t, err)
	require.NotEmpty(t, data.Text)
}

func TestNotificationByIDEndpoint_ConversationFallback(t *testing.T) {
	t.Parallel()

	body := `{"id":"96188b94-2a8e-11ed-8002-124b5cbe3b2d","payload":[{"type":"conversation.member-join","conversation":"d7174dca-488b-463b-bb64-2c2bec442deb"}]}`
	ev, err := NewNotificationByIDEndpoint(exampleEventID).ParseResponse(success(body))
	require.NoError(t, err)

	conv, ok := ev.ConversationID()
	require.True(t, ok)
	require.Equal(t, uuid.MustParse("d7174dca-488b-463b-bb64-2c2bec442deb"), conv)
}

func TestNotificationByIDEndpoint_IDCaseInsensitive(t *testing.T) {
	t.Parallel()

	body := `{"id":"96188B94-2A8E-11ED-8002-124B5CBE3B2D","payload":[{"type":"conversation.member-join"}]}`
	_, err := NewNotificationByIDEndpoint(exampleEventID).ParseResponse(success(body))
	require.NoError(t, err)
}

func TestNotificationByIDEndpoint_IncorrectEvent(t *testing.T) {
	t.Parallel()

	_, err := NewNotificationByIDEndpoint(uuid.New()).ParseResponse(success(exampleEventJSON))
	require.ErrorIs(t, err, ErrIncorrectEvent)
}

func TestNotificationByIDEndpoint_DecodeFailures(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"",
		"{",
		`{"payload":[{"type":"x"}]}`,
		`{"id":"not-a-uuid","payload":[{"type":"x"}]}`,
		`{"id":"96188b94-2a8e-11ed-8002-124b5cbe3b2d","payload":["str"]}`,
	}

	for _, b := range bodies {
		_, err := NewNotificationByIDEndpoint(exampleEventID).ParseResponse(success(b))
		require.ErrorIs(t, err, ErrFailedToDecodePayload, "body %q", b)
	}
}

func TestNotificationByIDEndpoint_EmptyPayload_NotFound(t *testing.T) {
	t.Parallel()

	_, err := NewNotificationByIDEndpoint(exampleEventID).ParseResponse(success(`{"id":"96188b94-2a8e-11ed-8002-124b5cbe3b2d","payload":[]}`))
	require.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationByIDEndpoint_Failures(t *testing.T) {
	t.Parallel()

	e := NewNotificationByIDEndpoint(uuid.New())

	_, err := e.ParseResponse(models.Failed(models.ErrorResponse{Code: 404, Label: "not-found", Message: "error"}))
	require.ErrorIs(t, err, ErrNotificationNotFound)

	resp := models.ErrorResponse{Code: 500, Label: "server-error", Message: "error"}
	_, err = e.ParseResponse(models.Failed(resp))

	var unknown *UnknownError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, resp, unknown.Response)
}

func TestNotificationsAPIClient_FetchEvent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/notifications/"+exampleEventID.String() {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":404,"label":"not-found","message":"nope"}`))
			return
		}
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(exampleEventJSON))
	}))
	defer srv.Close()

	ctx := context.Background()
	s, err := network.NewSession(ctx, uuid.New(), credentials.NewMemoryStore(), network.WithBaseURL(srv.URL), network.WithTransport(srv.Client()))
	require.NoError(t, err)
	s.SetAccessToken(models.AccessToken{Token: "tok", Type: "Bearer"})

	c := NewNotificationsAPIClient(s)

	ev, err := c.FetchEvent(ctx, exampleEventID)
	require.NoError(t, err)
	require.Equal(t, exampleEventID, ev.ID)

	_, err = c.FetchEvent(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotificationNotFound)
}
