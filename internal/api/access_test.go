package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/credentials"
	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/network"
	"github.com/stretchr/testify/require"
)

func success(body string) models.NetworkResponse {
	return models.Succeeded(models.SuccessResponse{Status: 200, Data: []byte(body)})
}

func TestAccessTokenEndpoint_Request(t *testing.T) {
	t.Parallel()

	req := AccessTokenEndpoint{}.Request()
	require.Equal(t, "/access", req.Path)
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "application/json", req.ContentType)
	require.Equal(t, "application/json", req.AcceptType)
	require.True(t, req.SendCookie)
}

func TestAccessTokenEndpoint_ParseSuccess(t *testing.T) {
	t.Parallel()

	resp := success(`{"access_token":"abc","token_type":"Bearer","expires_in":900}`)
	tok, err := AccessTokenEndpoint{}.ParseResponse(resp)
	require.NoError(t, err)
	require.Equal(t, models.AccessToken{Token: "abc", Type: "Bearer", ExpiresIn: 900 * time.Second}, tok)

	// повторный разбор даёт тот же результат.
	again, err := AccessTokenEndpoint{}.ParseResponse(resp)
	require.NoError(t, err)
	require.Equal(t, tok, again)
}

func TestAccessTokenEndpoint_DecodeFailures(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"",
		"not json",
		`[]`,
		`{"token_type":"Bearer","expires_in":900}`,
		`{"access_token":"","token_type":"Bearer","expires_in":900}`,
		`{"access_token":"abc","expires_in":900}`,
		`{"access_token":"abc","token_type":"Bearer"}`,
		`{"access_token":"abc","token_type":"Bearer","expires_in":"soon"}`,
	}

	for _, b := range bodies {
		_, err := AccessTokenEndpoint{}.ParseResponse(success(b))
		require.ErrorIs(t, err, ErrFailedToDecodePayload, "body %q", b)
	}
}

func TestAccessTokenEndpoint_Failures(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"invalid-credentials", "", "anything"} {
		_, err := AccessTokenEndpoint{}.ParseResponse(models.Failed(models.ErrorResponse{Code: 403, Label: label, Message: "m"}))
		require.ErrorIs(t, err, ErrAuthentication)
	}

	resp := models.ErrorResponse{Code: 500, Label: "server-error", Message: "error"}
	_, err := AccessTokenEndpoint{}.ParseResponse(models.Failed(resp))

	var unknown *UnknownError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, resp, unknown.Response)
}

func TestAccessAPIClient_FetchAccessToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/access" || r.Header.Get("Cookie") != "zuid=c" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":403,"label":"invalid-credentials","message":"no"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":60}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	store := credentials.NewMemoryStore()
	uid := uuid.New()
	require.NoError(t, store.SetCookie(ctx, uid, "zuid=c", 0))

	s, err := network.NewSession(ctx, uid, store, network.WithBaseURL(srv.URL), network.WithTransport(srv.Client()))
	require.NoError(t, err)

	tok, err := NewAccessAPIClient(s).FetchAccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok", tok.Token)

	// без cookie — 403.
	anon, err := network.NewSession(ctx, uuid.New(), store, network.WithBaseURL(srv.URL), network.WithTransport(srv.Client()))
	require.NoError(t, err)
	_, err = NewAccessAPIClient(anon).FetchAccessToken(ctx)
	require.ErrorIs(t, err, ErrAuthentication)
}
