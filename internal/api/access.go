package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/network"
)

// AccessTokenEndpoint — GET /access: обмен cookie аккаунта на bearer-токен.
type AccessTokenEndpoint struct{}

func (AccessTokenEndpoint) Request() models.NetworkRequest {
	req := models.JSONRequest("/access")
	req.Method = http.MethodGet
	req.SendCookie = true

	return req
}

type accessTokenPayload struct {
	AccessToken *string `json:"access_token"`
	TokenType   *string `json:"token_type"`
	ExpiresIn   *int64  `json:"expires_in"`
}

// ParseResponse — чистая функция.
// Контракт:
//  1. успех: {access_token, token_type, expires_in}; невалидный JSON, пустые
//     access_token/token_type или отсутствующий expires_in — ErrFailedToDecodePayload;
//  2. ошибка с кодом 403 — ErrAuthentication независимо от label/message;
//  3. прочие ошибки — *UnknownError с исходным ответом.
func (AccessTokenEndpoint) ParseResponse(resp models.NetworkResponse) (models.AccessToken, error) {
	if ok, isOK := resp.Success(); isOK {
		var p accessTokenPayload
		if err := json.Unmarshal(ok.Data, &p); err != nil {
			return models.AccessToken{}, ErrFailedToDecodePayload
		}
		if p.AccessToken == nil || *p.AccessToken == "" ||
			p.TokenType == nil || *p.TokenType == "" ||
			p.ExpiresIn == nil {
			return models.AccessToken{}, ErrFailedToDecodePayload
		}

		return models.AccessToken{
			Token:     *p.AccessToken,
			Type:      *p.TokenType,
			ExpiresIn: time.Duration(*p.ExpiresIn) * time.Second,
		}, nil
	}

	f, _ := resp.Failure()
	if f.Code == http.StatusForbidden {
		return models.AccessToken{}, ErrAuthentication
	}

	return models.AccessToken{}, &UnknownError{Response: f}
}

// AccessAPIClient получает access-токен через сессию.
type AccessAPIClient struct {
	session *network.Session
}

func NewAccessAPIClient(s *network.Session) *AccessAPIClient {
	return &AccessAPIClient{session: s}
}

// FetchAccessToken — ошибки эндпоинта и транспорта возвращаются без изменений.
func (c *AccessAPIClient) FetchAccessToken(ctx context.Context) (models.AccessToken, error) {
	return network.Execute[models.AccessToken](ctx, c.session, AccessTokenEndpoint{})
}
