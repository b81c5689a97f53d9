package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/network"
)

// NotificationByIDEndpoint — GET /notifications/{id}.
type NotificationByIDEndpoint struct {
	eventID uuid.UUID
}

func NewNotificationByIDEndpoint(eventID uuid.UUID) NotificationByIDEndpoint {
	return NotificationByIDEndpoint{eventID: eventID}
}

// Request — путь всегда с uuid в нижнем регистре.
func (e NotificationByIDEndpoint) Request() models.NetworkRequest {
	return models.JSONRequest("/notifications/" + e.eventID.String())
}

type notificationEnvelope struct {
	ID      *string               `json:"id"`
	Payload []models.EventPayload `json:"payload"`
}

// ParseResponse — чистая функция.
// Контракт:
//  1. успех: {id, payload:[...]}; невалидный JSON или id не uuid — ErrFailedToDecodePayload;
//     пустой payload — ErrNotificationNotFound; id не совпадает — ErrIncorrectEvent;
//     иначе — зашифрованное событие из первого элемента payload;
//  2. ошибка с кодом 404 — ErrNotificationNotFound;
//  3. прочие ошибки — *UnknownError с исходным ответом.
func (e NotificationByIDEndpoint) ParseResponse(resp models.NetworkResponse) (*models.UpdateEvent, error) {
	if ok, isOK := resp.Success(); isOK {
		var env notificationEnvelope
		if err := json.Unmarshal(ok.Data, &env); err != nil {
			return nil, ErrFailedToDecodePayload
		}
		if env.ID == nil {
			return nil, ErrFailedToDecodePayload
		}

		id, err := uuid.Parse(*env.ID)
		if err != nil {
			return nil, ErrFailedToDecodePayload
		}

		if len(env.Payload) == 0 {
			return nil, ErrNotificationNotFound
		}
		if id != e.eventID {
			return nil, ErrIncorrectEvent
		}

		return &models.UpdateEvent{ID: id, Payload: env.Payload[0]}, nil
	}

	f, _ := resp.Failure()
	if f.Code == http.StatusNotFound {
		return nil, ErrNotificationNotFound
	}

	return nil, &UnknownError{Response: f}
}

// NotificationsAPIClient получает одно событие по id.
type NotificationsAPIClient struct {
	session *network.Session
}

func NewNotificationsAPIClient(s *network.Session) *NotificationsAPIClient {
	return &NotificationsAPIClient{session: s}
}

// FetchEvent — ошибки эндпоинта и транспорта возвращаются без изменений.
func (c *NotificationsAPIClient) FetchEvent(ctx context.Context, eventID uuid.UUID) (*models.UpdateEvent, error) {
	return network.Execute[*models.UpdateEvent](ctx, c.session, NewNotificationByIDEndpoint(eventID))
}
