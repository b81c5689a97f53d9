// api описывает эндпоинты REST API мессенджера, которые нужны пайплайну
// push-уведомлений, и тонкие клиенты над ними.
package api

import (
	"errors"
	"fmt"

	"github.com/pribylovaa/notification-extension/internal/models"
)

var (
	// ErrFailedToDecodePayload — тело успешного ответа не соответствует схеме.
	ErrFailedToDecodePayload = errors.New("failed to decode payload")
	// ErrAuthentication — сервер отказал в выдаче токена (403).
	ErrAuthentication = errors.New("authentication error")
	// ErrNotificationNotFound — уведомление не найдено (404 или пустой payload).
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrIncorrectEvent — сервер вернул событие с другим id.
	ErrIncorrectEvent = errors.New("incorrect event")
)

// UnknownError — ошибка сервера, которую эндпоинт не различает особо.
// Response передаётся без изменений.
type UnknownError struct {
	Response models.ErrorResponse
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown error: code=%d label=%q message=%q", e.Response.Code, e.Response.Label, e.Response.Message)
}
