package network

import (
	"context"

	"github.com/pribylovaa/notification-extension/internal/models"
)

// Endpoint — типизированное описание одного вызова: запрос и разбор ответа.
// ParseResponse обязан быть чистой функцией.
type Endpoint[T any] interface {
	Request() models.NetworkRequest
	ParseResponse(resp models.NetworkResponse) (T, error)
}

// Execute — Send + ParseResponse. Ошибки транспорта возвращаются без изменений,
// ошибки эндпоинта — как их вернул ParseResponse.
func Execute[T any](ctx context.Context, s *Session, e Endpoint[T]) (T, error) {
	resp, err := s.Send(ctx, e.Request())
	if err != nil {
		var zero T
		return zero, err
	}

	return e.ParseResponse(resp)
}
