package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/models"
)

// Extension — то, что хост умеет делать с пробуждениями (*extension.Service).
type Extension interface {
	DidReceive(ctx context.Context, req models.Request) models.Content
	TimeWillExpire() int
}

// Accounts — учётные данные аккаунтов, которыми сессии получают access-токен
// (credentials.Store).
type Accounts interface {
	SetCookie(ctx context.Context, accountID uuid.UUID, cookie string, ttl time.Duration) error
	DeleteCookie(ctx context.Context, accountID uuid.UUID) error
}

// Pinger — зависимость, доступность которой проверяет /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers агрегирует зависимости HTTP-хоста.
type Handlers struct {
	Extension Extension
	Accounts  Accounts
	// Checks — именованные проверки готовности.
	Checks map[string]Pinger
}

func New(ext Extension, accounts Accounts, checks map[string]Pinger) *Handlers {
	return &Handlers{Extension: ext, Accounts: accounts, Checks: checks}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: неизвестные поля запрещены.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
