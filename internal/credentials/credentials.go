// credentials хранит cookie аккаунтов — долгоживущий секрет, которым
// сессия получает короткоживущий access-токен.
package credentials

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound — для аккаунта нет сохранённой cookie (пользователь не вошёл).
	ErrNotFound = errors.New("credentials not found")
	// ErrInvalidInput — пустой аккаунт или cookie.
	ErrInvalidInput = errors.New("invalid credentials input")
)

// Store — контракт хранилища cookie аккаунтов.
type Store interface {
	// Cookie возвращает cookie аккаунта или ErrNotFound.
	Cookie(ctx context.Context, accountID uuid.UUID) (string, error)
	// SetCookie сохраняет cookie; ttl <= 0 — без срока жизни.
	SetCookie(ctx context.Context, accountID uuid.UUID, cookie string, ttl time.Duration) error
	// DeleteCookie удаляет cookie (logout). Отсутствие записи — не ошибка.
	DeleteCookie(ctx context.Context, accountID uuid.UUID) error
	Close() error
}

func validate(accountID uuid.UUID, cookie string) error {
	if accountID == uuid.Nil || cookie == "" {
		return ErrInvalidInput
	}

	return nil
}
