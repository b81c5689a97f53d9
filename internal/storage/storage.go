package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/models"
)

var (
	// ErrNotFound — событие не найдено.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — событие уже сохранено для аккаунта (повторный push).
	ErrAlreadyExists = errors.New("already exists")
)

// EventStorage хранит расшифрованные события по аккаунтам.
type EventStorage interface {
	// SaveEvent сохраняет расшифрованное событие; дубль — ErrAlreadyExists.
	SaveEvent(ctx context.Context, ev *models.StoredEvent) error
	// EventByID находит событие аккаунта по id.
	EventByID(ctx context.Context, accountID, eventID uuid.UUID) (*models.StoredEvent, error)
	// DeleteEventsBefore удаляет события, сохранённые раньше before; возвращает число удалённых.
	DeleteEventsBefore(ctx context.Context, before time.Time) (int64, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	EventStorage
	Ping(ctx context.Context) error
	Close()
}
