package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/storage"
)

// SaveEvent сохраняет расшифрованное событие.
func (s *Storage) SaveEvent(ctx context.Context, ev *models.StoredEvent) error {
	const op = "storage.postgres.SaveEvent"

	query := `
        INSERT INTO decrypted_events(account_id, event_id, event_type, payload, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := s.db.Exec(ctx, query,
		ev.AccountID,
		ev.EventID,
		ev.Type,
		[]byte(ev.Payload),
		ev.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// EventByID находит событие аккаунта по id.
func (s *Storage) EventByID(ctx context.Context, accountID, eventID uuid.UUID) (*models.StoredEvent, error) {
	const op = "storage.postgres.EventByID"

	query := `
        SELECT account_id, event_id, event_type, payload, created_at
        FROM decrypted_events
        WHERE account_id = $1 AND event_id = $2
    `

	var (
		ev      models.StoredEvent
		payload []byte
	)
	err := s.db.QueryRow(ctx, query, accountID, eventID).Scan(
		&ev.AccountID,
		&ev.EventID,
		&ev.Type,
		&payload,
		&ev.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ev.Payload = payload
	return &ev, nil
}

// DeleteEventsBefore удаляет события старше before.
func (s *Storage) DeleteEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	const op = "storage.postgres.DeleteEventsBefore"

	query := `
        DELETE FROM decrypted_events
        WHERE created_at < $1
    `

	tag, err := s.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return tag.RowsAffected(), nil
}
