// decoder расшифровывает push-события и сохраняет расшифрованную копию.
package decoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/models"
	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	"github.com/pribylovaa/notification-extension/internal/storage"
)

var (
	// ErrInvalidEvent — nil-событие или data не разбирается.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrInvalidMessage — расшифрованный текст не JSON-объект.
	ErrInvalidMessage = errors.New("decrypted message is not a json object")
)

// Decoder работает от имени одного аккаунта.
type Decoder struct {
	accountID uuid.UUID
	decrypter Decrypter
	store     storage.EventStorage
	now       func() time.Time
}

func New(accountID uuid.UUID, d Decrypter, st storage.EventStorage) *Decoder {
	return &Decoder{
		accountID: accountID,
		decrypter: d,
		store:     st,
		now:       time.Now,
	}
}

// DecryptAndStoreEvent возвращает расшифрованное и сохранённое событие.
// Контракт:
//  1. уже расшифрованное событие возвращается как есть;
//  2. если событие уже сохранено для аккаунта — возвращается сохранённая копия
//     (повторный push того же события);
//  3. otr-message-add: data.text расшифровывается, открытый текст кладётся в data.message,
//     шифртекст из копии удаляется; прочие типы шифрования не несут;
//  4. копия сохраняется; гонка с параллельным сохранением (ErrAlreadyExists) разрешается
//     чтением сохранённой копии.
//
// Исходное событие не модифицируется.
func (d *Decoder) DecryptAndStoreEvent(ctx context.Context, ev *models.UpdateEvent) (*models.UpdateEvent, error) {
	const op = "decoder.DecryptAndStoreEvent"

	if ev == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEvent)
	}
	if ev.Decrypted {
		return ev, nil
	}

	l := logctx.From(ctx).With(
		slog.String("op", op),
		slog.String("event_id", ev.ID.String()),
	)

	stored, err := d.stored(ctx, ev.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stored != nil {
		l.Debug("decoder_event_already_stored")
		return stored, nil
	}

	out, err := d.decrypt(ev)
	if err != nil {
		l.Warn("decoder_decrypt_failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	se, err := models.NewStoredEvent(d.accountID, out, d.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := d.store.SaveEvent(ctx, se); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			stored, lookupErr := d.stored(ctx, ev.ID)
			if lookupErr == nil && stored != nil {
				return stored, nil
			}
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (d *Decoder) stored(ctx context.Context, eventID uuid.UUID) (*models.UpdateEvent, error) {
	se, err := d.store.EventByID(ctx, d.accountID, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return se.UpdateEvent()
}

func (d *Decoder) decrypt(ev *models.UpdateEvent) (*models.UpdateEvent, error) {
	out := &models.UpdateEvent{ID: ev.ID, Payload: ev.Payload, Decrypted: true}
	if ev.Type() != models.EventOTRMessageAdd {
		return out, nil
	}

	data, err := ev.OTRData()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if data.Text == "" {
		return nil, fmt.Errorf("%w: empty ciphertext", ErrInvalidEvent)
	}

	plain, err := d.decrypter.Decrypt(d.accountID, data.Text)
	if err != nil {
		return nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(plain, &probe); err != nil {
		return nil, ErrInvalidMessage
	}

	data.Text = ""
	data.Message = plain

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	out.Payload.Data = raw

	return out, nil
}
