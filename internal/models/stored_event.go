package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StoredEvent — расшифрованное событие в хранилище.
// Payload — EventPayload с data.message.
type StoredEvent struct {
	AccountID uuid.UUID
	EventID   uuid.UUID
	Type      string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// NewStoredEvent готовит расшифрованное событие к сохранению.
func NewStoredEvent(accountID uuid.UUID, ev *UpdateEvent, now time.Time) (*StoredEvent, error) {
	raw, err := json.Marshal(ev.Payload)
	if err != nil {
		return nil, err
	}

	return &StoredEvent{
		AccountID: accountID,
		EventID:   ev.ID,
		Type:      ev.Payload.Type,
		Payload:   raw,
		CreatedAt: now.UTC(),
	}, nil
}

// UpdateEvent восстанавливает расшифрованное событие.
func (s *StoredEvent) UpdateEvent() (*UpdateEvent, error) {
	var p EventPayload
	if err := json.Unmarshal(s.Payload, &p); err != nil {
		return nil, err
	}

	return &UpdateEvent{ID: s.EventID, Payload: p, Decrypted: true}, nil
}
