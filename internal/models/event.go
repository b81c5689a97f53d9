package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Типы событий, которые различает пайплайн.
const (
	EventOTRMessageAdd = "conversation.otr-message-add"
	EventMemberJoin    = "conversation.member-join"
)

var (
	// ErrNoMessage — событие не расшифровано или не содержит сообщения.
	ErrNoMessage = errors.New("event has no decrypted message")
)

// QualifiedID — идентификатор с доменом федерации.
type QualifiedID struct {
	Domain string    `json:"domain"`
	ID     uuid.UUID `json:"id"`
}

// EventPayload — первый элемент массива payload уведомления.
type EventPayload struct {
	Type                  string          `json:"type"`
	Conversation          string          `json:"conversation,omitempty"`
	QualifiedConversation *QualifiedID    `json:"qualified_conversation,omitempty"`
	From                  string          `json:"from,omitempty"`
	QualifiedFrom         *QualifiedID    `json:"qualified_from,omitempty"`
	Time                  string          `json:"time,omitempty"`
	Data                  json.RawMessage `json:"data,omitempty"`
}

// OTRData — data события otr-message-add.
// Text — шифртекст (base64); Message появляется после расшифровки.
type OTRData struct {
	Sender    string          `json:"sender,omitempty"`
	Recipient string          `json:"recipient,omitempty"`
	Text      string          `json:"text,omitempty"`
	Data      string          `json:"data,omitempty"`
	Message   json.RawMessage `json:"message,omitempty"`
}

// UpdateEvent — push-событие, зашифрованное или уже расшифрованное.
type UpdateEvent struct {
	ID        uuid.UUID
	Payload   EventPayload
	Decrypted bool
}

// Type — тип события (conversation.otr-message-add, ...).
func (e *UpdateEvent) Type() string { return e.Payload.Type }

// ConversationID берёт qualified_conversation.id, иначе conversation.
func (e *UpdateEvent) ConversationID() (uuid.UUID, bool) {
	if q := e.Payload.QualifiedConversation; q != nil && q.ID != uuid.Nil {
		return q.ID, true
	}

	return parseOptionalUUID(e.Payload.Conversation)
}

// SenderID берёт qualified_from.id, иначе from.
func (e *UpdateEvent) SenderID() (uuid.UUID, bool) {
	if q := e.Payload.QualifiedFrom; q != nil && q.ID != uuid.Nil {
		return q.ID, true
	}

	return parseOptionalUUID(e.Payload.From)
}

// ServerTime — время события на сервере (нулевое, если не распарсилось).
func (e *UpdateEvent) ServerTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.Payload.Time)
	if err != nil {
		return time.Time{}
	}

	return t
}

// OTRData разбирает data события.
func (e *UpdateEvent) OTRData() (OTRData, error) {
	var d OTRData
	if len(e.Payload.Data) == 0 {
		return d, nil
	}

	if err := json.Unmarshal(e.Payload.Data, &d); err != nil {
		return OTRData{}, err
	}

	return d, nil
}

// Message возвращает расшифрованное сообщение.
func (e *UpdateEvent) Message() (*Message, error) {
	if !e.Decrypted {
		return nil, ErrNoMessage
	}

	d, err := e.OTRData()
	if err != nil {
		return nil, err
	}

	if len(d.Message) == 0 {
		return nil, ErrNoMessage
	}

	var m Message
	if err := json.Unmarshal(d.Message, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

func parseOptionalUUID(s string) (uuid.UUID, bool) {
	if s == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}

	return id, true
}
