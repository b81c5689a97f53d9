package models

import (
	"time"

	"github.com/google/uuid"
)

// VoIPPayload — то, что отправляется в VoIP-канал при обработке звонкового события.
type VoIPPayload struct {
	AccountID      uuid.UUID `json:"account_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	CallState      string    `json:"call_state"`
	ServerTime     time.Time `json:"server_time"`
}

// IsComplete — заполнены все обязательные поля.
func (p VoIPPayload) IsComplete() bool {
	return p.AccountID != uuid.Nil &&
		p.ConversationID != uuid.Nil &&
		p.SenderID != uuid.Nil &&
		p.CallState != ""
}
