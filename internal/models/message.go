package models

import "encoding/json"

// Message — открытый текст otr-сообщения (лежит в data.message после расшифровки).
// Заполнено ровно одно поле.
type Message struct {
	Text    *TextMessage    `json:"text,omitempty"`
	Knock   *Knock          `json:"knock,omitempty"`
	Asset   json.RawMessage `json:"asset,omitempty"`
	Calling *CallingMessage `json:"calling,omitempty"`
}

type TextMessage struct {
	Content string `json:"content"`
}

// Knock — «пинг» в беседе.
type Knock struct{}

type CallingMessage struct {
	Content string `json:"content"`
}

// CallContent — содержимое calling-сообщения (JSON внутри строки content).
type CallContent struct {
	Type string `json:"type"`
	Resp bool   `json:"resp"`
}

// Типы звонковых сообщений.
const (
	CallSetup  = "SETUP"
	CallCancel = "CANCEL"
	CallReject = "REJECT"
	CallHangup = "HANGUP"
)

// HasAsset — сообщение содержит файл/изображение.
func (m *Message) HasAsset() bool {
	return len(m.Asset) > 0 && string(m.Asset) != "null"
}
