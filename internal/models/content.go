package models

import "encoding/json"

// Content — то, что хост покажет пользователю.
// Нулевое значение — «пустой» результат: уведомление не показывать.
type Content struct {
	Title    string `json:"title,omitempty"`
	Body     string `json:"body,omitempty"`
	ThreadID string `json:"thread_id,omitempty"`
}

// EmptyContent — явный «ничего не показывать».
func EmptyContent() Content { return Content{} }

// IsEmpty — контент пуст.
func (c Content) IsEmpty() bool { return c == Content{} }

// Request — пробуждение от хоста.
// UserInfo — сырой push-payload: {"data":{"user":"<uuid>","data":{"id":"<uuid>"}}}.
type Request struct {
	Identifier string          `json:"identifier"`
	UserInfo   json.RawMessage `json:"user_info"`
}
