package models

import "time"

// AccessToken — короткоживущий bearer-токен аккаунта.
// Живёт только в рамках одной Job, на диск не пишется.
type AccessToken struct {
	Token     string
	Type      string
	ExpiresIn time.Duration
}

// AuthorizationHeader формирует значение заголовка Authorization: "{type} {token}".
func (t AccessToken) AuthorizationHeader() string {
	return t.Type + " " + t.Token
}

// IsZero — токен ещё не получен.
func (t AccessToken) IsZero() bool {
	return t.Token == "" && t.Type == ""
}
