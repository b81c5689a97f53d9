package redact

import "strings"

// Token маскирует bearer-токен целиком.
func Token() string { return "[REDACTED_TOKEN]" }

// Cookie маскирует значение cookie аккаунта.
func Cookie() string { return "[REDACTED_COOKIE]" }

// Authorization оставляет схему ("Bearer") и прячет сам токен.
func Authorization(header string) string {
	scheme, _, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || scheme == "" {
		return Token()
	}

	return scheme + " " + Token()
}

// Header возвращает безопасное для логов значение заголовка.
func Header(name, value string) string {
	switch strings.ToLower(name) {
	case "authorization":
		return Authorization(value)
	case "cookie", "set-cookie":
		return Cookie()
	default:
		return value
	}
}
