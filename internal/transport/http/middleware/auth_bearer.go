package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	"github.com/pribylovaa/notification-extension/internal/pkg/redact"
	apierrors "github.com/pribylovaa/notification-extension/internal/transport/http/errors"
)

// RequireBearer закрывает служебные маршруты (учётные данные аккаунтов) токеном оператора.
// Контракт:
//  1. пустой token — проверка выключена (local);
//  2. нет "Bearer <token>" или токен не совпал — 401/unauthenticated;
//  3. заголовок попадает в лог только через redact.
func RequireBearer(token string) Middleware {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")

			const prefix = "Bearer "
			got := ""
			if strings.HasPrefix(auth, prefix) {
				got = strings.TrimSpace(auth[len(prefix):])
			}

			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logctx.From(r.Context()).Warn("admin_auth_failed",
					slog.String("route", route(r)),
					slog.String("authorization", redact.Authorization(auth)),
				)
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
