package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	apierrors "github.com/pribylovaa/notification-extension/internal/transport/http/errors"
)

// Recover перехватывает panic обработчика.
// Контракт:
//  1. http.ErrAbortHandler пробрасывается дальше — это штатный обрыв ответа;
//  2. паника логируется с request_id, маршрутом и стеком;
//  3. если ответ ещё не начат — 500/internal без деталей паники;
//     если начат — второй ответ не пишется.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "handler_panic",
					slog.String("request_id", r.Header.Get("X-Request-Id")),
					slog.String("route", route(r)),
					slog.Any("reason", rec),
					slog.Bool("responded", sw.started()),
					slog.String("stack", string(debug.Stack())),
				)

				if !sw.started() {
					apierrors.WriteError(sw, r, fmt.Errorf("%w: panic", apierrors.ErrInternal))
				}
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
