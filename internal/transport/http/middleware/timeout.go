package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	apierrors "github.com/pribylovaa/notification-extension/internal/transport/http/errors"
)

// Timeout задаёт бюджет пробуждения: Job собственных таймаутов не ставит.
// Контракт:
//  1. d <= 0 — no-op; уже выставленный deadline не переопределяется;
//  2. бюджет исчерпан — запись request_budget_exceeded;
//  3. бюджет исчерпан, а обработчик так ничего и не ответил — 504/deadline_exceeded.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return
			}

			logctx.From(ctx).Warn("request_budget_exceeded",
				slog.String("route", route(r)),
				slog.Duration("budget", d),
				slog.Bool("responded", sw.started()),
			)
			if !sw.started() {
				apierrors.WriteError(sw, r, context.DeadlineExceeded)
			}
		})
	}
}
