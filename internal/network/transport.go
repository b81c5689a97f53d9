package network

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	"github.com/pribylovaa/notification-extension/internal/pkg/redact"
)

type CtxKey string

// CtxRequestID — id входящего пробуждения; HTTP-хост кладёт его в контекст,
// RequestIDTransport прокидывает в исходящие запросы.
const CtxRequestID CtxKey = "request_id"

// ContextWithRequestID кладёт request id в контекст.
func ContextWithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, CtxRequestID, rid)
}

// RequestIDFrom достаёт request id из контекста.
func RequestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(CtxRequestID).(string)
	return rid
}

// RoundTripperFunc — функция как http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Middleware оборачивает http.RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// Chain применяет мидлвары к транспорту в порядке перечисления (первый — внешний).
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}

	return base
}

// NewHTTPClient — клиент с цепочкой request-id -> timeout -> logging.
func NewHTTPClient(base http.RoundTripper, timeout time.Duration, log *slog.Logger) *http.Client {
	return &http.Client{
		Transport: Chain(base,
			RequestIDTransport(),
			TimeoutTransport(timeout),
			LoggingTransport(log),
		),
	}
}

// RequestIDTransport добавляет X-Request-Id:
//  1. уже выставленный заголовок не трогает;
//  2. иначе берёт id из контекста (CtxRequestID);
//  3. иначе генерирует uuid.
func RequestIDTransport() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("X-Request-Id") != "" {
				return next.RoundTrip(r)
			}

			rid := RequestIDFrom(r.Context())
			if rid == "" {
				rid = uuid.NewString()
			}

			r = r.Clone(ContextWithRequestID(r.Context(), rid))
			r.Header.Set("X-Request-Id", rid)

			return next.RoundTrip(r)
		})
	}
}

// TimeoutTransport навешивает таймаут d на исходящий запрос, если у контекста ещё нет дедлайна.
// Контракт:
//  1. d <= 0 — запрос уходит как есть;
//  2. у ctx уже есть deadline — оставляет как есть;
//  3. иначе — context.WithTimeout; cancel вызывается при закрытии тела ответа.
func TimeoutTransport(d time.Duration) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if d <= 0 {
				return next.RoundTrip(r)
			}
			if _, ok := r.Context().Deadline(); ok {
				return next.RoundTrip(r)
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil || resp == nil || resp.Body == nil {
				cancel()
				return resp, err
			}

			resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
			return resp, nil
		})
	}
}

// LoggingTransport пишет одну запись на исходящий запрос: method, path, status, dur.
// Authorization и Cookie попадают в лог только через redact; тело не логируется.
func LoggingTransport(base *slog.Logger) Middleware {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			l := base
			if rid := r.Header.Get("X-Request-Id"); rid != "" {
				l = l.With(slog.String("request_id", rid))
			}
			l = l.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			r = r.WithContext(logctx.Into(r.Context(), l))

			resp, err := next.RoundTrip(r)

			attrs := []slog.Attr{slog.Duration("dur", time.Since(start))}
			for _, name := range []string{"Authorization", "Cookie"} {
				if v := r.Header.Get(name); v != "" {
					attrs = append(attrs, slog.String(strings.ToLower(name), redact.Header(name, v)))
				}
			}
			if resp != nil {
				attrs = append(attrs, slog.Int("status", resp.StatusCode))
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				l.LogAttrs(r.Context(), slog.LevelWarn, "backend_request_failed", attrs...)
				return resp, err
			}

			l.LogAttrs(r.Context(), slog.LevelInfo, "backend", attrs...)
			return resp, nil
		})
	}
}

// cancelOnClose держит контекст запроса живым, пока тело не дочитано.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
