package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/notification-extension/internal/transport/http/handlers"
	"github.com/pribylovaa/notification-extension/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger *slog.Logger
	// Timeout — бюджет одного пробуждения.
	Timeout time.Duration
	// Gatherer — источник /metrics; nil — prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// AdminToken закрывает /v1/accounts; пусто — без проверки.
	AdminToken string
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования: id попадает в логгер запроса
		middleware.Logging(opts.Logger),
	)

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	root.Get("/livez", h.Livez)
	root.Get("/healthz", h.Healthz)
	root.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	root.Route("/v1", func(r chi.Router) {
		r.With(middleware.Timeout(opts.Timeout)).Post("/wakeups", h.Wakeup)
		r.Post("/expire", h.Expire)

		r.Route("/accounts/{id}", func(r chi.Router) {
			r.Use(middleware.RequireBearer(opts.AdminToken))
			r.Put("/cookie", h.SetCookie)
			r.Delete("/cookie", h.DeleteCookie)
		})
	})

	return root
}
