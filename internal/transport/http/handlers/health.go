package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	apierrors "github.com/pribylovaa/notification-extension/internal/transport/http/errors"
)

// Livez — процесс жив.
func (h *Handlers) Livez(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Healthz — все зависимости отвечают; первая упавшая — 503.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	for name, p := range h.Checks {
		if err := p.Ping(r.Context()); err != nil {
			logctx.From(r.Context()).Warn("health_check_failed",
				slog.String("check", name),
				slog.String("err", err.Error()),
			)
			apierrors.WriteError(w, r, fmt.Errorf("%w: %s", apierrors.ErrUnavailable, name))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
