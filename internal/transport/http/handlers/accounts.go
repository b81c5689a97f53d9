package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	"github.com/pribylovaa/notification-extension/internal/pkg/redact"
	apierrors "github.com/pribylovaa/notification-extension/internal/transport/http/errors"
)

type setCookieRequest struct {
	Cookie string `json:"cookie"`
	// TTLSeconds <= 0 — без срока жизни.
	TTLSeconds int64 `json:"ttl_seconds"`
}

func accountID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: account id", apierrors.ErrInvalidArgument)
	}

	return id, nil
}

// SetCookie — PUT /v1/accounts/{id}/cookie: вход аккаунта.
// Контракт:
//  1. id не uuid, битый JSON или пустая cookie — 400;
//  2. ошибка хранилища — 500; иначе 204;
//  3. значение cookie в логи не попадает.
func (h *Handlers) SetCookie(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in setCookieRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("%w: %v", apierrors.ErrInvalidArgument, err))
		return
	}

	ttl := time.Duration(in.TTLSeconds) * time.Second
	if err := h.Accounts.SetCookie(r.Context(), id, in.Cookie, ttl); err != nil {
		logctx.From(r.Context()).Warn("account_cookie_set_failed",
			slog.String("user_id", id.String()),
			slog.String("err", err.Error()),
		)
		apierrors.WriteError(w, r, err)
		return
	}

	logctx.From(r.Context()).Info("account_cookie_set",
		slog.String("user_id", id.String()),
		slog.String("cookie", redact.Cookie()),
		slog.Duration("ttl", ttl),
	)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCookie — DELETE /v1/accounts/{id}/cookie: выход аккаунта; идемпотентно.
func (h *Handlers) DeleteCookie(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Accounts.DeleteCookie(r.Context(), id); err != nil {
		logctx.From(r.Context()).Warn("account_cookie_delete_failed",
			slog.String("user_id", id.String()),
			slog.String("err", err.Error()),
		)
		apierrors.WriteError(w, r, err)
		return
	}

	logctx.From(r.Context()).Info("account_cookie_deleted", slog.String("user_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
