package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/notification-extension/internal/job"
	"github.com/pribylovaa/notification-extension/internal/models"
	apierrors "github.com/pribylovaa/notification-extension/internal/transport/http/errors"
)

type wakeupRequest struct {
	Identifier string          `json:"identifier"`
	UserInfo   json.RawMessage `json:"user_info"`
}

// WakeupResponse — контент уведомления; Empty — показывать нечего.
type WakeupResponse struct {
	Empty    bool   `json:"empty"`
	Title    string `json:"title,omitempty"`
	Body     string `json:"body,omitempty"`
	ThreadID string `json:"thread_id,omitempty"`
}

type expireResponse struct {
	Cancelled int `json:"cancelled"`
}

// Wakeup — POST /v1/wakeups.
// Контракт:
//  1. тело {identifier, user_info}; битый JSON или пустой identifier — 400;
//  2. user_info без {data:{user, data:{id}}} — 400 malformed_push_payload;
//  3. иначе всегда 200: ошибки пайплайна превращаются в пустой (или отладочный) контент.
func (h *Handlers) Wakeup(w http.ResponseWriter, r *http.Request) {
	var in wakeupRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("%w: %v", apierrors.ErrInvalidArgument, err))
		return
	}
	if in.Identifier == "" {
		apierrors.WriteError(w, r, fmt.Errorf("%w: empty identifier", apierrors.ErrInvalidArgument))
		return
	}
	if _, err := job.ParsePushPayload(in.UserInfo); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	content := h.Extension.DidReceive(r.Context(), models.Request{
		Identifier: in.Identifier,
		UserInfo:   in.UserInfo,
	})

	writeJSON(w, http.StatusOK, WakeupResponse{
		Empty:    content.IsEmpty(),
		Title:    content.Title,
		Body:     content.Body,
		ThreadID: content.ThreadID,
	})
}

// Expire — POST /v1/expire: у хоста кончается время, отменяем всё незавершённое.
func (h *Handlers) Expire(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, expireResponse{Cancelled: h.Extension.TimeWillExpire()})
}
