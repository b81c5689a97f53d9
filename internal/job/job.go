// job — одно исполнение пайплайна «push-пробуждение -> контент уведомления (или ничего)».
package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/models"
	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
)

var (
	// ErrMalformedPushPayload — в пробуждении нет {data:{user, data:{id}}}.
	ErrMalformedPushPayload = errors.New("malformed push payload")
	// ErrMissingDependency — не передан один из коллабораторов.
	ErrMissingDependency = errors.New("missing job dependency")
	// ErrUserNotAuthenticated — для аккаунта нет сохранённых учётных данных.
	ErrUserNotAuthenticated = errors.New("user not authenticated")
)

// NetworkSession — сессия аккаунта: флаг аутентификации и токен на время Job.
type NetworkSession interface {
	IsAuthenticated() bool
	SetAccessToken(token models.AccessToken)
}

type AccessAPIClient interface {
	FetchAccessToken(ctx context.Context) (models.AccessToken, error)
}

type NotificationsAPIClient interface {
	FetchEvent(ctx context.Context, eventID uuid.UUID) (*models.UpdateEvent, error)
}

// EventDecoder расшифровывает и сохраняет событие.
type EventDecoder interface {
	DecryptAndStoreEvent(ctx context.Context, ev *models.UpdateEvent) (*models.UpdateEvent, error)
}

type CallEventHandler interface {
	IsCorrectCallEvent(ctx context.Context, ev *models.UpdateEvent, accountID uuid.UUID) bool
	ProcessCallEvent(ctx context.Context, ev *models.UpdateEvent) error
}

type ContentProvider interface {
	NotificationContent(ctx context.Context, ev *models.UpdateEvent) (models.Content, error)
}

// Dependencies — коллабораторы Job; все обязательны.
type Dependencies struct {
	Session          NetworkSession
	AccessAPI        AccessAPIClient
	NotificationsAPI NotificationsAPIClient
	Decoder          EventDecoder
	CallHandler      CallEventHandler
	ContentProvider  ContentProvider
}

func (d Dependencies) validate() error {
	switch {
	case d.Session == nil:
		return fmt.Errorf("%w: session", ErrMissingDependency)
	case d.AccessAPI == nil:
		return fmt.Errorf("%w: access api client", ErrMissingDependency)
	case d.NotificationsAPI == nil:
		return fmt.Errorf("%w: notifications api client", ErrMissingDependency)
	case d.Decoder == nil:
		return fmt.Errorf("%w: event decoder", ErrMissingDependency)
	case d.CallHandler == nil:
		return fmt.Errorf("%w: call event handler", ErrMissingDependency)
	case d.ContentProvider == nil:
		return fmt.Errorf("%w: content provider", ErrMissingDependency)
	}

	return nil
}

// PushPayload — то, что пробуждение сообщает о себе.
type PushPayload struct {
	UserID  uuid.UUID
	EventID uuid.UUID
}

type rawPushPayload struct {
	Data *struct {
		User string `json:"user"`
		Data *struct {
			ID string `json:"id"`
		} `json:"data"`
	} `json:"data"`
}

// ParsePushPayload разбирает {"data":{"user":"<uuid>","data":{"id":"<uuid>"}}}.
func ParsePushPayload(userInfo json.RawMessage) (PushPayload, error) {
	var raw rawPushPayload
	if err := json.Unmarshal(userInfo, &raw); err != nil {
		return PushPayload{}, ErrMalformedPushPayload
	}
	if raw.Data == nil || raw.Data.Data == nil {
		return PushPayload{}, ErrMalformedPushPayload
	}

	userID, err := uuid.Parse(raw.Data.User)
	if err != nil {
		return PushPayload{}, ErrMalformedPushPayload
	}
	eventID, err := uuid.Parse(raw.Data.Data.ID)
	if err != nil {
		return PushPayload{}, ErrMalformedPushPayload
	}

	return PushPayload{UserID: userID, EventID: eventID}, nil
}

type Job struct {
	request models.Request
	payload PushPayload
	deps    Dependencies
}

// New — некорректный payload и недостающие коллабораторы — ошибки конструирования.
func New(req models.Request, deps Dependencies) (*Job, error) {
	const op = "job.New"

	payload, err := ParsePushPayload(req.UserInfo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Job{request: req, payload: payload, deps: deps}, nil
}

func (j *Job) UserID() uuid.UUID  { return j.payload.UserID }
func (j *Job) EventID() uuid.UUID { return j.payload.EventID }

// Execute исполняет пайплайн последовательно, без повторов и собственных таймаутов.
// Контракт:
//  1. сессия не аутентифицирована — ErrUserNotAuthenticated;
//  2. ошибка получения токена возвращается как есть; токен кладётся в сессию;
//  3. ошибка получения события возвращается как есть;
//  4. событие расшифровывается, если ещё не расшифровано; ошибка — пустой результат;
//  5. звонковое событие обрабатывается, ошибка обработки логируется; результат пустой;
//  6. иначе — контент от провайдера; ошибка или пустой контент — пустой результат.
//
// Отмена ctx прерывает текущий шаг.
func (j *Job) Execute(ctx context.Context) (models.Content, error) {
	const op = "job.Execute"

	ctx, l := logctx.With(ctx,
		slog.String("op", op),
		slog.String("request_id", j.request.Identifier),
		slog.String("user_id", j.payload.UserID.String()),
		slog.String("event_id", j.payload.EventID.String()),
	)
	l.Debug("job_started")

	if !j.deps.Session.IsAuthenticated() {
		l.Info("job_user_not_authenticated")
		return models.EmptyContent(), ErrUserNotAuthenticated
	}

	token, err := j.deps.AccessAPI.FetchAccessToken(ctx)
	if err != nil {
		l.Warn("job_token_fetch_failed", slog.String("error", err.Error()))
		return models.EmptyContent(), err
	}
	j.deps.Session.SetAccessToken(token)

	ev, err := j.deps.NotificationsAPI.FetchEvent(ctx, j.payload.EventID)
	if err != nil {
		l.Warn("job_event_fetch_failed", slog.String("error", err.Error()))
		return models.EmptyContent(), err
	}
	if ev == nil {
		l.Warn("job_event_missing")
		return models.EmptyContent(), nil
	}

	if !ev.Decrypted {
		decrypted, err := j.deps.Decoder.DecryptAndStoreEvent(ctx, ev)
		if err != nil || decrypted == nil {
			l.Warn("job_decrypt_failed", slog.Any("error", err))
			return models.EmptyContent(), nil
		}
		ev = decrypted
	}

	if j.deps.CallHandler.IsCorrectCallEvent(ctx, ev, j.payload.UserID) {
		if err := j.deps.CallHandler.ProcessCallEvent(ctx, ev); err != nil {
			l.Warn("job_call_processing_failed", slog.String("error", err.Error()))
		} else {
			l.Info("job_call_event_processed")
		}

		return models.EmptyContent(), nil
	}

	content, err := j.deps.ContentProvider.NotificationContent(ctx, ev)
	if err != nil {
		l.Debug("job_no_content",
			slog.String("event_type", ev.Type()),
			slog.String("reason", err.Error()),
		)
		return models.EmptyContent(), nil
	}
	if content.IsEmpty() {
		return models.EmptyContent(), nil
	}

	l.Info("job_content_ready", slog.String("event_type", ev.Type()))
	return content, nil
}
