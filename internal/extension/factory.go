package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/notification-extension/internal/api"
	"github.com/pribylovaa/notification-extension/internal/calls"
	"github.com/pribylovaa/notification-extension/internal/content"
	"github.com/pribylovaa/notification-extension/internal/credentials"
	"github.com/pribylovaa/notification-extension/internal/decoder"
	"github.com/pribylovaa/notification-extension/internal/job"
	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/network"
	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	"github.com/pribylovaa/notification-extension/internal/storage"
)

// ErrFactoryMisconfigured — у фабрики не задана обязательная зависимость.
var ErrFactoryMisconfigured = errors.New("job factory misconfigured")

// Factory — боевая JobFactory: сессия, API-клиенты, декодер, обработчик звонков и
// провайдер контента под аккаунт пробуждения.
type Factory struct {
	Credentials credentials.Store
	Events      storage.EventStorage
	Decrypter   decoder.Decrypter
	Registry    calls.Registry
	Reporter    calls.Reporter

	// HTTPClient — общий транспорт всех сессий (network.NewHTTPClient).
	HTTPClient network.Doer
	BaseURL    string
	UserAgent  string
	// Title — фиксированный заголовок уведомлений; пусто — без заголовка.
	Title string
}

func (f *Factory) validate() error {
	switch {
	case f.Credentials == nil:
		return fmt.Errorf("%w: credentials store", ErrFactoryMisconfigured)
	case f.Events == nil:
		return fmt.Errorf("%w: event storage", ErrFactoryMisconfigured)
	case f.Decrypter == nil:
		return fmt.Errorf("%w: decrypter", ErrFactoryMisconfigured)
	case f.Registry == nil:
		return fmt.Errorf("%w: call registry", ErrFactoryMisconfigured)
	case f.Reporter == nil:
		return fmt.Errorf("%w: voip reporter", ErrFactoryMisconfigured)
	}

	return nil
}

// NewJob собирает Job под аккаунт из push-payload.
// Контракт:
//  1. некорректный payload — job.ErrMalformedPushPayload;
//  2. ошибка хранилища учётных данных — ошибка сборки;
//  3. отсутствие cookie ошибкой не является: Job сам вернёт ErrUserNotAuthenticated.
func (f *Factory) NewJob(ctx context.Context, req models.Request) (Runner, error) {
	const op = "extension.Factory.NewJob"

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payload, err := job.ParsePushPayload(req.UserInfo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := []network.Option{
		network.WithTransport(f.HTTPClient),
		network.WithLogger(logctx.From(ctx)),
	}
	if f.BaseURL != "" {
		opts = append(opts, network.WithBaseURL(f.BaseURL))
	}
	if f.UserAgent != "" {
		opts = append(opts, network.WithUserAgent(f.UserAgent))
	}

	session, err := network.NewSession(ctx, payload.UserID, f.Credentials, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	provider := content.NewProvider()
	provider.Title = f.Title

	j, err := job.New(req, job.Dependencies{
		Session:          session,
		AccessAPI:        api.NewAccessAPIClient(session),
		NotificationsAPI: api.NewNotificationsAPIClient(session),
		Decoder:          decoder.New(session.UserID(), f.Decrypter, f.Events),
		CallHandler:      calls.NewHandler(session.UserID(), f.Registry, f.Reporter),
		ContentProvider:  provider,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logctx.From(ctx).Debug("job_created",
		slog.String("user_id", j.UserID().String()),
		slog.String("event_id", j.EventID().String()),
		slog.Any("session", session),
	)

	return j, nil
}
