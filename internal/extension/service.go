// extension — хост пайплайна: принимает пробуждения, гоняет Job и отменяет
// всё незавершённое, когда у хоста кончается время.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pribylovaa/notification-extension/internal/models"
	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
)

// DebugTitle — заголовок отладочного уведомления.
const DebugTitle = "DEBUG"

// Runner — то, что умеет *job.Job.
type Runner interface {
	Execute(ctx context.Context) (models.Content, error)
}

// JobFactory собирает Job со всеми коллабораторами под аккаунт пробуждения.
type JobFactory interface {
	NewJob(ctx context.Context, req models.Request) (Runner, error)
}

// Options — настройки сервиса.
type Options struct {
	// DebugMessages — вместо пустого результата отдавать текст ошибки.
	DebugMessages bool
	Metrics       *Metrics
	// Logger — для событий уровня сервиса; логгер запроса берётся из контекста.
	Logger *slog.Logger
}

type inflight struct {
	cancel context.CancelFunc
}

// Service безопасен для конкурентного использования.
type Service struct {
	factory JobFactory
	debug   bool
	metrics *Metrics
	log     *slog.Logger
	now     func() time.Time

	mu    sync.Mutex
	tasks map[string]*inflight
}

func New(factory JobFactory, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		factory: factory,
		debug:   opts.DebugMessages,
		metrics: opts.Metrics,
		log:     log,
		now:     time.Now,
		tasks:   make(map[string]*inflight),
	}
}

// DidReceive обрабатывает одно пробуждение и всегда возвращает результат.
// Контракт:
//  1. Job исполняется под отменяемым контекстом, зарегистрированным по идентификатору
//     запроса; повторный запрос с тем же идентификатором отменяет предыдущий;
//  2. по завершении регистрация снимается;
//  3. любая ошибка (сборка Job, исполнение, отмена) — отладочный контент, если включён,
//     иначе пустой результат.
func (s *Service) DidReceive(ctx context.Context, req models.Request) models.Content {
	const op = "extension.DidReceive"

	ctx, l := logctx.With(ctx, slog.String("op", op), slog.String("request_id", req.Identifier))
	l.Debug("request_received")

	start := s.now()
	ctx, entry := s.register(ctx, req.Identifier)
	defer s.unregister(req.Identifier, entry)

	content, err := s.run(ctx, req)
	switch {
	case err == nil && content.IsEmpty():
		s.metrics.observe(OutcomeEmpty, s.now().Sub(start))
		return content
	case err == nil:
		s.metrics.observe(OutcomeContent, s.now().Sub(start))
		return content
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		s.metrics.observe(OutcomeCancelled, s.now().Sub(start))
	default:
		s.metrics.observe(OutcomeFailed, s.now().Sub(start))
	}

	msg := fmt.Sprintf("%s: failed with error: %v", req.Identifier, err)
	l.Error("request_failed", slog.String("error", err.Error()))

	return s.debugContent(msg)
}

// TimeWillExpire отменяет все незавершённые Job и возвращает их число.
func (s *Service) TimeWillExpire() int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = make(map[string]*inflight)
	s.mu.Unlock()

	for _, t := range tasks {
		t.cancel()
	}
	s.log.Warn("extension_expiring", slog.Int("cancelled", len(tasks)))

	return len(tasks)
}

// InFlight — число исполняемых сейчас Job.
func (s *Service) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Service) run(ctx context.Context, req models.Request) (models.Content, error) {
	j, err := s.factory.NewJob(ctx, req)
	if err != nil {
		return models.EmptyContent(), err
	}

	content, err := j.Execute(ctx)
	if err != nil {
		return models.EmptyContent(), err
	}
	// Job мог вернуть пустой результат, проглотив отмену.
	if cerr := ctx.Err(); cerr != nil && content.IsEmpty() {
		return models.EmptyContent(), cerr
	}

	return content, nil
}

func (s *Service) register(ctx context.Context, id string) (context.Context, *inflight) {
	ctx, cancel := context.WithCancel(ctx)
	entry := &inflight{cancel: cancel}

	s.mu.Lock()
	prev := s.tasks[id]
	s.tasks[id] = entry
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
	}

	return ctx, entry
}

func (s *Service) unregister(id string, entry *inflight) {
	entry.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tasks[id] == entry {
		delete(s.tasks, id)
	}
}

func (s *Service) debugContent(msg string) models.Content {
	if !s.debug {
		return models.EmptyContent()
	}

	return models.Content{Title: DebugTitle, Body: msg}
}
