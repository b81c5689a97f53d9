package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/pribylovaa/notification-extension/internal/job"
	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/pribylovaa/notification-extension/internal/network"
	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
)

// ErrInvalidWakeup — сообщение не является пробуждением.
var ErrInvalidWakeup = errors.New("invalid wakeup message")

// MessageReader — часть *kafka.Reader, нужная консюмеру.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// MessageWriter — часть *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Extension — *extension.Service.
type Extension interface {
	DidReceive(ctx context.Context, req models.Request) models.Content
}

// Notification — то, что уходит в топик уведомлений.
type Notification struct {
	Identifier string    `json:"identifier"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body"`
	ThreadID   string    `json:"thread_id,omitempty"`
	RenderedAt time.Time `json:"rendered_at"`
}

type Consumer struct {
	reader MessageReader
	writer MessageWriter
	ext    Extension
	budget time.Duration
	now    func() time.Time
}

// NewConsumer; budget — бюджет одного пробуждения (<=0 — без дедлайна).
func NewConsumer(r MessageReader, w MessageWriter, ext Extension, budget time.Duration) *Consumer {
	return &Consumer{reader: r, writer: w, ext: ext, budget: budget, now: time.Now}
}

// Run читает пробуждения до отмены ctx.
// Контракт:
//  1. сообщения обрабатываются по одному, по порядку партиции;
//  2. оффсет коммитится после обработки, в т.ч. неудачной: уведомления эфемерны,
//     повторный показ хуже пропущенного;
//  3. отмена ctx — нормальное завершение (nil); ошибка чтения или коммита — возврат ошибки.
func (c *Consumer) Run(ctx context.Context) error {
	const op = "transport.kafka.Run"

	log := logctx.From(ctx).With(slog.String("op", op))
	log.Info("kafka_consumer_started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("kafka_consumer_stopped")
				return nil
			}
			return fmt.Errorf("%s: fetch: %w", op, err)
		}

		if err := c.Handle(ctx, msg); err != nil {
			log.Warn("kafka_wakeup_failed",
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
				slog.String("err", err.Error()),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%s: commit: %w", op, err)
		}
	}
}

// Handle обрабатывает одно пробуждение.
// Контракт:
//  1. value — {identifier, user_info}; пустой identifier заменяется на topic/partition/offset;
//  2. битый JSON или payload — ErrInvalidWakeup / job.ErrMalformedPushPayload;
//  3. непустой контент публикуется с ключом user id; пустой — не публикуется.
func (c *Consumer) Handle(ctx context.Context, msg kafka.Message) error {
	const op = "transport.kafka.Handle"

	var req models.Request
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidWakeup, err)
	}
	if req.Identifier == "" {
		req.Identifier = msg.Topic + "/" + strconv.Itoa(msg.Partition) + "/" + strconv.FormatInt(msg.Offset, 10)
	}

	payload, err := job.ParsePushPayload(req.UserInfo)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	jobCtx := network.ContextWithRequestID(ctx, req.Identifier)
	if c.budget > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(jobCtx, c.budget)
		defer cancel()
	}

	content := c.ext.DidReceive(jobCtx, req)
	if content.IsEmpty() {
		return nil
	}

	value, err := json.Marshal(Notification{
		Identifier: req.Identifier,
		UserID:     payload.UserID.String(),
		Title:      content.Title,
		Body:       content.Body,
		ThreadID:   content.ThreadID,
		RenderedAt: c.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(payload.UserID.String()),
		Value:   value,
		Headers: []kafka.Header{{Key: "identifier", Value: []byte(req.Identifier)}},
	}); err != nil {
		return fmt.Errorf("%s: publish: %w", op, err)
	}

	return nil
}
