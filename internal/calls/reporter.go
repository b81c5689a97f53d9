package calls

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/notification-extension/internal/models"
	"github.com/segmentio/kafka-go"
)

// Reporter передаёт VoIP-payload в VoIP-стек.
type Reporter interface {
	Report(ctx context.Context, p models.VoIPPayload) error
}

// MessageWriter — часть *kafka.Writer, которая нужна репортёру.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaReporter пишет payload в VoIP-топик; ключ — беседа, чтобы события
// одного звонка шли в одну партицию по порядку.
type KafkaReporter struct {
	w MessageWriter
}

func NewKafkaReporter(w MessageWriter) *KafkaReporter {
	return &KafkaReporter{w: w}
}

func (r *KafkaReporter) Report(ctx context.Context, p models.VoIPPayload) error {
	const op = "calls.KafkaReporter.Report"

	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := kafka.Message{
		Key:   []byte(p.ConversationID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "account_id", Value: []byte(p.AccountID.String())},
			{Key: "call_state", Value: []byte(p.CallState)},
		},
	}

	if err := r.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LogReporter — когда Kafka отключена: payload только логируется.
type LogReporter struct {
	log *slog.Logger
}

func NewLogReporter(l *slog.Logger) *LogReporter {
	if l == nil {
		l = slog.Default()
	}

	return &LogReporter{log: l}
}

func (r *LogReporter) Report(ctx context.Context, p models.VoIPPayload) error {
	r.log.LogAttrs(ctx, slog.LevelInfo, "voip_payload_reported",
		slog.String("account_id", p.AccountID.String()),
		slog.String("conversation_id", p.ConversationID.String()),
		slog.String("call_state", p.CallState),
	)

	return nil
}
