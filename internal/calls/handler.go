// calls распознаёт звонковые события и передаёт их в VoIP-стек вместо
// обычного уведомления.
package calls

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/notification-extension/internal/models"
	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
)

// ErrIncorrectCallPayload — из события не собирается полный VoIP-payload.
var ErrIncorrectCallPayload = errors.New("incorrect call payload")

// DefaultCallTTL — сколько живёт отметка о звонке, если отбоя не пришло.
const DefaultCallTTL = 2 * time.Minute

// Handler работает от имени одного аккаунта.
type Handler struct {
	accountID uuid.UUID
	registry  Registry
	reporter  Reporter
	callTTL   time.Duration
}

func NewHandler(accountID uuid.UUID, reg Registry, rep Reporter) *Handler {
	return &Handler{
		accountID: accountID,
		registry:  reg,
		reporter:  rep,
		callTTL:   DefaultCallTTL,
	}
}

type callInfo struct {
	conversation uuid.UUID
	sender       uuid.UUID
	state        State
}

// inspect — общая часть классификации и обработки.
func inspect(ev *models.UpdateEvent) (callInfo, bool) {
	if ev == nil || ev.Type() != models.EventOTRMessageAdd {
		return callInfo{}, false
	}

	msg, err := ev.Message()
	if err != nil || msg.Calling == nil {
		return callInfo{}, false
	}

	content, err := parseContent(msg.Calling.Content)
	if err != nil {
		return callInfo{}, false
	}

	info := callInfo{state: stateOf(content)}
	info.sender, _ = ev.SenderID()
	info.conversation, _ = ev.ConversationID()

	return info, true
}

// IsCorrectCallEvent — событие надо обработать как звонок.
// Контракт:
//  1. тип conversation.otr-message-add, расшифрованное сообщение с calling.content,
//     content разбирается;
//  2. известны отправитель и беседа;
//  3. входящий звонок в беседе с уже идущим звонком — false;
//     пропущенный звонок без идущего звонка — false;
//  4. ошибка реестра — false (лучше обычное уведомление, чем потерянный звонок).
func (h *Handler) IsCorrectCallEvent(ctx context.Context, ev *models.UpdateEvent, accountID uuid.UUID) bool {
	const op = "calls.IsCorrectCallEvent"

	info, ok := inspect(ev)
	if !ok {
		return false
	}
	if info.sender == uuid.Nil || info.conversation == uuid.Nil {
		return false
	}

	exists, err := h.registry.Exists(ctx, accountID, info.conversation)
	if err != nil {
		logctx.From(ctx).Warn("call_registry_lookup_failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return false
	}

	switch {
	case info.state == StateIncoming && exists:
		return false
	case info.state == StateMissed && !exists:
		return false
	}

	return true
}

// ProcessCallEvent собирает VoIP-payload, отдаёт его репортёру и обновляет реестр.
func (h *Handler) ProcessCallEvent(ctx context.Context, ev *models.UpdateEvent) error {
	const op = "calls.ProcessCallEvent"

	info, ok := inspect(ev)
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrIncorrectCallPayload)
	}

	p := models.VoIPPayload{
		AccountID:      h.accountID,
		ConversationID: info.conversation,
		SenderID:       info.sender,
		CallState:      string(info.state),
		ServerTime:     ev.ServerTime(),
	}
	if !p.IsComplete() {
		return fmt.Errorf("%s: %w", op, ErrIncorrectCallPayload)
	}

	if err := h.reporter.Report(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var err error
	switch info.state {
	case StateIncoming:
		err = h.registry.Start(ctx, h.accountID, info.conversation, h.callTTL)
	case StateMissed:
		err = h.registry.End(ctx, h.accountID, info.conversation)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
