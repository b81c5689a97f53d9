// content превращает расшифрованное событие в текст уведомления.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/notification-extension/internal/models"
)

// ErrNoDisplayableContent — у события нет видимого представления.
var ErrNoDisplayableContent = errors.New("no displayable content")

const (
	BodyKnock = "pinged"
	BodyAsset = "shared a file"
)

// Provider без состояния; Title задаётся, если хост хочет фиксированный заголовок.
type Provider struct {
	Title string
}

func NewProvider() *Provider { return &Provider{} }

// NotificationContent.
// Контракт:
//  1. только расшифрованные conversation.otr-message-add;
//  2. text — тело = текст, пустой текст — ErrNoDisplayableContent;
//     knock — "pinged"; asset — "shared a file";
//  3. thread id — беседа, если известна;
//  4. всё остальное (в т.ч. conversation.member-join) — ErrNoDisplayableContent.
func (p *Provider) NotificationContent(_ context.Context, ev *models.UpdateEvent) (models.Content, error) {
	const op = "content.NotificationContent"

	if ev == nil || ev.Type() != models.EventOTRMessageAdd {
		return models.Content{}, fmt.Errorf("%s: %w", op, ErrNoDisplayableContent)
	}

	msg, err := ev.Message()
	if err != nil {
		return models.Content{}, fmt.Errorf("%s: %w: %v", op, ErrNoDisplayableContent, err)
	}

	var body string
	switch {
	case msg.Text != nil && msg.Text.Content != "":
		body = msg.Text.Content
	case msg.Knock != nil:
		body = BodyKnock
	case msg.HasAsset():
		body = BodyAsset
	default:
		return models.Content{}, fmt.Errorf("%s: %w", op, ErrNoDisplayableContent)
	}

	c := models.Content{Title: p.Title, Body: body}
	if conv, ok := ev.ConversationID(); ok {
		c.ThreadID = conv.String()
	}

	return c, nil
}
