package calls

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/pribylovaa/notification-extension/internal/models"
)

// State — состояние звонка с точки зрения получателя.
type State string

const (
	StateIncoming State = "incoming"
	StateMissed   State = "missed"
	StateUnknown  State = "unknown"
)

var errEmptyCallType = errors.New("call content has no type")

// parseContent разбирает calling.content (JSON внутри строки).
func parseContent(raw string) (models.CallContent, error) {
	var c models.CallContent
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return models.CallContent{}, err
	}
	if c.Type == "" {
		return models.CallContent{}, errEmptyCallType
	}

	return c, nil
}

// stateOf: начало звонка без ответа — входящий; отмена/завершение — пропущенный.
func stateOf(c models.CallContent) State {
	switch strings.ToUpper(c.Type) {
	case models.CallSetup, "GROUPSTART", "CONFSTART":
		if !c.Resp {
			return StateIncoming
		}
	case models.CallCancel, "GROUPEND", "CONFEND":
		return StateMissed
	}

	return StateUnknown
}
