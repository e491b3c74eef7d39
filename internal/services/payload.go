package services

import (
	"encoding/json"
	"strings"

	"voterlink/internal/domain"
)

// looseString accepts a JSON string or number. Any other value decodes to
// the empty string, so one odd field does not discard the whole message.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = looseString(num.String())
		return nil
	}
	*s = ""
	return nil
}

type textBody struct {
	Body looseString `json:"body"`
}

type buttonBody struct {
	Text looseString `json:"text"`
}

type replyBody struct {
	Title looseString `json:"title"`
}

type interactiveBody struct {
	ButtonReply *replyBody `json:"button_reply"`
	ListReply   *replyBody `json:"list_reply"`
}

type webhookMessage struct {
	ID          looseString      `json:"id"`
	From        looseString      `json:"from"`
	WaID        looseString      `json:"wa_id"`
	Text        *textBody        `json:"text"`
	Button      *buttonBody      `json:"button"`
	Interactive *interactiveBody `json:"interactive"`
}

type webhookPayload struct {
	// Meta Cloud API shape.
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []*webhookMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
	// 360dialog flat shape.
	Messages []*webhookMessage `json:"messages"`
}

// NormalizePayload extracts the first inbound message from a Meta Cloud or
// 360dialog webhook body. It returns nil when the body carries no message,
// including when it is not valid JSON.
func NormalizePayload(raw []byte) *domain.InboundMessage {
	var p webhookPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	var messages []*webhookMessage
	if len(p.Entry) > 0 && len(p.Entry[0].Changes) > 0 {
		messages = p.Entry[0].Changes[0].Value.Messages
	}
	if len(messages) == 0 {
		messages = p.Messages
	}
	if len(messages) == 0 || messages[0] == nil {
		return nil
	}
	m := messages[0]
	from := m.From
	if from == "" {
		from = m.WaID
	}
	return &domain.InboundMessage{
		MessageID:  strings.TrimSpace(string(m.ID)),
		FromNumber: NormalizePhone(string(from)),
		Text:       strings.TrimSpace(messageText(m)),
	}
}

func messageText(m *webhookMessage) string {
	switch {
	case m.Text != nil:
		return string(m.Text.Body)
	case m.Button != nil:
		return string(m.Button.Text)
	case m.Interactive != nil && m.Interactive.ButtonReply != nil:
		return string(m.Interactive.ButtonReply.Title)
	case m.Interactive != nil && m.Interactive.ListReply != nil:
		return string(m.Interactive.ListReply.Title)
	}
	return ""
}

var triggerWords = []string{"votar", "enlace", "link", "participar", "quiero votar"}

// hasTrigger reports whether text contains one of the request keywords.
// Keywords are informational only.
func hasTrigger(text string) bool {
	lc := strings.ToLower(text)
	for _, w := range triggerWords {
		if strings.Contains(lc, w) {
			return true
		}
	}
	return false
}
