package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"voterlink/internal/domain"
)

// DefaultAPIURL is the 360dialog Cloud API messages endpoint.
const DefaultAPIURL = "https://waba-v2.360dialog.io/messages"

// SenderConfig holds configuration for creating a MessageSender.
type SenderConfig struct {
	Provider string
	APIURL   string
	APIKey   string
	Timeout  time.Duration
}

// NewSender creates a MessageSender from config. Provider "360dialog" posts to
// the WhatsApp Cloud API through 360dialog; "noop" or unknown only logs.
func NewSender(config SenderConfig, client *http.Client, logger *slog.Logger) domain.MessageSender {
	switch config.Provider {
	case "360dialog":
		if client == nil {
			client = &http.Client{Timeout: config.Timeout}
		}
		apiURL := config.APIURL
		if apiURL == "" {
			apiURL = DefaultAPIURL
		}
		if config.APIKey == "" {
			logger.Warn("WABA_TOKEN is not set, outbound WhatsApp messages will fail")
		}
		return &dialogSender{
			client: client,
			apiURL: apiURL,
			apiKey: config.APIKey,
			logger: logger.With("provider", "360dialog"),
		}
	case "noop":
		return &noopSender{logger: logger}
	default:
		logger.Warn("unknown whatsapp provider, using noop", "provider", config.Provider)
		return &noopSender{logger: logger}
	}
}

type textContent struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type sendRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	RecipientType    string      `json:"recipient_type"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textContent `json:"text"`
}

type dialogSender struct {
	client *http.Client
	apiURL string
	apiKey string
	logger *slog.Logger
}

func (s *dialogSender) Send(ctx context.Context, to, body string) error {
	if s.apiKey == "" {
		return fmt.Errorf("whatsapp api key not configured")
	}
	payload, err := json.Marshal(sendRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             textContent{PreviewURL: false, Body: body},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("D360-API-KEY", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	s.logger.DebugContext(ctx, "whatsapp message accepted", "to", to, "status", resp.StatusCode)
	return nil
}

type noopSender struct {
	logger *slog.Logger
}

func (n *noopSender) Send(ctx context.Context, to, body string) error {
	n.logger.InfoContext(ctx, "whatsapp message would be sent (noop)", "to", to, "body", body)
	return nil
}
