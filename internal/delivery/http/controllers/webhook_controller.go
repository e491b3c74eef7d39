package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"voterlink/internal/delivery/http/helpers"
	"voterlink/internal/domain"
)

// maxWebhookBody bounds the inbound webhook payload.
const maxWebhookBody = 1 << 20

// WebhookController receives inbound WhatsApp deliveries.
type WebhookController struct {
	Logger  *slog.Logger
	Service domain.WebhookService
}

// NewWebhookController creates a WebhookController with the given logger and service.
func NewWebhookController(logger *slog.Logger, svc domain.WebhookService) *WebhookController {
	return &WebhookController{
		Logger:  logger,
		Service: svc,
	}
}

// Receive godoc
// @Summary Inbound WhatsApp webhook
// @Description Accepts a provider webhook delivery (nested Meta shape or flat shape). Always answers 200 "ok" so the provider does not retry; failures are logged.
// @Tags webhook
// @Accept json
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /whatsapp [post]
func (c *WebhookController) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		c.Logger.WarnContext(r.Context(), "webhook body unreadable", "err", err)
		helpers.WriteText(w, http.StatusOK, "ok")
		return
	}
	outcome, err := c.Service.HandleInbound(r.Context(), body)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "webhook processing failed", "err", err)
	} else {
		c.Logger.DebugContext(r.Context(), "webhook processed", "outcome", outcome)
	}
	helpers.WriteText(w, http.StatusOK, "ok")
}
