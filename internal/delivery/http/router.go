package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"voterlink/internal/delivery/http/controllers"
	"voterlink/internal/delivery/http/helpers"
	"voterlink/internal/delivery/http/middleware"
	"voterlink/internal/domain"
)

// RouterConfig holds the settings routes need besides the controllers.
type RouterConfig struct {
	// ServingDomain is the public base URL; its host is what the Referer checks accept.
	ServingDomain string
	// AdminVerifier authorizes the admin routes.
	AdminVerifier domain.TokenVerifier
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	cfg RouterConfig,
	logger *slog.Logger,
	webhookController *controllers.WebhookController,
	votingController *controllers.VotingController,
	referenceController *controllers.ReferenceController,
	healthController *controllers.HealthController,
) *http.ServeMux {
	mux := http.NewServeMux()
	host := helpers.HostOf(cfg.ServingDomain)
	requireAdmin := middleware.RequireAuth(cfg.AdminVerifier, logger)
	sameSite := func(message string) func(http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireReferer(host, message, logger)
	}

	// WhatsApp webhook
	mux.HandleFunc("POST /whatsapp", webhookController.Receive)

	// Voting pages
	mux.HandleFunc("GET /{$}", votingController.Index)
	mux.HandleFunc("GET /generar_link", votingController.RegisterForm)
	mux.HandleFunc("POST /generar_link", votingController.Register)
	mux.HandleFunc("GET /votar", votingController.Vote)
	mux.HandleFunc("GET /preguntas", votingController.FAQ)
	mux.HandleFunc("POST /enviar_voto", sameSite(controllers.MsgForeignReferer)(votingController.Submit))

	// Reference data
	mux.HandleFunc("GET /api/recintos", sameSite(controllers.MsgReferenceForbidden)(referenceController.Precincts))
	mux.HandleFunc("GET /api/candidatos", sameSite(controllers.MsgReferenceForbidden)(referenceController.Candidates))

	// Admin
	mux.HandleFunc("POST /admin/reference/reload", requireAdmin(referenceController.Reload))

	// Operations
	mux.HandleFunc("GET /healthz", healthController.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
