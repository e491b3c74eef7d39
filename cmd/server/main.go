package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"voterlink/config"
	_ "voterlink/docs"
	"voterlink/internal/adapters/auth"
	"voterlink/internal/adapters/email"
	"voterlink/internal/adapters/pages"
	"voterlink/internal/adapters/reference"
	"voterlink/internal/adapters/whatsapp"
	deliveryhttp "voterlink/internal/delivery/http"
	"voterlink/internal/delivery/http/controllers"
	"voterlink/internal/delivery/http/middleware"
	"voterlink/internal/repository/postgres"
	"voterlink/internal/services"
)

// @title voterlink API
// @version 1.0
// @description WhatsApp voting-link service: registration, one-time voting links, ballot submission and reference data.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration failed", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	// Database
	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if err := postgres.CreateSchema(ctx, db); err != nil {
		return err
	}
	logger.Info("database schema ready")
	store := postgres.NewStore(db)

	// Adapters
	tokens, err := auth.NewLinkTokenService(cfg.SecretKey, cfg.ServingDomain)
	if err != nil {
		return err
	}
	adminVerifier, err := auth.NewAPIKeyVerifier(cfg.AdminAPIKey, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if cfg.AdminAPIKey == "" {
		logger.Warn("ADMIN_API_KEY not set, admin routes reject every request")
	}

	messageRenderer, err := whatsapp.NewTemplateRenderer()
	if err != nil {
		return err
	}
	sender := whatsapp.NewSender(whatsapp.SenderConfig{
		Provider: cfg.WhatsAppProvider,
		APIURL:   cfg.WABAAPIURL,
		APIKey:   cfg.WABAToken,
		Timeout:  cfg.SendTimeout,
	}, nil, logger)

	emailRenderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AccessKeyID,
			SecretAccessKey: cfg.Email.SecretAccessKey,
		},
	}, logger)

	pageRenderer, err := pages.NewRenderer()
	if err != nil {
		return err
	}

	lookup := reference.New(reference.Config{
		PrecinctsPath:  cfg.PrecinctsCSV,
		CandidatesPath: cfg.CandidatesCSV,
		Office:         cfg.CandidateOffice,
	}, logger)
	// A failed load is logged and served as empty results until an admin reload succeeds.
	_ = lookup.Reload(ctx)

	// Services
	notifier := services.NewNotificationService(sender, messageRenderer, logger)
	alerts := services.NewAlertService(mailer, emailRenderer, cfg.Email.AlertRecipient, logger)
	webhookService := services.NewWebhookService(store, tokens, services.NewAbuseGuard(cfg.AbuseThreshold), notifier, alerts,
		services.WebhookConfig{ServingDomain: cfg.ServingDomain, TokenTTL: cfg.TokenTTL}, logger)
	ballotService := services.NewBallotService(store, tokens, notifier,
		services.BallotConfig{TokenTTL: cfg.TokenTTL, GrantTTL: cfg.GrantTTL}, logger)
	registrationService := services.NewRegistrationService(store, tokens, logger)

	// HTTP
	router := deliveryhttp.NewRouter(
		deliveryhttp.RouterConfig{ServingDomain: cfg.ServingDomain, AdminVerifier: adminVerifier},
		logger,
		controllers.NewWebhookController(logger, webhookService),
		controllers.NewVotingController(logger, ballotService, registrationService, pageRenderer, controllers.VotingConfig{
			RegistrationRedirectURL: cfg.RegistrationRedirectURL,
			SecureCookie:            strings.HasPrefix(cfg.ServingDomain, "https://"),
			LinkValidMinutes:        int(cfg.TokenTTL / time.Minute),
		}),
		controllers.NewReferenceController(logger, lookup),
		controllers.NewHealthController(logger, db, lookup.LoadError),
	)

	var handler http.Handler = router
	handler = middleware.Metrics(handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.SendTimeout + 30*time.Second,
	}

	// signal.Notify requires the channel to be buffered
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-stop
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
			_ = server.Close()
		}
	}()

	logger.Info("listening", "port", cfg.Port, "serving_domain", cfg.ServingDomain)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-drained
	logger.Info("server closed")
	return nil
}
