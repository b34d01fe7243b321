package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/awnationwide/lead-intake/cmd/mainconfig"
	"github.com/awnationwide/lead-intake/internal/api/router"
	"github.com/awnationwide/lead-intake/internal/chatbot"
	appconfig "github.com/awnationwide/lead-intake/internal/config"
	"github.com/awnationwide/lead-intake/internal/delivery"
	"github.com/awnationwide/lead-intake/internal/http/handlers"
	httpmiddleware "github.com/awnationwide/lead-intake/internal/http/middleware"
	"github.com/awnationwide/lead-intake/internal/notify"
	"github.com/awnationwide/lead-intake/internal/observability/metrics"
	"github.com/awnationwide/lead-intake/pkg/logging"
)

func main() {
	// Load .env in development; ignore absence in production.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting lead-intake API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	deliveryMetrics := metrics.NewDeliveryMetrics(registry)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// Email sender selection: SendGrid, SES, or disabled.
	var emailSender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); s != nil {
			emailSender = s
		}
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		if s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); s != nil {
			emailSender = s
		}
	}

	channels := []delivery.Channel{
		delivery.NewCRMChannel(cfg.SupermoveURL, httpClient, logger),
		delivery.NewEmailChannel(emailSender, cfg.LeadEmailRecipients, logger),
		delivery.NewChatWebhookChannel(cfg.ChatWebhookURL, httpClient, logger),
	}
	orchestrator := delivery.NewOrchestrator(channels, delivery.OrchestratorConfig{
		Timeout:          cfg.ChannelTimeout,
		RequiredChannels: cfg.RequiredChannels,
	}, deliveryMetrics, logger)
	logger.Info("delivery channels configured", "channels", orchestrator.ConfiguredChannels())

	allowlist := httpmiddleware.NewAllowlist(cfg.AllowedHosts)

	// Chat responder: Gemini when a key is present, canned replies otherwise
	// or when bypass is forced.
	var responder chatbot.Responder = chatbot.NewCannedResponder()
	hasAI := false
	if cfg.GeminiAPIKey != "" && !cfg.ChatBypass {
		gemini, err := chatbot.NewGeminiResponder(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini responder, falling back to canned replies", "error", err)
		} else {
			defer gemini.Close()
			responder = gemini
			hasAI = true
		}
	}

	intakeHandler := handlers.NewIntakeHandler(orchestrator, allowlist.Hosts(), deliveryMetrics, logger)
	chatHandler := chatbot.NewHandler(responder, allowlist.Hosts(), hasAI, cfg.ChatBypass, logger)

	r := router.New(&router.Config{
		Logger:         logger,
		IntakeHandler:  intakeHandler,
		ChatHandler:    chatHandler,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Allowlist:      allowlist,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
