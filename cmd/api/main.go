package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"command-bridge/config"
	_ "command-bridge/docs" // Swagger docs
	"command-bridge/internal/analysis"
	"command-bridge/internal/bridge"
	"command-bridge/internal/command"
	"command-bridge/internal/command/handlers"
	"command-bridge/internal/httpserver"
	"command-bridge/internal/webhook"
	"command-bridge/pkg/log"
)

// @title       Command Bridge API
// @description GitHub webhook receiver with AI-authorship analysis and a websocket command bridge.
// @version     1
// @host        localhost:8081
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting command bridge...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	if cfg.Webhook.Secret == "" {
		logger.Warn(ctx, "No webhook secret configured: every webhook will be rejected. Set GITHUB_WEBHOOK_SECRET.")
	}

	// 3. Analysis state shared by webhooks and commands
	tracker := analysis.NewTracker(time.Now())
	router := webhook.NewRouter(logger, tracker)

	// 4. Command bridge
	registry := bridge.NewRegistry()
	dispatcher := command.New(logger,
		handlers.NewQuickTestHandler(logger),
		handlers.NewAIAnalysisHandler(tracker, logger),
		handlers.NewGitHubWebhookHandler(router, logger),
		handlers.NewProcessFilesHandler(tracker, cfg.Bridge.MaxFileBytes, logger),
	)
	dispatcher.Register(handlers.NewStatusHandler(tracker, registry, dispatcher.Names, httpserver.HealthVersion, logger))

	hub := bridge.NewHub(registry, dispatcher, bridge.Config{
		SendBuffer:      cfg.Bridge.SendBuffer,
		WriteWait:       cfg.Bridge.WriteWait,
		PongWait:        cfg.Bridge.PongWait,
		MaxMessageBytes: cfg.Bridge.MaxMessageBytes,
		AllowedOrigins:  cfg.Bridge.AllowedOrigins,
	}, logger)

	// 5. Webhook endpoint
	webhookHandler := webhook.NewHandler(router, hub, registry, webhook.Config{
		Security: webhook.SecurityConfig{
			Secret:          cfg.Webhook.Secret,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		},
		Port:         cfg.HTTPServer.Port,
		ServiceName:  httpserver.ServiceName,
		MaxBodyBytes: cfg.Webhook.MaxBodyBytes,
	}, logger)

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		WebhookHandler: webhookHandler,
		BridgeHandler:  hub,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// Optional: print the GitHub payload URL when running behind ngrok
	if cfg.Tunnel.NgrokAPI != "" {
		go func() {
			publicURL, err := detectTunnelURL(ctx, cfg.Tunnel.NgrokAPI, 10, 3*time.Second)
			if err != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
				return
			}
			logger.Infof(ctx, "GitHub payload URL: %s/webhook", publicURL)
		}()
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
