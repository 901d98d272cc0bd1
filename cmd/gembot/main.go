package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gembot/internal/bot"
	"gembot/internal/config"
	"gembot/internal/heartbeat"
	"gembot/internal/llm"
	"gembot/internal/logger"
	"gembot/internal/metrics"
	"gembot/internal/storage"
)

func init() {
	godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	generation, err := config.LoadGeneration(cfg.SettingsPath)
	if err != nil {
		logger.Fatal("failed to load generation settings", "error", err)
	}

	model, err := llm.New(llm.Config{
		Provider:    cfg.LLM.Provider,
		ProjectID:   cfg.LLM.ProjectID,
		Location:    cfg.LLM.Location,
		Model:       cfg.LLM.Model,
		VisionModel: cfg.LLM.VisionModel,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Generation:  generation,
	})
	if err != nil {
		logger.Fatal("failed to create llm", "error", err)
	}

	// image archive (optional)
	var archive *storage.Client
	if cfg.Storage.Enabled() {
		archive, err = storage.NewClient(storage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
		})
		if err != nil {
			logger.Error("failed to create storage client", "error", err)
		} else {
			initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := archive.Init(initCtx); err != nil {
				logger.Error("failed to init archive bucket", "error", err)
				archive = nil
			} else {
				logger.Info("image archive enabled", "endpoint", cfg.Storage.Endpoint)
			}
			cancel()
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.New("gembot")

		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()

		logger.Info("metrics enabled", "addr", cfg.MetricsAddr)
	}

	b, err := bot.NewTelegram(bot.Config{
		Token:        cfg.BotToken,
		Timeout:      cfg.ConversationTimeout,
		LogConflicts: cfg.LogConflicts,
	}, model, archive, m)
	if err != nil {
		logger.Fatal("failed to create telegram bot", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go b.Start(ctx)

	if cfg.HeartbeatSchedule != "" && cfg.OwnerChatID != 0 {
		reporter, err := heartbeat.New(cfg.HeartbeatSchedule, cfg.OwnerChatID, b.Send)
		if err != nil {
			logger.Fatal("failed to schedule heartbeat", "error", err)
		}
		reporter.Start()
		defer reporter.Stop()
	}

	logger.Info("gembot started",
		"llm", cfg.LLM.Provider,
		"timeout", cfg.ConversationTimeout,
		"archive", archive != nil,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	cancel()
}
