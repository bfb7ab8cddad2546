package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/journal"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/metrics"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("ENVIRONMENT"), os.Stdout).WithField("component", "main")
		var cfgErr *homework.ConfigurationError
		if errors.As(err, &cfgErr) {
			for _, key := range cfgErr.Missing {
				logger.Critical(bootLog, fmt.Sprintf("Required environment variable %s is not set", key))
			}
			logger.Critical(bootLog, "Program stopped: required secrets are missing")
			return
		}
		bootLog.WithError(err).Fatal("Could not load application configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.Environment, os.Stdout)
	mainLogger := log.WithField("component", "main")
	mainLogger.WithFields(logrus.Fields{
		"environment":   cfg.Environment,
		"endpoint":      cfg.PracticumEndpoint,
		"poll_schedule": cfg.PollSchedule,
		"timeout":       cfg.RequestTimeout.String(),
		"notify_empty":  cfg.NotifyEmptyResponses,
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	schedule, err := scheduler.ParseSchedule(cfg.PollSchedule)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not parse poll schedule")
	}

	// Initialize the delivery journal (optional)
	journalRepo := journal.Discard
	if cfg.DatabaseURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := idb.NewPostgresConnection(dbCtx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			mainLogger.WithError(err).Fatal("Could not connect to database")
		}
		defer db.Close()
		repo := idb.NewPostgresJournalRepository(db)
		if err := repo.EnsureSchema(dbCtx); err != nil {
			cancel()
			mainLogger.WithError(err).Fatal("Could not prepare journal schema")
		}
		cancel()
		journalRepo = repo
		mainLogger.Info("Delivery journal enabled.")
	}

	// Initialize Telegram Bot
	bot, err := telegram.NewBot(telegram.BotSettings{
		Token:   cfg.TelegramToken,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	notifier := app.NewNotifier(
		telegram.NewTelebotAdapter(bot),
		journalRepo,
		cfg.TelegramChatID,
		log.WithField("component", "notifier"),
	)

	client := practicum.New(practicum.Config{
		Endpoint: cfg.PracticumEndpoint,
		Token:    cfg.PracticumToken,
		Timeout:  cfg.RequestTimeout,
	})

	statusService := app.NewStatusServiceImpl(
		client,
		notifier,
		log.WithField("component", "status_service"),
		time.Now().Unix(),
		cfg.NotifyEmptyResponses,
	)
	pollScheduler := scheduler.NewPollScheduler(statusService, schedule, log.WithField("component", "scheduler"))

	if cfg.MetricsAddr != "" {
		ms := metrics.BootstrapServer(cfg.MetricsAddr, log.WithField("component", "metrics"))
		defer func() { _ = metrics.Shutdown(ms) }()
	}

	if cfg.NotifyOnStart {
		notifier.Notify(ctx, journal.KindService, app.StartupMessage)
	}

	mainLogger.Info("Application setup complete. Polling homework statuses...")
	if err := pollScheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		mainLogger.WithError(err).Error("Poll scheduler stopped unexpectedly")
	}
	mainLogger.Info("Application shut down gracefully.")
}
