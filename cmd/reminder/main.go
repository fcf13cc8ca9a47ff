package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event_reminder/internal/app"
	"event_reminder/internal/infra/config"
	idb "event_reminder/internal/infra/database"
	"event_reminder/internal/infra/httpapi"
	"event_reminder/internal/infra/lock"
	"event_reminder/internal/infra/logger"
	"event_reminder/internal/infra/mail"
	"event_reminder/internal/infra/scheduler"
	"event_reminder/internal/infra/telegram"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Event Reminder starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	if err := idb.EnsureSchema(ctx, db); err != nil {
		mainLogger.WithError(err).Fatal("Could not apply database schema")
	}
	mainLogger.Info("Database connection established successfully.")

	eventRepo := idb.NewPostgresEventRepository(db, cfg.CandidateHorizonDays)
	ledger := app.NewMetaLedger(eventRepo)
	clock := app.NewSystemClock(cfg.Location)
	composer := app.NewMessageComposer(cfg.Location, cfg.EventLinkBase)
	notifier := mail.NewSMTPNotifier(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailRatePerSec,
		logger.Component("mail"),
	)

	var passLock app.PassLock
	if cfg.RedisURL != "" {
		redisLock, err := lock.NewRedisPassLock(ctx, cfg.RedisURL, cfg.PassLockTTL, logger.Component("lock"))
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not connect to redis")
		}
		defer redisLock.Close()
		passLock = redisLock
		mainLogger.Info("Distributed pass lock enabled.")
	}

	var bot *telebot.Bot
	var reporter app.PassReporter
	if cfg.TelegramToken != "" {
		bot, err = newBot(cfg.TelegramToken, logger.Component("telebot"))
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not create Telegram bot")
		}
		reporter = telegram.NewTelebotAdapter(bot, cfg.AdminTelegramID)
	}

	reminderService := app.NewReminderServiceImpl(
		eventRepo,
		ledger,
		notifier,
		composer,
		clock,
		passLock,
		reporter,
		logger.Component("reminders"),
	)

	if bot != nil {
		adminService := app.NewAdminService(eventRepo, reminderService, ledger, clock, cfg.AdminTelegramID)
		botLogger := logger.Component("telegram")
		telegram.RegisterBotCommands(bot, cfg.AdminTelegramID, botLogger)
		telegram.RegisterAdminHandlers(ctx, bot, adminService, cfg.AdminTelegramID, botLogger)
		telegram.RegisterCallbackHandlers(ctx, bot, adminService, botLogger)
		go bot.Start()
		mainLogger.Info("Telegram admin bot started.")
	}

	var apiServer *httpapi.Server
	if cfg.HTTPAddr != "" {
		apiServer = httpapi.NewServer(cfg.HTTPAddr, cfg.AdminJWTSecret, reminderService, logger.Component("http"))
		apiServer.Start()
	}

	reminderScheduler := scheduler.NewReminderScheduler(
		reminderService,
		logger.Component("scheduler"),
		cfg.Location,
		cfg.CronSpecDaily,
		cfg.PassTimeout,
	)
	if err := reminderScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start scheduler")
	}
	if cfg.RunOnStart {
		go reminderScheduler.RunOnce(ctx)
	}

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		mainLogger.WithError(err).Warn("Failed to notify systemd")
	} else if ok {
		mainLogger.Debug("Notified systemd of readiness.")
	}
	mainLogger.Info("Application setup complete.")

	<-ctx.Done()

	mainLogger.Info("Shutting down application...")
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	reminderScheduler.Stop()
	if bot != nil {
		bot.Stop()
	}
	if apiServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			mainLogger.WithError(err).Warn("HTTP API did not shut down cleanly")
		}
		cancel()
	}
	mainLogger.Info("Application shut down gracefully.")
}

func newBot(token string, log *logrus.Entry) (*telebot.Bot, error) {
	pref := telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := log.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"message":   c.Text(),
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
				})
			}
			entry.Error("Telegram handler error")
		},
	}
	return telebot.NewBot(pref)
}
