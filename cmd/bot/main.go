package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordbot/internal/config"
	"wordbot/internal/handler"
	"wordbot/internal/metrics"
	"wordbot/internal/middleware"
	"wordbot/internal/provider"
	"wordbot/internal/provider/cambridge"
	"wordbot/internal/provider/deepl"
	"wordbot/internal/provider/freedict"
	"wordbot/internal/provider/google"
	"wordbot/internal/repository"
	"wordbot/internal/repository/api"
	"wordbot/internal/repository/memory"
	"wordbot/internal/repository/postgres"
	"wordbot/internal/service"
	"wordbot/internal/session"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Word Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("store", cfg.Store.Driver),
		zap.String("session_store", cfg.Session.Store),
		zap.Strings("translators", cfg.Providers.Translators),
		zap.String("dictionary", cfg.Providers.Dictionary),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize repositories
	var (
		vocabRepo repository.VocabularyRepository
		chatRepo  repository.ChatRepository
	)
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		vocabRepo = postgres.NewVocabularyRepo(db)
		chatRepo = postgres.NewChatRepo(db)
	default:
		vocabRepo = api.NewStore(cfg.Store.APIURL, cfg.Store.APIKey, cfg.Store.Timeout, logger)
		chatRepo = memory.NewChatRepo()
	}

	// Initialize providers
	translators := buildTranslators(cfg.Providers, logger)
	if len(translators) == 0 {
		logger.Fatal("No translator is usable, check TRANSLATORS and DEEPL_API_KEY")
	}

	var dictionary provider.Dictionary
	switch cfg.Providers.Dictionary {
	case config.DictionaryFreeDict:
		dictionary = freedict.NewDictionary(logger)
	default:
		dictionary = cambridge.NewDictionary(logger)
	}

	// Initialize services
	translationService := service.NewTranslationService(translators, cfg.Providers.Timeout, m, logger)
	definitionService := service.NewDefinitionService(dictionary, translators[0], cfg.Providers.Timeout, m, logger)
	quizService := service.NewQuizService(vocabRepo, logger)
	vocabularyService := service.NewVocabularyService(vocabRepo, cfg.Store.Timeout, m, logger)

	// Initialize session store
	var store session.Store
	switch cfg.Session.Store {
	case config.SessionRedis:
		client, err := session.NewRedisClient(ctx, cfg.Session.RedisAddr, cfg.Session.RedisPassword)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		store = session.NewRedisStore(client, cfg.Session.TTL)
	default:
		store = session.NewMemoryStore()
	}

	machine := session.NewMachine(store, session.Services{
		Translations: translationService,
		Definitions:  definitionService,
		Quiz:         quizService,
		Vocabulary:   vocabularyService,
	}, session.Images{
		Welcome: cfg.WelcomeImage,
		QuizEnd: cfg.QuizEndImage,
	}, m, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Telegram handler error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	bot.Use(middleware.Logger(logger))

	// Initialize handler
	h := handler.NewHandler(bot, machine, chatRepo, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = startMetricsServer(cfg.MetricsAddr, logger)
	}

	// Start reminder job in background
	if cfg.Reminder.Enabled {
		reminders := service.NewReminderService(chatRepo, vocabRepo, machine, h, logger)
		go runReminderJob(ctx, reminders, cfg.Reminder, logger)
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to stop metrics server", zap.Error(err))
		}
		shutdownCancel()
	}

	logger.Info("Bot stopped gracefully")
}

// buildTranslators keeps the configured order; DeepL needs a key
func buildTranslators(cfg config.ProviderConfig, logger *zap.Logger) []provider.Translator {
	var out []provider.Translator
	for _, name := range cfg.Translators {
		switch name {
		case config.TranslatorGoogle:
			out = append(out, google.NewTranslator(logger))
		case config.TranslatorDeepL:
			if cfg.DeepLAPIKey == "" {
				logger.Warn("DEEPL_API_KEY is empty, DeepL translator disabled")
				continue
			}
			out = append(out, deepl.NewTranslator(cfg.DeepLAPIKey, logger))
		}
	}
	return out
}

func startMetricsServer(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("Metrics server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()
	return srv
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runReminderJob sends the quiz reminder once a day at the configured UTC time
func runReminderJob(ctx context.Context, reminders *service.ReminderService, rc config.ReminderConfig, logger *zap.Logger) {
	for {
		next := service.NextRun(time.Now(), rc.Hour, rc.Minute)
		logger.Info("Next reminder scheduled", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Reminder job stopped")
			return
		case <-timer.C:
			sent, err := reminders.SendReminders(ctx)
			if err != nil {
				logger.Error("Failed to send reminders", zap.Error(err))
				continue
			}
			logger.Info("Reminders sent", zap.Int("chats", sent))
		}
	}
}
