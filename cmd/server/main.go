package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barberbook/internal/api"
	"barberbook/internal/auth"
	"barberbook/internal/config"
	"barberbook/internal/database"
	"barberbook/internal/domain"
	"barberbook/internal/events"
	"barberbook/internal/logging"
	"barberbook/internal/mail"
	"barberbook/internal/metrics"
	"barberbook/internal/models"
	"barberbook/internal/notify"
	"barberbook/internal/repository"
	"barberbook/internal/service"
	"barberbook/internal/sheets"
	"barberbook/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slotCache := buildSlotCache(redisClient, &logger)
	notifier := buildNotifier(cfg, &logger)
	barber := buildBarberChannel(cfg, &logger)
	catalog := loadServicesCatalog(cfg, &logger)

	eventBus := events.NewEventBus()
	subscribeEventLog(eventBus, &logger)

	sheetsService := initGoogleSheets(cfg, &logger)

	var syncWorker domain.SyncWorker
	if sheetsService != nil {
		w := worker.NewSheetsWorker(db, sheetsService, redisClient, worker.RetryPolicy{}, &logger)
		syncWorker = w
		go w.Start(ctx)
	}

	if cfg.Backup.Enabled {
		backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backup.Start(ctx)
	}

	bookingService := service.NewBookingService(
		db, slotCache, notifier, barber, eventBus, syncWorker, cfg.Schedule, &logger,
	)

	gate := auth.NewGate(cfg.Admin, cfg.Auth)

	httpServer := api.NewHTTPServer(
		cfg.Server, cfg.RateLimit, cfg.Exports, bookingService, gate, catalog, &logger,
	)

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "server-main").Logger()

	return cfg, logger, closer, nil
}

func loadServicesCatalog(cfg *config.Config, logger *zerolog.Logger) []models.ServiceItem {
	servicesPath := cfg.Server.ServicesPath
	if servicesPath == "" {
		servicesPath = "configs/services.yaml"
	}
	data, err := os.ReadFile(servicesPath)
	if err != nil {
		logger.Warn().Err(err).Str("services_path", servicesPath).Msg("read services catalog, continuing without it")
		return nil
	}

	var catalog struct {
		Services []models.ServiceItem `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		logger.Warn().Err(err).Str("services_path", servicesPath).Msg("parse services catalog, continuing without it")
		return nil
	}

	return catalog.Services
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)

	if err := repository.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// buildSlotCache layers redis over an in-memory cache, so availability reads
// survive a redis outage.
func buildSlotCache(redisClient *redis.Client, logger *zerolog.Logger) domain.SlotCache {
	ttl := time.Duration(models.DefaultBookedTimesTTL) * time.Second
	memory := repository.NewMemorySlotCache(ttl)
	if redisClient == nil {
		return memory
	}
	primary := repository.NewRedisSlotCache(redisClient, ttl)
	return repository.NewFailoverSlotCache(primary, memory, logger)
}

func buildNotifier(cfg *config.Config, logger *zerolog.Logger) domain.Notifier {
	if cfg.SMTP.Host == "" {
		logger.Warn().Msg("smtp is not configured, using log-only mail")
		return mail.NewLogNotifier(logger)
	}
	return mail.NewMailer(cfg.SMTP, cfg.Schedule, logger)
}

func buildBarberChannel(cfg *config.Config, logger *zerolog.Logger) service.BarberChannel {
	tn, err := notify.NewTelegramNotifier(cfg.Telegram, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, continuing without it")
		return nil
	}
	if tn == nil {
		return nil
	}
	return tn
}

func initGoogleSheets(cfg *config.Config, logger *zerolog.Logger) *sheets.SheetsService {
	if cfg.Google.CredentialsFile == "" || cfg.Google.BookingSpreadSheetID == "" {
		return nil
	}

	sheetsService, err := sheets.NewSheetsService(cfg.Google.CredentialsFile, cfg.Google.BookingSpreadSheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}

	logger.Info().Msg("google sheets connected")
	return sheetsService
}

func subscribeEventLog(bus *events.EventBus, logger *zerolog.Logger) {
	handler := func(event *events.Event) error {
		logger.Info().
			Str("event_id", event.ID).
			Str("event_type", event.Type).
			Msg("booking event")
		return nil
	}
	bus.Subscribe(events.EventBookingCreated, handler)
	bus.Subscribe(events.EventBookingStatusChanged, handler)
	bus.Subscribe(events.EventBookingDeleted, handler)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.Server.Port).Msg("server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSecs)*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
