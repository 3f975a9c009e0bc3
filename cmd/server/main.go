package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripwatch-service/internal/infrastructure/config"
	"tripwatch-service/internal/infrastructure/oauth"
	"tripwatch-service/internal/infrastructure/persistence"
	"tripwatch-service/internal/interface/httpapi"
	"tripwatch-service/internal/interface/provider"
	mongoRepo "tripwatch-service/internal/interface/repository"
	"tripwatch-service/internal/usecase"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"

	"github.com/robfig/cron/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Trip Watch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up airline and timezone reference repositories
	airlineRepository := mongoRepo.NewGormAirlineRepository(gormDB)
	timezoneRepository := mongoRepo.NewGormTimezoneRepository(gormDB)

	// Set up repositories
	tripRepo := mongoRepo.NewMongoTripRepository(db)
	eventRepo := mongoRepo.NewMongoFlightEventRepository(db)
	messageLogRepo := mongoRepo.NewMongoMessageLogRepository(db)

	// Set up WhatsApp gateway with OAuth
	gatewayOAuth := oauth.NewGatewayOAuth(
		cfg.WhatsAppClientID,
		cfg.WhatsAppClientSecret,
		cfg.WhatsAppTokenURL,
		log,
	)
	whatsappRepo := mongoRepo.NewWhatsappRepository(
		cfg.WhatsAppEndpoint,
		cfg.WhatsAppCompanyID,
		cfg.WhatsAppAgentID,
		gatewayOAuth.GetTokenSource(ctx),
		log,
	)

	// Set up flight provider
	flightProvider := provider.NewAeroAPIClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey, log)

	// Set up metrics and usecases
	appMetrics := metrics.NewMetrics("tripwatch")
	notifier := usecase.NewTripNotifier(whatsappRepo, messageLogRepo, airlineRepository, timezoneRepository, log)
	confirmation := usecase.NewConfirmationSender(tripRepo, notifier, log)
	poller := usecase.NewStatusPoller(tripRepo, eventRepo, flightProvider, notifier, log, appMetrics, usecase.PollerOptions{
		Workers:                cfg.PollWorkers,
		TripTimeout:            cfg.TripTimeout,
		ProviderWindow:         cfg.ProviderWindow,
		FallbackRetry:          cfg.FallbackRetry,
		NotifyFirstObservation: cfg.NotifyFirstObservation,
	})

	// Recurring tick: overlapping passes are skipped, panics recovered
	cronLog := &cronLogger{log: log}
	ticker := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLog),
		cron.Recover(cronLog),
	))
	_, err = ticker.AddFunc(fmt.Sprintf("@every %s", cfg.PollInterval), func() {
		if _, err := poller.RunDueChecks(ctx); err != nil {
			log.Error("Batch pass failed", "error", err)
		}
	})
	if err != nil {
		log.Fatal("Failed to register poll job", "error", err)
	}
	ticker.Start()

	// Run the first pass immediately rather than waiting one interval
	go func() {
		if _, err := poller.RunDueChecks(ctx); err != nil {
			log.Error("Initial batch pass failed", "error", err)
		}
	}()

	// Set up HTTP server
	handler := httpapi.NewHandler(poller, confirmation, log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown: stop the ticker, let an in-flight pass finish
	tickerCtx := ticker.Stop()
	<-tickerCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Trip Watch Service stopped")
}

// cronLogger adapts our logger to the cron.Logger interface
type cronLogger struct {
	log logger.Logger
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug(msg, keysAndValues...)
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error(msg, append(keysAndValues, "error", err)...)
}
