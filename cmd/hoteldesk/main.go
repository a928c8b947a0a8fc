package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	bookingapp "hoteldesk/internal/app/bookings"
	"hoteldesk/internal/app/policies"
	ratesapp "hoteldesk/internal/app/rates"
	"hoteldesk/internal/domain/audit"
	"hoteldesk/internal/domain/availability"
	"hoteldesk/internal/domain/booking"
	"hoteldesk/internal/domain/pricing"
	"hoteldesk/internal/domain/shared/money"
	"hoteldesk/internal/infra/broker/kafka"
	"hoteldesk/internal/infra/config"
	mongodb "hoteldesk/internal/infra/db/mongo"
	ginserver "hoteldesk/internal/infra/http/gin"
	"hoteldesk/internal/infra/obs"
	outboxworker "hoteldesk/internal/infra/outbox"
	"hoteldesk/internal/infra/storage/memory"
	"hoteldesk/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		cfg.Env = getenv("APP_ENV", "dev")
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
	}
	logger := obs.NewLogger(cfg.Env)
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("application bootstrap failed", "error", err)
		os.Exit(1)
	}

	fixturesPath := cfg.FixturesPath
	if fixturesPath == "" {
		fixturesPath = defaultFixturesPath()
	}
	if err := app.loadFixtures(ctx, fixturesPath, logger); err != nil {
		logger.Warn("fixtures load failed", "error", err, "path", fixturesPath)
	}

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		app.close()
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	worker   *outboxworker.Worker
	ready    func() error
	close    func()

	rooms     *memory.RoomRepository
	mealPlans *memory.MealPlanRepository
	seasons   *memory.SeasonRepository
	channels  *memory.ChannelRepository
}

func buildApplication(cfg config.Config, logger *slog.Logger) (*application, error) {
	roomRepo := memory.NewRoomRepository()
	planRepo := memory.NewMealPlanRepository()
	seasonRepo := memory.NewSeasonRepository()
	channelRepo := memory.NewChannelRepository()
	overrideRepo := memory.NewOverrideRepository()
	outboxStore := memory.NewOutbox()

	var bookingRepo booking.Repository = memory.NewBookingRepository()
	var auditLog audit.Log = memory.NewAuditLog()
	ready := func() error { return nil }
	closers := []func(){}

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		bookingRepo = mongodb.NewBookingRepository(client.DB)
		auditLog = mongodb.NewAuditLog(client.DB)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		logger.Info("mongo storage enabled", "database", cfg.MongoDB)
	}

	converter, err := money.NewConverter(cfg.BaseCurrency, cfg.CurrencyRates)
	if err != nil {
		return nil, err
	}
	engine := &pricing.Engine{
		Rooms:          roomRepo,
		MealPlans:      planRepo,
		Seasons:        seasonRepo,
		Channels:       channelRepo,
		Overrides:      overrideRepo,
		TaxRatePercent: cfg.TaxRatePercent,
		Converter:      converter,
	}

	var uploader s3.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		store, err := s3.NewStore(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			logger.Warn("object storage unavailable, exports stay local", "error", err)
		} else {
			uploader = store
		}
	}

	var worker *outboxworker.Worker
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Warn("kafka unavailable, events stay in the outbox", "error", err)
		} else {
			worker = &outboxworker.Worker{
				Store:       outboxStore,
				Producer:    producer,
				Logger:      logger,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
			}
			closers = append(closers, func() {
				if err := producer.Close(); err != nil {
					logger.Warn("kafka producer close failed", "error", err)
				}
			})
		}
	}

	ratesService := &ratesapp.Service{
		Engine:    engine,
		Rooms:     roomRepo,
		Overrides: overrideRepo,
		Audit:     auditLog,
		Outbox:    outboxStore,
		Uploader:  uploader,
		Logger:    logger,
	}
	bookingService := &bookingapp.Service{
		Bookings: bookingRepo,
		Rooms:    roomRepo,
		Checker:  availability.NewChecker(bookingRepo),
		Engine:   engine,
		Outbox:   outboxStore,
		Logger:   logger,
	}
	policyService := &policies.Service{
		MealPlans: planRepo,
		Seasons:   seasonRepo,
		Channels:  channelRepo,
		Audit:     auditLog,
		Logger:    logger,
	}

	return &application{
		handlers: ginserver.Handlers{
			Rates:        ginserver.RatesHandler{Service: ratesService, Logger: logger},
			Bulk:         ginserver.BulkHandler{Service: ratesService, Logger: logger},
			Booking:      ginserver.BookingHandler{Service: bookingService, Logger: logger},
			Availability: ginserver.AvailabilityHandler{Service: bookingService, Logger: logger},
			Policy:       ginserver.PolicyHandler{Service: policyService, Logger: logger},
			Audit:        ginserver.AuditHandler{Log: auditLog, Logger: logger},
		},
		worker: worker,
		ready:  ready,
		close: func() {
			for _, fn := range closers {
				fn()
			}
		},
		rooms:     roomRepo,
		mealPlans: planRepo,
		seasons:   seasonRepo,
		channels:  channelRepo,
	}, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
