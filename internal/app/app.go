package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"currencymonitor/internal/adapters"
	"currencymonitor/internal/adapters/cache"
	"currencymonitor/internal/adapters/httpclient"
	"currencymonitor/internal/adapters/kafka"
	"currencymonitor/internal/adapters/mailer"
	"currencymonitor/internal/adapters/postgres"
	"currencymonitor/internal/api"
	"currencymonitor/internal/config"
	"currencymonitor/internal/platform/db"
	httpserver "currencymonitor/internal/platform/http"
	"currencymonitor/internal/platform/metrics"
	"currencymonitor/internal/rate"
	ratehandler "currencymonitor/internal/rate/handler"
	"currencymonitor/internal/subscription"
	subscriptionhandler "currencymonitor/internal/subscription/handler"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const startupTimeout = 10 * time.Second

// SetupLogger configures the global logrus logger.
func SetupLogger(cfg config.Logging) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}

// Run wires the application components, starts the HTTP server, the
// scheduler and the notification workers, and blocks until ctx is done.
func Run(ctx context.Context, appCfg *config.AppConfig) error {
	// Bounded context for startup operations (migrations, DB connect, initial reads)
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, appCfg.DbServer.GetConnectionStr()); err != nil {
		logrus.WithError(err).Error("Error migrating db")
		return err
	}
	logrus.Info("✅ Migrations applied")

	validator, err := loadValidator(startupCtx, pool)
	if err != nil {
		logrus.WithError(err).Error("Failed to load recognized currencies")
		return err
	}
	logrus.Info("✅ Recognized currencies loaded")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	p, err := newPipeline(appCfg, pool, appMetrics)
	if err != nil {
		return err
	}
	defer p.close()

	p.dispatcher.Start(ctx)
	defer p.dispatcher.Stop()

	scheduler := rate.NewScheduler(p.updater, appCfg.Scheduler.Cron)
	// Ensure scheduler stops before the dispatcher and the DB pool
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	rateService := rate.NewService(p.rates, p.cache)
	subscriptionService := subscription.NewService(p.subscriptions, validator)
	router := api.NewRouter(
		ratehandler.NewRateHandler(validator, rateService, scheduler),
		subscriptionhandler.NewSubscriptionHandler(subscriptionService),
		registry,
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if p.consumer != nil {
		group.Go(func() error {
			logrus.Info("✅ Listening for changed exchange rates")
			return p.consumer.Run(groupCtx)
		})
	}
	group.Go(func() error {
		logrus.Info("Starting http server")
		return httpserver.Start(groupCtx, appCfg.HTTPServer, router)
	})

	if err = group.Wait(); err != nil {
		logrus.WithError(err).Error("Server stopped with error")
		return err
	}
	return nil
}

// RunUpdateOnce executes a single rate update and waits for the in-process
// notifications it caused.
func RunUpdateOnce(ctx context.Context, appCfg *config.AppConfig) error {
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()

	p, err := newPipeline(appCfg, pool, nil)
	if err != nil {
		return err
	}
	defer p.close()

	p.dispatcher.Start(ctx)
	err = p.updater.Run(ctx, uuid.NewString())
	// drains the queued evaluations
	p.dispatcher.Stop()
	return err
}

// Migrate applies the embedded migrations and exits.
func Migrate(ctx context.Context, appCfg *config.AppConfig) error {
	if err := db.Migrate(ctx, appCfg.DbServer.GetConnectionStr()); err != nil {
		return err
	}
	logrus.Info("✅ Migrations applied")
	return nil
}

// pipeline holds the components shared by the server and the one-off update.
type pipeline struct {
	subscriptions *postgres.SubscriptionRepository
	rates         *postgres.ExchangeRateRepository
	cache         *cache.RistrettoRateCache
	dispatcher    *subscription.Dispatcher
	updater       *rate.RateUpdater

	// set only when changed rates go through kafka
	publisher *kafka.Publisher
	consumer  *kafka.Consumer
}

func newPipeline(appCfg *config.AppConfig, pool *pgxpool.Pool, m *metrics.Metrics) (*pipeline, error) {
	p := &pipeline{
		subscriptions: postgres.NewSubscriptionRepository(pool),
		rates:         postgres.NewExchangeRateRepository(pool),
	}

	rateCache, err := cache.NewRateCache(appCfg.Cache.MaxItems)
	if err != nil {
		return nil, err
	}
	p.cache = rateCache

	notifier, err := newNotifier(appCfg.Mailer)
	if err != nil {
		rateCache.Close()
		return nil, err
	}
	matcher := subscription.NewMatcher(p.subscriptions, notifier, m)
	p.dispatcher = subscription.NewDispatcher(matcher, appCfg.Notifier.Workers, appCfg.Notifier.QueueSize)

	var changes adapters.RateChangePublisher = p.dispatcher
	if appCfg.Kafka.Enabled {
		p.publisher = kafka.NewPublisher(appCfg.Kafka.Brokers, appCfg.Kafka.Topic)
		p.consumer = kafka.NewConsumer(appCfg.Kafka.Brokers, appCfg.Kafka.Topic, appCfg.Kafka.GroupID, p.dispatcher)
		changes = p.publisher
		logrus.Infof("✅ Changed exchange rates are published to kafka topic %s", appCfg.Kafka.Topic)
	}

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	pageClient := httpclient.NewPageClient(&http.Client{Timeout: httpTimeout}, appCfg.RateSource.MaxRetries)
	fetchClient := rate.NewFetchClient(pageClient, appCfg.RateSource.BaseURL)

	p.updater = rate.NewRateUpdater(p.subscriptions, fetchClient, p.rates, p.cache, changes, m, rate.UpdaterSettings{
		FetchConcurrency: appCfg.RateSource.FetchConcurrency,
		PerPairTimeout:   appCfg.RateSource.FetchTimeout,
	})
	return p, nil
}

func (p *pipeline) close() {
	if p.consumer != nil {
		if err := p.consumer.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close kafka consumer")
		}
	}
	if p.publisher != nil {
		if err := p.publisher.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close kafka publisher")
		}
	}
	p.cache.Close()
}

func newNotifier(cfg config.Mailer) (adapters.Notifier, error) {
	if cfg.APIKey == "" {
		logrus.Warn("No mail api key configured, notifications are only logged")
		return mailer.LogNotifier{}, nil
	}
	return mailer.NewSendgridNotifier(cfg)
}

func loadValidator(ctx context.Context, pool *pgxpool.Pool) (*rate.CurrencyValidator, error) {
	currencies, err := postgres.NewCurrencyRepository(pool).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(currencies) == 0 {
		return nil, errors.New("no recognized currencies available")
	}
	return rate.NewValidator(currencies), nil
}
