package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Egor213/LogiSense/internal/broker"
	kafkabroker "github.com/Egor213/LogiSense/internal/broker/kafka"
	"github.com/Egor213/LogiSense/internal/config"
	httpv1 "github.com/Egor213/LogiSense/internal/controller/http/v1"
	"github.com/Egor213/LogiSense/internal/metrics"
	"github.com/Egor213/LogiSense/internal/repo"
	"github.com/Egor213/LogiSense/internal/service"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
	"github.com/Egor213/LogiSense/pkg/httpserver"
	"github.com/Egor213/LogiSense/pkg/logger"
	"github.com/Egor213/LogiSense/pkg/postgres"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

func Run() {
	// Config
	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level, cfg.Log.Format)
	log.Info("Logger has been set up")

	// Repos
	var repositories *repo.Repositories
	if cfg.PG.Enabled() {
		Migrate(cfg.PG.URL)

		log.Info("Connecting to DB")
		pg, err := postgres.New(context.Background(), cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.MaxPoolSize))
		if err != nil {
			log.Fatal(errorsUtils.WrapPathErr(err))
		}
		defer pg.Close()
		log.Info("Connected to DB")

		repositories = repo.NewRepositories(pg)
	} else {
		log.Info("PostgreSQL is not configured, run history is disabled")
	}

	// Producer
	var brokerProducer broker.Producer
	if cfg.Kafka.Enabled() {
		producer := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		})
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error(errorsUtils.WrapPathErr(err))
			}
		}()
		brokerProducer = producer
	} else {
		log.Info("Kafka is not configured, run summaries are not published")
	}

	// Services
	metricsCnt := metrics.New()
	deps := service.ServicesDependencies{
		Detector:       cfg.DetectorConfig(),
		Repos:          repositories,
		BrokerProducer: brokerProducer,
	}
	services := service.NewServices(deps)

	// API server
	log.Info("Starting API server...")
	log.Debugf("API server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	apiHandler.Use(metrics.Middleware("loganalyzer"))
	reporter := httpv1.ConfigureRouter(apiHandler, services, metricsCnt, httpv1.RouterConfig{
		BodyLimit:     cfg.HTTP.BodyLimit,
		ReportTimeout: cfg.HTTP.ReportTimeout,
	})
	apiServer, err := httpserver.New(apiHandler,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Prometheus server
	log.Info("Starting metrics server...")
	log.Debugf("Metrics server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metrics.ConfigureRouter(metricsHandler)
	metricsServer, err := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	log.Info("Configuring graceful shutdown...")

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info(errorsUtils.WrapPathErr(errors.New(s.String())))
	case err := <-metricsServer.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	case err := <-apiServer.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	shutdownApp(apiServer, metricsServer)
	drainReports(reporter, cfg.HTTP.ReportTimeout)
}

// drainReports waits for background run reports before the producer and
// the pool are closed.
func drainReports(reporter *httpv1.Reporter, timeout time.Duration) {
	log.Info("Waiting for pending run reports...")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := reporter.Wait(ctx); err != nil {
		log.Warn(errorsUtils.WrapPathErr(err))
	}
}

func shutdownApp(servers ...*httpserver.Server) {
	log.Info("Shutting down...")
	for _, s := range servers {
		if err := s.Shutdown(); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}
}
