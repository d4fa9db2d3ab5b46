package app

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogiSense/internal/config"
	httpv1 "github.com/Egor213/LogiSense/internal/controller/http/v1"
	"github.com/Egor213/LogiSense/internal/metrics"
	"github.com/Egor213/LogiSense/internal/service"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
	"github.com/Egor213/LogiSense/pkg/httpserver"
	"github.com/Egor213/LogiSense/pkg/logger"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

// RunEnhancer serves the prompt enhancer. Its metrics share the API port.
func RunEnhancer() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	logger.SetupLogger(cfg.Log.Level, cfg.Log.Format)
	log.Info("Logger has been set up")

	metricsCnt := metrics.New()
	enhancer := service.NewEnhancerService()

	log.Info("Starting prompt enhancer...")
	log.Debugf("Enhancer port: %s", cfg.Enhancer.Port)
	handler := echo.New()
	handler.Use(metrics.Middleware("promptenhancer"))
	httpv1.ConfigureEnhancerRouter(handler, enhancer, metricsCnt)
	metrics.ConfigureRouter(handler)
	server, err := httpserver.New(handler,
		httpserver.Port(cfg.Enhancer.Port),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info(errorsUtils.WrapPathErr(errors.New(s.String())))
	case err := <-server.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	}

	shutdownApp(server)
}
