package httpv1

import (
	"fmt"
	"net/http"
	"time"

	logginghelper "github.com/Egor213/LogiSense/internal/controller/common/logging"
	"github.com/Egor213/LogiSense/internal/metrics"
	"github.com/Egor213/LogiSense/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/bytes"
)

const defaultReportTimeout = 5 * time.Second

type RouterConfig struct {
	// BodyLimit caps both the raw and the decompressed request body,
	// e.g. "10M". Empty means unlimited.
	BodyLimit     string
	ReportTimeout time.Duration
}

// ConfigureRouter panics on a malformed BodyLimit, as echo's BodyLimit does.
// The returned Reporter must be drained with Wait on shutdown.
func ConfigureRouter(handler *echo.Echo, services *service.Services, counters *metrics.Counters, cfg RouterConfig) *Reporter {
	setupCommon(handler)

	var limit int64
	if cfg.BodyLimit != "" {
		var err error
		limit, err = bytes.Parse(cfg.BodyLimit)
		if err != nil {
			panic(fmt.Sprintf("invalid body limit %q: %v", cfg.BodyLimit, err))
		}
		handler.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
	if cfg.ReportTimeout <= 0 {
		cfg.ReportTimeout = defaultReportTimeout
	}

	reporter := NewReporter(services.Report, cfg.ReportTimeout)
	analyze := NewAnalyzeController(services.Analyzer, reporter, counters, limit)
	runs := NewRunsController(services.Report, counters)

	handler.POST("/analyze", analyze.Analyze)
	handler.GET("/runs", runs.GetRuns)
	handler.GET("/health", health)

	return reporter
}

func ConfigureEnhancerRouter(handler *echo.Echo, enhancer service.Enhancer, counters *metrics.Counters) {
	setupCommon(handler)

	enhance := NewEnhanceController(enhancer, counters)

	handler.POST("/", enhance.Enhance)
	handler.GET("/health", health)
}

func setupCommon(handler *echo.Echo) {
	handler.HideBanner = true
	handler.HidePort = true
	handler.HTTPErrorHandler = ErrorHandler

	handler.Use(middleware.Recover())
	handler.Use(middleware.RequestID())
	handler.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logginghelper.LogRequest(v)
			return nil
		},
	}))
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
