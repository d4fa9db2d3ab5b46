package httpv1

import (
	"context"
	"errors"
	"net/http"

	logginghelper "github.com/Egor213/LogiSense/internal/controller/common/logging"
	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/Egor213/LogiSense/internal/metrics"
	"github.com/Egor213/LogiSense/internal/service"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
	"github.com/labstack/echo/v4"
)

const analyzeHandler = "analyze"

// statusClientClosedRequest is written when the client went away before the
// batch was scored.
const statusClientClosedRequest = 499

type AnalyzeController struct {
	analyzer  service.Analyzer
	reporter  *Reporter
	counters  *metrics.Counters
	bodyLimit int64
}

func NewAnalyzeController(
	analyzer service.Analyzer,
	reporter *Reporter,
	counters *metrics.Counters,
	bodyLimit int64,
) *AnalyzeController {
	return &AnalyzeController{
		analyzer:  analyzer,
		reporter:  reporter,
		counters:  counters,
		bodyLimit: bodyLimit,
	}
}

func (ac *AnalyzeController) Analyze(c echo.Context) error {
	body, err := readBody(c.Request(), ac.bodyLimit)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			ac.counters.HTTPRequests.Inc(analyzeHandler, "rejected")
			return he
		}
		return ac.fail(c, err)
	}

	batch, err := decodeBatch(body)
	if err != nil {
		return ac.fail(c, err)
	}
	logginghelper.LogReceived(analyzeHandler, len(batch))

	result, err := ac.analyzer.Analyze(c.Request().Context(), batch)
	if err != nil {
		return ac.fail(c, err)
	}

	ac.counters.HTTPRequests.Inc(analyzeHandler, "ok")
	ac.counters.RecordsAnalyzed.Add(float64(len(result.Records)))
	ac.counters.AnomaliesFlagged.Add(float64(result.Anomalies))

	run := result.Run()
	logginghelper.LogAnalyzed(run)

	if err := c.JSON(http.StatusOK, result.Records); err != nil {
		return err
	}
	ac.reporter.Publish(c.Request().Context(), run)
	return nil
}

func (ac *AnalyzeController) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		ac.counters.HTTPRequests.Inc(analyzeHandler, "canceled")
		logginghelper.LogCanceled(analyzeHandler)
		return c.NoContent(statusClientClosedRequest)
	case errors.Is(err, domain.ErrInputMissing):
		ac.counters.HTTPRequests.Inc(analyzeHandler, "rejected")
		logginghelper.LogRejected(analyzeHandler, err)
		return newErrorResponse(c, http.StatusBadRequest, domain.ErrInputMissing.Error())
	case errors.Is(err, domain.ErrDataFormat):
		ac.counters.HTTPRequests.Inc(analyzeHandler, "rejected")
		logginghelper.LogRejected(analyzeHandler, err)
		return newErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		ac.counters.HTTPRequests.Inc(analyzeHandler, "failed")
		return errorsUtils.WrapPathErr(err)
	}
}
