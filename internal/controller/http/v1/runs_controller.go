package httpv1

import (
	"errors"
	"net/http"
	"time"

	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/Egor213/LogiSense/internal/metrics"
	"github.com/Egor213/LogiSense/internal/service"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
	"github.com/labstack/echo/v4"
)

const runsHandler = "runs"

type RunsController struct {
	report   service.Report
	counters *metrics.Counters
}

func NewRunsController(report service.Report, counters *metrics.Counters) *RunsController {
	return &RunsController{
		report:   report,
		counters: counters,
	}
}

func (rc *RunsController) GetRuns(c echo.Context) error {
	var filter domain.RunFilter
	err := echo.QueryParamsBinder(c).
		Time("from", &filter.From, time.RFC3339).
		Time("to", &filter.To, time.RFC3339).
		Int("min_anomalies", &filter.MinAnomalies).
		Int("limit", &filter.Limit).
		BindError()
	if err != nil {
		rc.counters.HTTPRequests.Inc(runsHandler, "rejected")
		return newErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
	}
	if filter.MinAnomalies < 0 || filter.Limit < 0 {
		rc.counters.HTTPRequests.Inc(runsHandler, "rejected")
		return newErrorResponse(c, http.StatusBadRequest, "Query parameters must not be negative")
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		rc.counters.HTTPRequests.Inc(runsHandler, "rejected")
		return newErrorResponse(c, http.StatusBadRequest, "Parameter 'to' is before 'from'")
	}

	runs, err := rc.report.History(c.Request().Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			rc.counters.HTTPRequests.Inc(runsHandler, "disabled")
			return newErrorResponse(c, http.StatusServiceUnavailable, err.Error())
		}
		rc.counters.HTTPRequests.Inc(runsHandler, "failed")
		return errorsUtils.WrapPathErr(err)
	}

	rc.counters.HTTPRequests.Inc(runsHandler, "ok")
	if runs == nil {
		runs = []domain.AnalysisRun{}
	}
	return c.JSON(http.StatusOK, runs)
}
