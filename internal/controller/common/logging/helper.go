package logginghelper

import (
	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

func LogReceived(handler string, records int) {
	log.WithFields(log.Fields{
		"handler": handler,
		"records": records,
	}).Info("Received log batch")
}

func LogAnalyzed(run *domain.AnalysisRun) {
	log.WithFields(log.Fields{
		"records":     run.Records,
		"anomalies":   run.Anomalies,
		"columns":     run.Columns,
		"duration_ms": run.DurationMs,
	}).Info("Batch analyzed")
}

func LogRejected(handler string, err error) {
	log.WithFields(log.Fields{
		"handler": handler,
		"error":   err,
	}).Warn("Request rejected")
}

func LogError(handler string, err error) {
	log.WithFields(log.Fields{
		"handler": handler,
		"error":   err,
	}).Error("Request failed")
}

func LogRequest(v middleware.RequestLoggerValues) {
	fields := log.Fields{
		"method":  v.Method,
		"uri":     v.URI,
		"status":  v.Status,
		"latency": v.Latency.String(),
	}
	if v.RequestID != "" {
		fields["request_id"] = v.RequestID
	}
	log.WithFields(fields).Debug("HTTP request")
}

func LogCanceled(handler string) {
	log.WithField("handler", handler).Info("Request canceled by client")
}

func LogReportDropped(run *domain.AnalysisRun) {
	log.WithFields(log.Fields{
		"records":   run.Records,
		"anomalies": run.Anomalies,
	}).Warn("Too many reports in flight, run summary dropped")
}
