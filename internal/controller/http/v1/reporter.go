package httpv1

import (
	"context"
	"sync"
	"time"

	logginghelper "github.com/Egor213/LogiSense/internal/controller/common/logging"
	"github.com/Egor213/LogiSense/internal/domain"
	"github.com/Egor213/LogiSense/internal/service"
)

const maxReportsInFlight = 64

// Reporter records run summaries in the background so that a slow sink
// never delays a response. Reports beyond maxReportsInFlight are dropped.
type Reporter struct {
	report  service.Report
	timeout time.Duration
	slots   chan struct{}
	wg      sync.WaitGroup
}

func NewReporter(report service.Report, timeout time.Duration) *Reporter {
	return &Reporter{
		report:  report,
		timeout: timeout,
		slots:   make(chan struct{}, maxReportsInFlight),
	}
}

// Publish keeps the values of parent but not its cancellation.
func (r *Reporter) Publish(parent context.Context, run *domain.AnalysisRun) {
	if r == nil || r.report == nil {
		return
	}

	select {
	case r.slots <- struct{}{}:
	default:
		logginghelper.LogReportDropped(run)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), r.timeout)
	r.wg.Add(1)
	go func() {
		defer func() {
			cancel()
			<-r.slots
			r.wg.Done()
		}()

		if err := r.report.Record(ctx, run); err != nil {
			logginghelper.LogError("report", err)
		}
	}()
}

// Wait blocks until every published report has finished or ctx is done.
func (r *Reporter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
