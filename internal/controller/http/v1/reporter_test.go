package httpv1_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	httpv1 "github.com/Egor213/LogiSense/internal/controller/http/v1"
	"github.com/Egor213/LogiSense/internal/domain"
	servicemocks "github.com/Egor213/LogiSense/internal/mocks/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type ctxKey struct{}

func TestReporter_PublishIsDetached(t *testing.T) {
	report := servicemocks.NewMockReport(gomock.NewController(t))
	run := &domain.AnalysisRun{Records: 3}

	report.EXPECT().Record(gomock.Any(), run).DoAndReturn(
		func(ctx context.Context, _ *domain.AnalysisRun) error {
			assert.NoError(t, ctx.Err())
			assert.Equal(t, "req-1", ctx.Value(ctxKey{}))
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return errors.New("kafka unavailable")
		})

	r := httpv1.NewReporter(report, time.Second)
	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "req-1"))
	cancel()

	r.Publish(parent, run)

	ctx, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()
	assert.NoError(t, r.Wait(ctx))
}

func TestReporter_WaitTimesOut(t *testing.T) {
	report := servicemocks.NewMockReport(gomock.NewController(t))
	var finished atomic.Bool
	report.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *domain.AnalysisRun) error {
			<-ctx.Done()
			finished.Store(true)
			return ctx.Err()
		})

	r := httpv1.NewReporter(report, 300*time.Millisecond)
	r.Publish(context.Background(), &domain.AnalysisRun{})

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(short), context.DeadlineExceeded)

	long, cancelLong := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelLong()
	assert.NoError(t, r.Wait(long))
	assert.True(t, finished.Load())
}

func TestReporter_NilReport(t *testing.T) {
	r := httpv1.NewReporter(nil, time.Second)

	assert.NotPanics(t, func() { r.Publish(context.Background(), &domain.AnalysisRun{}) })
	assert.NoError(t, r.Wait(context.Background()))
}
