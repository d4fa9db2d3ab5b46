package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusCounter(t *testing.T) {
	c := NewTestCounters()

	c.HTTPRequests.Inc("analyze", "ok")
	c.HTTPRequests.Inc("analyze", "ok")
	c.HTTPRequests.Inc("analyze", "bad_request")
	c.RecordsAnalyzed.Add(20)
	c.AnomaliesFlagged.Add(1)

	requests := c.HTTPRequests.(*PrometheusCounter).counter
	assert.Equal(t, 2.0, testutil.ToFloat64(requests.WithLabelValues("analyze", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("analyze", "bad_request")))
	assert.Equal(t, 20.0, testutil.ToFloat64(c.RecordsAnalyzed.(*PrometheusCounter).counter.WithLabelValues()))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AnomaliesFlagged.(*PrometheusCounter).counter.WithLabelValues()))
}

func TestNewTestCountersCanBeCreatedTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTestCounters()
		NewTestCounters()
	})
}
