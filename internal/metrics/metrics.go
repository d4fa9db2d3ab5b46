package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
	Add(value float64, labels ...string)
}

type Counters struct {
	HTTPRequests     Counter
	RecordsAnalyzed  Counter
	AnomaliesFlagged Counter
	PromptsEnhanced  Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	return &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, labels),
	}
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func (p *PrometheusCounter) Add(value float64, labels ...string) {
	p.counter.WithLabelValues(labels...).Add(value)
}

func newCounters() *Counters {
	return &Counters{
		HTTPRequests: NewPrometheusCounter(
			"http_requests_total",
			"Number of API requests by handler and outcome",
			[]string{"handler", "status"},
		),
		RecordsAnalyzed: NewPrometheusCounter(
			"records_analyzed_total",
			"Number of log records scored by the anomaly model",
			[]string{},
		),
		AnomaliesFlagged: NewPrometheusCounter(
			"anomalies_flagged_total",
			"Number of log records labelled as anomalies",
			[]string{},
		),
		PromptsEnhanced: NewPrometheusCounter(
			"prompts_enhanced_total",
			"Number of enriched prompts",
			[]string{},
		),
	}
}

func (c *Counters) register(reg prometheus.Registerer) {
	for _, cnt := range []Counter{c.HTTPRequests, c.RecordsAnalyzed, c.AnomaliesFlagged, c.PromptsEnhanced} {
		if p, ok := cnt.(*PrometheusCounter); ok {
			reg.MustRegister(p.counter)
		}
	}
}

// New registers the counters in the default registry.
func New() *Counters {
	c := newCounters()
	c.register(prometheus.DefaultRegisterer)
	return c
}

// NewTestCounters registers the counters in a private registry so tests can
// build as many sets as they need.
func NewTestCounters() *Counters {
	c := newCounters()
	c.register(prometheus.NewRegistry())
	return c
}
