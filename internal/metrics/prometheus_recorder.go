package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	stepDuration   *prom.HistogramVec
	runDuration    prom.Histogram
	stepResults    *prom.CounterVec
	runOutcome     *prom.CounterVec
	pagesCollected prom.Gauge
	rulesEmitted   prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stepDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitefix",
			Name:      "step_duration_seconds",
			Help:      "Duration of individual fixup steps",
			Buckets:   prom.DefBuckets,
		}, []string{"step"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitefix",
			Name:      "run_duration_seconds",
			Help:      "Total fixup run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stepResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitefix",
			Name:      "step_results_total",
			Help:      "Step result counts by outcome",
		}, []string{"step", "result"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitefix",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		pr.pagesCollected = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitefix",
			Name:      "pages_collected",
			Help:      "Canonical URLs collected in the last run",
		})
		pr.rulesEmitted = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitefix",
			Name:      "rewrite_rules_emitted",
			Help:      "Rewrite rules emitted in the last run",
		})
		reg.MustRegister(pr.stepDuration, pr.runDuration, pr.stepResults, pr.runOutcome, pr.pagesCollected, pr.rulesEmitted)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStepDuration(step string, d time.Duration) {
	if p == nil || p.stepDuration == nil {
		return
	}
	p.stepDuration.WithLabelValues(step).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStepResult(step string, result ResultLabel) {
	if p == nil || p.stepResults == nil {
		return
	}
	p.stepResults.WithLabelValues(step, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetPagesCollected(n int) {
	if p == nil || p.pagesCollected == nil {
		return
	}
	p.pagesCollected.Set(float64(n))
}

func (p *PrometheusRecorder) SetRulesEmitted(n int) {
	if p == nil || p.rulesEmitted == nil {
		return
	}
	p.rulesEmitted.Set(float64(n))
}
