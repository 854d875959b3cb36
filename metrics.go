package thaiemotion

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors an Analyzer reports to.
type Metrics struct {
	Analyses          *prometheus.CounterVec
	SarcasmDetections prometheus.Counter
	ModelFallbacks    *prometheus.CounterVec
	AnalysisLatency   prometheus.Histogram
	BatchSize         prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "thaiemotion_analyses_total",
				Help: "Total number of analysed texts",
			},
			[]string{"mode", "sentiment"},
		),
		SarcasmDetections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "thaiemotion_sarcasm_detections_total",
				Help: "Total number of texts flagged as sarcastic",
			},
		),
		ModelFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "thaiemotion_model_fallbacks_total",
				Help: "Total number of times an external model failed and the rule result was kept",
			},
			[]string{"model"},
		),
		AnalysisLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "thaiemotion_analysis_duration_seconds",
				Help:    "Time spent analysing a single text",
				Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
			},
		),
		BatchSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "thaiemotion_batch_size",
				Help:    "Number of texts per batch",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}

	for _, c := range []prometheus.Collector{
		m.Analyses, m.SarcasmDetections, m.ModelFallbacks, m.AnalysisLatency, m.BatchSize,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeAnalysis(r *AnalysisResult, took time.Duration) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(string(r.Mode), string(r.Sentiment)).Inc()
	if r.IsSarcastic {
		m.SarcasmDetections.Inc()
	}
	m.AnalysisLatency.Observe(took.Seconds())
}

func (m *Metrics) observeFallback(model string) {
	if m == nil {
		return
	}
	m.ModelFallbacks.WithLabelValues(model).Inc()
}

func (m *Metrics) observeBatch(n int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(n))
}
