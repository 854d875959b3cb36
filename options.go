package thaiemotion

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// An Option changes how an Analyzer is built.
//
// For example, to log fallbacks and report metrics:
//
//	a, err := thaiemotion.NewAnalyzer(cfg,
//		thaiemotion.WithLogger(log),
//		thaiemotion.WithMetrics(prometheus.DefaultRegisterer))
type Option func(*analyzerOptions)

type analyzerOptions struct {
	logger   *logrus.Logger
	registry prometheus.Registerer
	model    Model
	table    *PatternTable
	contexts *ContextTable
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *analyzerOptions) {
		o.logger = logger
	}
}

// WithMetrics registers the analyzer's collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *analyzerOptions) {
		o.registry = reg
	}
}

// WithModel sets the external sentiment model. It is consulted only when
// Config.UseModel is true.
func WithModel(m Model) Option {
	return func(o *analyzerOptions) {
		o.model = m
	}
}

// WithPatternTable replaces the built-in emotion catalog.
func WithPatternTable(pt *PatternTable) Option {
	return func(o *analyzerOptions) {
		o.table = pt
	}
}

// WithContextTable replaces the built-in context tags.
func WithContextTable(ct *ContextTable) Option {
	return func(o *analyzerOptions) {
		o.contexts = ct
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
