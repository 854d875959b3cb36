package thaiemotion

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// RulesModel is the ModelUsed value when the rule engine decided the
// sentiment.
const RulesModel = "rules"

// Config configures an Analyzer.
type Config struct {
	Mode      Mode
	Threshold float64
	UseModel  bool // let the configured Model decide sentiment and score
	Workers   int  // batch worker pool size

	// NegationGuard drops keyword and regex hits directly preceded by "ไม่".
	NegationGuard bool
}

// DefaultConfig returns standard configuration
func DefaultConfig() Config {
	return Config{
		Mode:      Single,
		Threshold: DefaultThreshold,
		UseModel:  false,
		Workers:   runtime.NumCPU(),
	}
}

// Analyzer produces emotion, context and sentiment judgments for text. It
// is immutable after construction and safe for concurrent use.
type Analyzer struct {
	config Config

	table    *PatternTable
	scorer   *Scorer
	selector *Selector
	contexts *ContextClassifier
	detector *LanguageDetector
	model    Model
	log      *logrus.Logger
	metrics  *Metrics
}

// NewAnalyzer validates config and builds an Analyzer.
func NewAnalyzer(config Config, opts ...Option) (*Analyzer, error) {
	if err := validateRequest(config.Mode, config.Threshold); err != nil {
		return nil, err
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	o := analyzerOptions{
		table:    DefaultPatternTable(),
		contexts: DefaultContextTable(),
	}
	for _, applyOpt := range opts {
		applyOpt(&o)
	}
	if o.table == nil {
		return nil, fmt.Errorf("%w: nil pattern table", ErrInvalidPatternTable)
	}
	if o.contexts == nil {
		return nil, fmt.Errorf("%w: nil context table", ErrInvalidPatternTable)
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}

	a := &Analyzer{
		config:   config,
		table:    o.table,
		scorer:   NewScorer(o.table, UsingNegationGuard(config.NegationGuard)),
		selector: NewSelector(o.table),
		contexts: NewContextClassifier(o.contexts),
		detector: NewLanguageDetector(),
		model:    o.model,
		log:      o.logger,
	}
	if o.registry != nil {
		m, err := NewMetrics(o.registry)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
		a.metrics = m
	}
	return a, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() Config {
	return a.config
}

// PatternTable returns the emotion catalog in use.
func (a *Analyzer) PatternTable() *PatternTable {
	return a.table
}

// Analyze is AnalyzeContext with a background context.
func (a *Analyzer) Analyze(text string, mode Mode, threshold float64) (*AnalysisResult, error) {
	return a.AnalyzeContext(context.Background(), text, mode, threshold)
}

// AnalyzeText analyzes text with the configured mode and threshold.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*AnalysisResult, error) {
	return a.AnalyzeContext(ctx, text, a.config.Mode, a.config.Threshold)
}

// AnalyzeContext scores text against the emotion catalog and selects
// labels. Empty or whitespace-only text yields the neutral result without
// scoring.
func (a *Analyzer) AnalyzeContext(ctx context.Context, text string, mode Mode, threshold float64) (*AnalysisResult, error) {
	if err := validateRequest(mode, threshold); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		r := a.neutralResult(text, mode, threshold)
		a.metrics.observeAnalysis(r, time.Since(start))
		return r, nil
	}

	clean := CleanText(text)
	emojis := ExtractEmojis(text)
	sarcasm := DetectSarcasm(clean)
	raw := a.scorer.Score(clean, emojis, sarcasm.IsSarcastic)
	norm := a.selector.Normalize(raw)

	sel, err := a.selector.Select(norm, mode, threshold, text, sarcasm.IsSarcastic)
	if err != nil {
		return nil, err
	}
	lang, _ := a.detector.DetectLanguage(text)

	r := &AnalysisResult{
		Text:             text,
		RawScores:        raw,
		NormalizedScores: norm,
		SelectedLabels:   sel.Labels,
		Groups:           sel.Groups,
		Sentiment:        sel.Sentiment,
		SentimentScore:   sel.Sentiment.Score(),
		Confidence:       sel.Confidence,
		Context:          a.contexts.Classify(text),
		IsSarcastic:      sarcasm.IsSarcastic,
		SarcasmReason:    sarcasm.Reason,
		Mode:             mode,
		Threshold:        threshold,
		Emojis:           emojis,
		Language:         lang,
		ModelUsed:        RulesModel,
	}

	if a.config.UseModel && a.model != nil {
		if err := a.applyModel(ctx, r); err != nil {
			return nil, err
		}
	}

	a.metrics.observeAnalysis(r, time.Since(start))
	return r, nil
}

// applyModel lets the external model decide sentiment and score. A model
// failure keeps the rule result and records why; only cancellation of ctx
// is returned.
func (a *Analyzer) applyModel(ctx context.Context, r *AnalysisResult) error {
	pred, err := a.model.Predict(ctx, r.Text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return ctxErr
		}
		a.log.WithFields(logrus.Fields{
			"model":    a.model.Name(),
			"language": r.Language,
			"error":    err,
		}).Warn("model prediction failed, keeping rule-based sentiment")
		a.metrics.observeFallback(a.model.Name())
		r.FallbackReason = err.Error()
		return nil
	}
	r.Sentiment = pred.Sentiment
	r.SentimentScore = pred.Score
	r.ModelUsed = a.model.Name()
	return nil
}

func (a *Analyzer) neutralResult(text string, mode Mode, threshold float64) *AnalysisResult {
	zero := make(map[Label]float64, len(a.table.emotions))
	for _, l := range a.table.Labels() {
		zero[l] = 0
	}
	norm := make(map[Label]float64, len(zero))
	for l := range zero {
		norm[l] = 0
	}
	return &AnalysisResult{
		Text:             text,
		RawScores:        zero,
		NormalizedScores: norm,
		SelectedLabels:   []Label{LabelNeutral},
		Groups:           []Group{GroupNeutral},
		Sentiment:        Neutral,
		SentimentScore:   NeutralScore,
		Confidence:       0,
		Context:          a.contexts.Classify(""),
		Mode:             mode,
		Threshold:        threshold,
		Language:         Unknown,
		ModelUsed:        RulesModel,
	}
}
