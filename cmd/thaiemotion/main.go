// Command thaiemotion labels Thai social-media comments with fine-grained
// emotions, coarse sentiment and writing context.
//
// Analyse a single text:
//
//	thaiemotion -mode multi "ดีใจมากเลย รักเธอที่สุดเลย ❤️"
//
// Annotate a JSON-Lines file of comment records, dropping spam and near
// duplicates first:
//
//	thaiemotion -input comments.jsonl -output labelled.jsonl -spam -dedupe -stats
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/thaiemotion"
	"github.com/tsawler/thaiemotion/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "thaiemotion: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	mode        string
	threshold   float64
	input       string
	output      string
	textField   string
	scores      bool
	spam        bool
	dedupe      bool
	stats       bool
	model       string
	metricsAddr string
	sentences   bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("thaiemotion", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "path to YAML config file")
	fs.StringVar(&o.mode, "mode", "", "analysis mode: single or multi")
	fs.Float64Var(&o.threshold, "threshold", thaiemotion.DefaultThreshold, "multi-label score cutoff in [0,1]")
	fs.StringVar(&o.input, "input", "", "JSON-Lines records or plain text lines; - for stdin")
	fs.StringVar(&o.output, "output", "", "output file (default stdout)")
	fs.StringVar(&o.textField, "text-field", "", "record field holding the comment text")
	fs.BoolVar(&o.scores, "scores", false, "include normalised label scores")
	fs.BoolVar(&o.spam, "spam", false, "drop spam records before analysis")
	fs.BoolVar(&o.dedupe, "dedupe", false, "drop duplicate and near-duplicate records")
	fs.BoolVar(&o.stats, "stats", false, "print a summary to stderr")
	fs.StringVar(&o.model, "model", "", "maxent model directory, or vader")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.BoolVar(&o.sentences, "sentences", false, "also analyse each sentence")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &o, fs, nil
}

// override copies explicitly set flags over the loaded configuration.
func (o *options) override(cfg *config.Config, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Analysis.Mode = o.mode
		case "threshold":
			cfg.Analysis.Threshold = o.threshold
		case "text-field":
			cfg.Analysis.TextField = o.textField
		case "metrics-addr":
			cfg.Metrics.Addr = o.metricsAddr
		case "model":
			if o.model == config.ModelVader {
				cfg.Model = config.ModelConfig{Kind: config.ModelVader}
			} else {
				cfg.Model = config.ModelConfig{Kind: config.ModelMaxent, Path: o.model}
			}
			cfg.Analysis.UseModel = true
		}
	})
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	cfg, err := config.Load(o.configPath, logger)
	if err != nil {
		return err
	}
	o.override(cfg, fs)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ApplyLogging(logger); err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logger.WithField("run_id", runID)

	var reg *prometheus.Registry
	if cfg.Metrics.Addr != "" {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		srv := serveMetrics(cfg.Metrics.Addr, reg, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var registerer prometheus.Registerer
	if reg != nil {
		registerer = reg
	}
	opts, err := cfg.ToOptions(logger, registerer)
	if err != nil {
		return err
	}
	analyzer, err := thaiemotion.NewAnalyzer(cfg.AnalyzerConfig(), opts...)
	if err != nil {
		return err
	}

	out := stdout
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	p := &pipeline{
		analyzer:  analyzer,
		mode:      thaiemotion.Mode(cfg.Analysis.Mode),
		threshold: cfg.Analysis.Threshold,
		textField: cfg.Analysis.TextField,
		runID:     runID,
		scores:    o.scores,
		sentences: o.sentences,
		log:       log,
	}

	var records []thaiemotion.Record
	switch {
	case fs.NArg() > 0:
		records = []thaiemotion.Record{{p.textField: strings.Join(fs.Args(), " ")}}
	case o.input == "" || o.input == "-":
		records, err = readRecords(stdin, p.textField)
	default:
		var f *os.File
		f, err = os.Open(o.input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		records, err = readRecords(f, p.textField)
		f.Close()
	}
	if err != nil {
		return err
	}

	read := len(records)
	if o.spam {
		records = thaiemotion.FilterSpam(records, p.textField)
	}
	if o.dedupe {
		records = thaiemotion.Deduplicate(records, p.textField, cfg.Analysis.DedupeThreshold)
	}
	log.WithFields(logrus.Fields{
		"read": read,
		"kept": len(records),
		"mode": p.mode,
	}).Info("Analysing records")

	annotated, results, err := p.process(ctx, records)
	if err != nil {
		return err
	}
	if err := thaiemotion.WriteJSONL(out, annotated); err != nil {
		return err
	}

	if o.stats {
		enc := json.NewEncoder(stderr)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(thaiemotion.Summarize(results)); err != nil {
			return err
		}
	}
	return nil
}

type pipeline struct {
	analyzer  *thaiemotion.Analyzer
	mode      thaiemotion.Mode
	threshold float64
	textField string
	runID     string
	scores    bool
	sentences bool
	log       *logrus.Entry
}

func (p *pipeline) output(r *thaiemotion.AnalysisResult) thaiemotion.OutputRecord {
	rec := r.Record(p.scores)
	rec.RunID = p.runID
	return rec
}

// process analyses records and returns them annotated under
// thaiemotion.AnalysisField, together with the overall results.
func (p *pipeline) process(ctx context.Context, records []thaiemotion.Record) ([]thaiemotion.Record, []*thaiemotion.AnalysisResult, error) {
	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = thaiemotion.RecordText(rec, p.textField)
	}

	var results []*thaiemotion.AnalysisResult
	sentenceOut := make([][]thaiemotion.OutputRecord, len(records))
	if p.sentences {
		results = make([]*thaiemotion.AnalysisResult, len(texts))
		for i, text := range texts {
			doc, err := p.analyzer.AnalyzeDocument(ctx, text, p.mode, p.threshold)
			if err != nil {
				return nil, nil, fmt.Errorf("record %d: %w", i, err)
			}
			results[i] = doc.Overall
			for _, s := range doc.Sentences {
				sentenceOut[i] = append(sentenceOut[i], p.output(s.Result))
			}
		}
	} else {
		var err error
		results, err = p.analyzer.AnalyzeBatch(ctx, texts, p.mode, p.threshold)
		if err != nil {
			return nil, nil, err
		}
	}

	out := make([]thaiemotion.Record, len(records))
	for i, rec := range records {
		annotated := make(thaiemotion.Record, len(rec)+2)
		for k, v := range rec {
			annotated[k] = v
		}
		annotated[thaiemotion.AnalysisField] = p.output(results[i])
		if p.sentences {
			annotated["sentences"] = sentenceOut[i]
		}
		out[i] = annotated
	}
	p.log.WithFields(logrus.Fields{
		"records":   len(out),
		"sentences": p.sentences,
	}).Debug("Records annotated")
	return out, results, nil
}

// readRecords reads JSON-Lines records, or plain text with one comment per
// line when the first non-blank line is not a JSON object.
func readRecords(r io.Reader, textField string) ([]thaiemotion.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "{") {
		return thaiemotion.ReadJSONL(strings.NewReader(trimmed))
	}

	var records []thaiemotion.Record
	for _, line := range strings.Split(trimmed, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			records = append(records, thaiemotion.Record{textField: line})
		}
	}
	return records, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, log *logrus.Entry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          reg,
	}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server failed")
		}
	}()
	log.WithField("addr", addr).Info("Serving metrics")
	return srv
}
