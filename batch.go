package thaiemotion

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Record is one comment record, as decoded from a JSON object.
type Record map[string]any

// AnalysisField is the record key analysis output is merged under.
const AnalysisField = "sentiment_analysis"

// AnalyzeBatch analyzes texts on a pool of Config.Workers goroutines. The
// results line up with texts. The first error, including cancellation of
// ctx, aborts the batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string, mode Mode, threshold float64) ([]*AnalysisResult, error) {
	if err := validateRequest(mode, threshold); err != nil {
		return nil, err
	}
	a.metrics.observeBatch(len(texts))

	results := make([]*AnalysisResult, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)

	for i, text := range texts {
		i, text := i, text
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := a.AnalyzeContext(gctx, text, mode, threshold)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"texts":   len(texts),
		"workers": a.config.Workers,
		"mode":    mode,
	}).Debug("batch analysed")
	return results, nil
}

// AnalyzeRecords analyzes the text stored under textField of every record.
// The returned records carry the original fields plus the analysis under
// AnalysisField. Records without a string text field are analyzed as empty
// text. The input records are not modified.
func (a *Analyzer) AnalyzeRecords(ctx context.Context, records []Record, textField string, mode Mode, threshold float64) ([]Record, error) {
	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = RecordText(rec, textField)
	}

	results, err := a.AnalyzeBatch(ctx, texts, mode, threshold)
	if err != nil {
		return nil, err
	}

	out := make([]Record, len(records))
	for i, rec := range records {
		annotated := make(Record, len(rec)+1)
		for k, v := range rec {
			annotated[k] = v
		}
		annotated[AnalysisField] = results[i].Record(false)
		out[i] = annotated
	}
	return out, nil
}

// RecordText returns the string stored under field, or "".
func RecordText(rec Record, field string) string {
	if s, ok := rec[field].(string); ok {
		return s
	}
	return ""
}
