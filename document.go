package thaiemotion

import (
	"context"
	"time"
)

// A DocOpt represents a setting that changes how a document is analysed.
//
// For example, it might bound the processing time:
//
//	doc, err := a.AnalyzeDocument(ctx, text, thaiemotion.Single, 0.3,
//		thaiemotion.WithTimeout(2*time.Second))
type DocOpt func(opts *DocOpts)

// DocOpts controls document analysis.
type DocOpts struct {
	Segment          bool                   // If true, analyse each sentence as well
	Timeout          time.Duration          // Processing timeout
	ProgressCallback func(progress float64) // Progress reporting callback
	Reviewer         *Reviewer              // If set, review the overall result
}

// WithSegmentation can enable (the default) or disable per-sentence
// analysis.
func WithSegmentation(include bool) DocOpt {
	return func(opts *DocOpts) {
		opts.Segment = include
	}
}

// WithTimeout sets a timeout for document processing
func WithTimeout(timeout time.Duration) DocOpt {
	return func(opts *DocOpts) {
		opts.Timeout = timeout
	}
}

// WithProgressCallback sets a progress reporting callback. It receives the
// share of sentences analysed so far.
func WithProgressCallback(callback func(float64)) DocOpt {
	return func(opts *DocOpts) {
		opts.ProgressCallback = callback
	}
}

// WithReviewer attaches a quality review of the overall result.
func WithReviewer(r *Reviewer) DocOpt {
	return func(opts *DocOpts) {
		opts.Reviewer = r
	}
}

var defaultDocOpts = DocOpts{
	Segment: true,
	Timeout: 30 * time.Second,
}

// SentenceAnalysis is the analysis of one segmented sentence.
type SentenceAnalysis struct {
	Index  int             `json:"index"`
	Text   string          `json:"text"`
	Result *AnalysisResult `json:"-"`
}

// DocumentMetadata describes a document analysis run.
type DocumentMetadata struct {
	ProcessedAt        time.Time `json:"processed_at"`
	SentenceCount      int       `json:"sentence_count"`
	SarcasticSentences int       `json:"sarcastic_sentences"`
	MixedSentiment     bool      `json:"mixed_sentiment"`
	ProcessingTimeMs   int64     `json:"processing_time_ms"`
}

// DocumentAnalysis holds the analysis of a whole text and of each of its
// sentences.
type DocumentAnalysis struct {
	Text      string
	Overall   *AnalysisResult
	Sentences []SentenceAnalysis
	Review    *Review
	Metadata  DocumentMetadata
}

// AnalyzeDocument analyses text as a whole and, unless segmentation is
// disabled, sentence by sentence. The overall result is always the
// analysis of the full text, never an aggregate of the sentences.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, text string, mode Mode, threshold float64, opts ...DocOpt) (*DocumentAnalysis, error) {
	startTime := time.Now()
	if err := validateRequest(mode, threshold); err != nil {
		return nil, err
	}

	base := defaultDocOpts
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	if base.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, base.Timeout)
		defer cancel()
	}

	reportProgress := func(p float64) {
		if base.ProgressCallback != nil {
			base.ProgressCallback(p)
		}
	}

	doc := &DocumentAnalysis{
		Text:     text,
		Metadata: DocumentMetadata{ProcessedAt: startTime},
	}

	overall, err := a.AnalyzeContext(ctx, text, mode, threshold)
	if err != nil {
		return nil, err
	}
	doc.Overall = overall
	if base.Reviewer != nil {
		rv := base.Reviewer.Review(text, overall)
		doc.Review = &rv
	}

	if base.Segment {
		sents := Sentences(text)
		seen := make(map[Sentiment]bool)
		for i, s := range sents {
			r, err := a.AnalyzeContext(ctx, s, mode, threshold)
			if err != nil {
				return nil, err
			}
			doc.Sentences = append(doc.Sentences, SentenceAnalysis{Index: i, Text: s, Result: r})
			if r.IsSarcastic {
				doc.Metadata.SarcasticSentences++
			}
			if r.Sentiment != Neutral {
				seen[r.Sentiment] = true
			}
			reportProgress(float64(i+1) / float64(len(sents)))
		}
		doc.Metadata.SentenceCount = len(doc.Sentences)
		doc.Metadata.MixedSentiment = seen[Positive] && seen[Negative]
	}
	reportProgress(1.0)

	doc.Metadata.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	return doc, nil
}
