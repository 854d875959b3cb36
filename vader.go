package thaiemotion

import (
	"context"
	"math"
	"sync"

	"github.com/jonreiter/govader"
)

// VADER compound cutoffs for the coarse sentiment.
const (
	vaderPositiveCutoff = 0.05
	vaderNegativeCutoff = -0.05
)

// VaderModel scores English-dominant text with VADER. Thai-dominant text is
// rejected with ErrUnsupportedLanguage. It is safe for concurrent use.
type VaderModel struct {
	sia      *govader.SentimentIntensityAnalyzer
	mu       sync.Mutex
	detector *LanguageDetector
}

// NewVaderModel returns a VADER-backed Model.
func NewVaderModel() *VaderModel {
	return &VaderModel{
		sia:      govader.NewSentimentIntensityAnalyzer(),
		detector: NewLanguageDetector(),
	}
}

// Name implements Model.
func (v *VaderModel) Name() string {
	return "vader"
}

// Predict implements Model. Score is the VADER compound score.
func (v *VaderModel) Predict(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	lang, _ := v.detector.DetectLanguage(text)
	if lang != English {
		return Prediction{}, FormatLanguageError(v.Name(), lang)
	}

	v.mu.Lock()
	scores := v.sia.PolarityScores(text)
	v.mu.Unlock()

	pred := Prediction{
		Score: scores.Compound,
		Probabilities: map[Sentiment]float64{
			Positive: scores.Positive,
			Negative: scores.Negative,
			Neutral:  scores.Neutral,
		},
	}
	switch {
	case scores.Compound >= vaderPositiveCutoff:
		pred.Sentiment = Positive
	case scores.Compound <= vaderNegativeCutoff:
		pred.Sentiment = Negative
	default:
		pred.Sentiment = Neutral
	}
	pred.Confidence = pred.Probabilities[pred.Sentiment]
	if pred.Sentiment != Neutral {
		// at least the compound magnitude
		pred.Confidence = math.Max(pred.Confidence, math.Abs(scores.Compound))
	}
	return pred, nil
}
