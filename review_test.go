package thaiemotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoliticalContext(t *testing.T) {
	tests := []struct {
		text      string
		neg       int
		pos       int
		crit      int
		suggested Sentiment
		desc      string
	}{
		{"ทุจริต โกหก", 2, 0, 0, Negative, "Negative vocabulary"},
		{"ชื่นชมและภูมิใจ", 0, 2, 0, Positive, "Positive vocabulary"},
		{"หยุดเถอะ", 0, 0, 1, Negative, "Criticism only"},
		{"hello world", 0, 0, 0, Neutral, "Nothing political"},
	}

	rv := NewReviewer()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			pc := rv.PoliticalContext(tt.text)
			assert.Equal(t, tt.neg, pc.NegativeWords)
			assert.Equal(t, tt.pos, pc.PositiveWords)
			assert.Equal(t, tt.crit, pc.CriticismWords)
			assert.Equal(t, tt.suggested, pc.SuggestedSentiment)
			assert.Equal(t, tt.neg+tt.pos+tt.crit > 0, pc.IsPolitical)
		})
	}
}

func TestReview(t *testing.T) {
	tests := []struct {
		text      string
		sentiment Sentiment
		conf      float64
		want      Sentiment
		wantConf  float64
		adjusted  bool
		reasons   int
		desc      string
	}{
		{"เก่งจัง", Positive, 0.9, Negative, 0.9, false, 1, "Sarcasm forces negative"},
		{"ทุจริต โกหก", Neutral, 0.3, Negative, 0.65, false, 2, "Override then strong criticism"},
		{"ชื่นชมและภูมิใจ", Neutral, 0.2, Positive, 0.4, false, 1, "Low confidence override"},
		{"ดีแต่พังและห่วย", Positive, 0.9, Negative, 0.9, false, 1, "Contradiction fix"},
		{"หยุดเถอะ", Negative, 0.55, Negative, 0.7, true, 1, "Confidence boost"},
	}

	rv := NewReviewer()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			r := &AnalysisResult{Text: tt.text, Sentiment: tt.sentiment, SentimentScore: tt.sentiment.Score(), Confidence: tt.conf}
			got := rv.Review(tt.text, r)

			assert.True(t, got.Applied)
			assert.Equal(t, tt.want, got.Sentiment)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-9)
			assert.Equal(t, tt.adjusted, got.ConfidenceAdjusted)
			assert.Len(t, got.Reasons, tt.reasons)
			assert.Equal(t, tt.sentiment, got.OriginalSentiment)
			assert.Equal(t, tt.conf, got.OriginalConfidence)
			assert.InDelta(t, 0.7, got.Probabilities[tt.want], 1e-9)
			if tt.want == Negative {
				assert.Equal(t, -0.6, got.SentimentScore)
			} else {
				assert.Equal(t, 0.6, got.SentimentScore)
			}

			assert.Equal(t, tt.sentiment, r.Sentiment, "input result is not modified")
			assert.Equal(t, tt.conf, r.Confidence)
		})
	}
}

func TestReviewNoChange(t *testing.T) {
	r := &AnalysisResult{Text: "hello world", Sentiment: Positive, SentimentScore: 0.7, Confidence: 0.9}
	got := NewReviewer().Review(r.Text, r)

	assert.False(t, got.Applied)
	assert.False(t, got.Changed())
	assert.Empty(t, got.Reasons)
	assert.Nil(t, got.Probabilities)
	assert.Equal(t, 0.7, got.SentimentScore)
	assert.Equal(t, 0.9, got.Confidence)
}

func TestReviewAll(t *testing.T) {
	results := []*AnalysisResult{
		{Text: "เก่งจัง", Sentiment: Positive, Confidence: 0.9},
		{Text: "หยุดเถอะ", Sentiment: Negative, Confidence: 0.55},
		{Text: "ชื่นชมและภูมิใจ", Sentiment: Neutral, Confidence: 0.2},
		nil,
		{Text: "hello world", Sentiment: Positive, Confidence: 0.9},
	}

	reviews, st := NewReviewer().ReviewAll(results)
	assert.Len(t, reviews, len(results))
	assert.Equal(t, ReviewStats{
		Total:              4,
		Reviewed:           3,
		SentimentChanged:   2,
		ConfidenceAdjusted: 1,
		LowConfidence:      1,
	}, st)
	assert.Equal(t, Review{}, reviews[3])
	assert.Equal(t, Negative, reviews[0].Sentiment)
	assert.Equal(t, Positive, reviews[2].Sentiment)
}
