package thaiemotion

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(DefaultConfig(), opts...)
	require.NoError(t, err)
	return a
}

func TestAnalyzeScenarios(t *testing.T) {
	tests := []struct {
		text      string
		label     Label
		group     Group
		sentiment Sentiment
		sarcastic bool
		minConf   float64
		desc      string
	}{
		{"ดีใจมากเลย รักเธอที่สุดเลย ❤️😍", LabelLove, GroupPositive, Positive, false, 1.0, "Love emoji override"},
		{"555😂🤣", LabelHumor, GroupOthers, Neutral, false, 0.8, "Laughter override"},
		{"ไม่ได้ไม่ชอบนะ", LabelNeutral, GroupNeutral, Neutral, false, 1.0, "Double negative"},
		{"งานนี้สุดยอดครับ... ถ้าชอบความล้มเหลว", LabelAnger, GroupNegative, Negative, true, 1.0, "Sarcastic praise"},
	}

	a := newTestAnalyzer(t)
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			r, err := a.Analyze(tt.text, Single, DefaultThreshold)
			require.NoError(t, err)

			assert.Equal(t, []Label{tt.label}, r.SelectedLabels)
			assert.Equal(t, []Group{tt.group}, r.Groups)
			assert.Equal(t, tt.sentiment, r.Sentiment)
			assert.Equal(t, tt.sentiment.Score(), r.SentimentScore)
			assert.Equal(t, tt.sarcastic, r.IsSarcastic)
			assert.GreaterOrEqual(t, r.Confidence, tt.minConf)
			assert.LessOrEqual(t, r.Confidence, 1.0)
			assert.Equal(t, RulesModel, r.ModelUsed)
		})
	}
}

func TestDoubleNegativeSuppressesNegativeLabels(t *testing.T) {
	a := newTestAnalyzer(t)
	r, err := a.Analyze("ไม่ได้ไม่ชอบนะ", Single, DefaultThreshold)
	require.NoError(t, err)

	assert.Zero(t, r.RawScores[LabelHate])
	assert.Zero(t, r.RawScores[LabelAnger])
	assert.Zero(t, r.RawScores[LabelDissatisfied])
	assert.InDelta(t, 3.0, r.RawScores[LabelNeutral], 1e-9)
}

func TestSarcasmReason(t *testing.T) {
	a := newTestAnalyzer(t)
	r, err := a.Analyze("งานนี้สุดยอดครับ... ถ้าชอบความล้มเหลว", Single, DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, "Matched sarcasm pattern: '(งาน|สิ่ง)นี้สุดยอด.*ถ้า.*ล้มเหลว'", r.SarcasmReason)
	for _, l := range a.PatternTable().LabelsIn(GroupPositive) {
		assert.Zero(t, r.RawScores[l], "positive label %s", l)
	}
	assert.Equal(t, MaxScore, r.RawScores[LabelSarcasm])
	assert.Equal(t, MaxScore, r.RawScores[LabelSardonic])
}

func TestSarcasmDominatesPositiveWords(t *testing.T) {
	texts := []struct {
		text string
		desc string
	}{
		{"ขอบคุณที่ทำให้วันนี้แย่มาก", "Thanks for ruining the day"},
		{"สวยเลือกได้จริงๆ", "Beauty idiom"},
		{"oh, great, another meeting", "English sarcasm"},
	}

	a := newTestAnalyzer(t)
	for _, tt := range texts {
		t.Run(tt.desc, func(t *testing.T) {
			r, err := a.Analyze(tt.text, Multi, DefaultThreshold)
			require.NoError(t, err)

			require.True(t, r.IsSarcastic)
			assert.NotContains(t, r.Groups, GroupPositive)
			assert.Contains(t, r.SelectedLabels, LabelSarcasm)
			assert.Equal(t, Negative, r.Sentiment)
		})
	}
}

func TestAnalyzeMultiLabel(t *testing.T) {
	a := newTestAnalyzer(t)
	r, err := a.Analyze("ดีใจมากเลย รักเธอที่สุดเลย ❤️😍", Multi, DefaultThreshold)
	require.NoError(t, err)

	assert.Contains(t, r.SelectedLabels, LabelJoy)
	assert.Contains(t, r.SelectedLabels, LabelLike)
	assert.Contains(t, r.SelectedLabels, LabelLove)
	assert.Equal(t, []Group{GroupPositive}, r.Groups)
	assert.Equal(t, Positive, r.Sentiment)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t, Multi, r.Mode)

	rec := r.Record(false)
	assert.Empty(t, rec.DetailedEmotion)
	assert.Equal(t, r.SelectedLabels, rec.DetailedEmotions)
}

func TestAnalyzeMultiLabelThresholdOne(t *testing.T) {
	a := newTestAnalyzer(t)
	r, err := a.Analyze("เกลียดมาก", Multi, 1.0)
	require.NoError(t, err)

	assert.Equal(t, []Label{LabelHate}, r.SelectedLabels)
	assert.Equal(t, Negative, r.Sentiment)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	inputs := []struct {
		text string
		desc string
	}{
		{"", "Empty"},
		{"   \n\t", "Whitespace only"},
	}

	a := newTestAnalyzer(t)
	for _, tt := range inputs {
		t.Run(tt.desc, func(t *testing.T) {
			for _, mode := range []Mode{Single, Multi} {
				r, err := a.Analyze(tt.text, mode, DefaultThreshold)
				require.NoError(t, err)

				assert.Equal(t, []Label{LabelNeutral}, r.SelectedLabels)
				assert.Equal(t, []Group{GroupNeutral}, r.Groups)
				assert.Equal(t, Neutral, r.Sentiment)
				assert.Zero(t, r.Confidence)
				assert.Zero(t, r.SentimentScore)
				assert.False(t, r.IsSarcastic)
				assert.Equal(t, NeutralContext, r.Context.PrimaryContext)
				assert.Len(t, r.RawScores, len(a.PatternTable().Labels()))
			}
		})
	}
}

func TestAnalyzeInvalidRequest(t *testing.T) {
	tests := []struct {
		mode      Mode
		threshold float64
		want      error
		desc      string
	}{
		{"weird", 0.3, ErrInvalidMode, "Unknown mode"},
		{"", 0.3, ErrInvalidMode, "Empty mode"},
		{Multi, 1.5, ErrInvalidThreshold, "Threshold above one"},
		{Multi, -0.1, ErrInvalidThreshold, "Negative threshold"},
		{Single, 2, ErrInvalidThreshold, "Threshold checked in single mode too"},
	}

	a := newTestAnalyzer(t)
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := a.Analyze("ดีใจ", tt.mode, tt.threshold)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewAnalyzerValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "both"
	_, err := NewAnalyzer(cfg)
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = NewAnalyzer(DefaultConfig(), WithPatternTable(nil))
	assert.ErrorIs(t, err, ErrInvalidPatternTable)

	cfg = DefaultConfig()
	cfg.Workers = 0
	a, err := NewAnalyzer(cfg)
	require.NoError(t, err)
	assert.Positive(t, a.Config().Workers)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := newTestAnalyzer(t)
	text := "โกรธมาก แต่ก็ขำ 555 😂"
	first, err := a.Analyze(text, Multi, DefaultThreshold)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := a.Analyze(text, Multi, DefaultThreshold)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAnalyzeConcurrentUse(t *testing.T) {
	a := newTestAnalyzer(t)
	want, err := a.Analyze("เสียใจมาก 😭", Single, DefaultThreshold)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := a.Analyze("เสียใจมาก 😭", Single, DefaultThreshold)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

type stubModel struct {
	name string
	pred Prediction
	err  error
}

func (m stubModel) Name() string { return m.name }

func (m stubModel) Predict(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	return m.pred, m.err
}

func useModel() Config {
	cfg := DefaultConfig()
	cfg.UseModel = true
	return cfg
}

func TestAnalyzeUsesModel(t *testing.T) {
	m := stubModel{name: "stub", pred: Prediction{Sentiment: Negative, Score: -0.42, Confidence: 0.9}}
	a, err := NewAnalyzer(useModel(), WithModel(m))
	require.NoError(t, err)

	r, err := a.Analyze("ดีใจมาก", Single, DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, "stub", r.ModelUsed)
	assert.Equal(t, Negative, r.Sentiment)
	assert.Equal(t, -0.42, r.SentimentScore)
	assert.Empty(t, r.FallbackReason)
	assert.Equal(t, []Label{LabelJoy}, r.SelectedLabels, "labels still come from the rules")
}

func TestAnalyzeModelIgnoredWhenDisabled(t *testing.T) {
	m := stubModel{name: "stub", pred: Prediction{Sentiment: Negative, Score: -1}}
	a, err := NewAnalyzer(DefaultConfig(), WithModel(m))
	require.NoError(t, err)

	r, err := a.Analyze("ดีใจมาก", Single, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, RulesModel, r.ModelUsed)
	assert.Equal(t, Positive, r.Sentiment)
}

func TestAnalyzeModelFallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := stubModel{name: "stub", err: errors.New("weights unavailable")}
	a, err := NewAnalyzer(useModel(), WithModel(m), WithMetrics(reg))
	require.NoError(t, err)

	r, err := a.Analyze("ดีใจมาก", Single, DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, RulesModel, r.ModelUsed)
	assert.Equal(t, "weights unavailable", r.FallbackReason)
	assert.Equal(t, Positive, r.Sentiment)
	assert.Equal(t, PositiveScore, r.SentimentScore)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.ModelFallbacks.WithLabelValues("stub")))
}

func TestAnalyzeVaderFallsBackOnThai(t *testing.T) {
	a, err := NewAnalyzer(useModel(), WithModel(NewVaderModel()))
	require.NoError(t, err)

	r, err := a.Analyze("เสียใจมาก", Single, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, RulesModel, r.ModelUsed)
	assert.Contains(t, r.FallbackReason, ErrUnsupportedLanguage.Error())
	assert.Equal(t, Negative, r.Sentiment)

	r, err = a.Analyze("I hate this, it is awful and terrible", Single, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, "vader", r.ModelUsed)
	assert.Equal(t, Negative, r.Sentiment)
	assert.Less(t, r.SentimentScore, 0.0)
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAnalyzer(t)
	_, err := a.AnalyzeContext(ctx, "ดีใจ", Single, DefaultThreshold)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := newTestAnalyzer(t, WithMetrics(reg))

	_, err := a.Analyze("ดีใจมาก", Single, DefaultThreshold)
	require.NoError(t, err)
	_, err = a.Analyze("ขอบคุณที่ทำให้วันนี้แย่มาก", Single, DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.Analyses.WithLabelValues("single", "positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.Analyses.WithLabelValues("single", "negative")))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.metrics.SarcasmDetections))
	assert.Equal(t, 1, testutil.CollectAndCount(a.metrics.AnalysisLatency))

	_, err = NewAnalyzer(DefaultConfig(), WithMetrics(reg))
	assert.Error(t, err, "collectors are already registered")
}

func TestNegationGuard(t *testing.T) {
	tests := []struct {
		guard     bool
		label     Label
		sentiment Sentiment
		desc      string
	}{
		{false, LabelLove, Positive, "Every hit counts by default"},
		{true, LabelMisc, Neutral, "Guard drops the negated hit"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.NegationGuard = tt.guard
			a, err := NewAnalyzer(cfg)
			require.NoError(t, err)

			r, err := a.Analyze("ฉันไม่รักเธอ", Single, DefaultThreshold)
			require.NoError(t, err)
			assert.Equal(t, tt.label, r.Label())
			assert.Equal(t, tt.sentiment, r.Sentiment)
		})
	}
}

func TestAnalyzeHashtag(t *testing.T) {
	a := newTestAnalyzer(t)
	r, err := a.Analyze("#เกลียดที่สุด", Single, DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, LabelHate, r.Label())
	assert.Equal(t, Negative, r.Sentiment)
	assert.InDelta(t, 1.5, r.RawScores[LabelHate], 1e-9)
}

func TestMultiLabelSuperset(t *testing.T) {
	texts := []string{
		"ดีใจมากเลย รักเธอที่สุดเลย ❤️😍",
		"555😂🤣",
		"ไม่ได้ไม่ชอบนะ",
		"งานนี้สุดยอดครับ... ถ้าชอบความล้มเหลว",
		"โกรธมาก โมโห แต่ก็เสียใจ 😢",
		"xyzzy",
	}
	thresholds := []float64{1, 0.8, 0.5, 0.3, 0.1, 0}

	a := newTestAnalyzer(t)
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			var prev []Label
			var last *AnalysisResult
			for _, th := range thresholds {
				r, err := a.Analyze(text, Multi, th)
				require.NoError(t, err)
				require.NotEmpty(t, r.SelectedLabels, "threshold %v", th)
				assert.Subset(t, r.SelectedLabels, prev, "threshold %v keeps every label selected above it", th)
				prev = r.SelectedLabels
				last = r
			}

			var scored []Label
			for _, l := range a.PatternTable().Labels() {
				if last.NormalizedScores[l] > 0 {
					scored = append(scored, l)
				}
			}
			assert.Equal(t, scored, prev, "threshold 0 selects every scored label")
		})
	}
}
