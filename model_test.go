package thaiemotion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sentimentCorpus = []LabeledText{
	{"ดีใจมากเลย 😊", Positive},
	{"รักเธอที่สุด ❤️", Positive},
	{"ชอบมาก สนุกสุดๆ", Positive},
	{"ประทับใจมาก ขอบคุณครับ", Positive},
	{"I love this, happy day", Positive},
	{"สุดยอดเลย ดีใจจัง 😍", Positive},
	{"เสียใจมาก 😭", Negative},
	{"โกรธมาก โมโหสุดๆ 😡", Negative},
	{"เกลียดที่สุด", Negative},
	{"ผิดหวังมาก แย่จริงๆ", Negative},
	{"I hate this traffic", Negative},
	{"เศร้าจัง ร้องไห้ 😢", Negative},
}

func trainTestModel(t *testing.T) *MaxentModel {
	t.Helper()
	cfg := DefaultTrainingConfig()
	cfg.ValidationSplit = 0
	cfg.Shuffle = false
	model, _, err := NewTrainer(cfg).Train(sentimentCorpus)
	require.NoError(t, err)
	return model
}

func TestMaxentPredict(t *testing.T) {
	model := trainTestModel(t)
	assert.Equal(t, "maxent", model.Name())
	assert.ElementsMatch(t, []string{"positive", "negative"}, model.Labels())

	tests := []struct {
		text string
		want Sentiment
		desc string
	}{
		{"รักเธอที่สุด ❤️", Positive, "Positive example"},
		{"โกรธมาก โมโหสุดๆ 😡", Negative, "Negative example"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			pred, err := model.Predict(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pred.Sentiment)

			sum := 0.0
			for _, p := range pred.Probabilities {
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
			assert.InDelta(t, pred.Probabilities[Positive]-pred.Probabilities[Negative], pred.Score, 1e-9)
			assert.Equal(t, pred.Probabilities[tt.want], pred.Confidence)
		})
	}
}

func TestMaxentUntrained(t *testing.T) {
	_, err := (&MaxentModel{}).Predict(context.Background(), "ดีใจ")
	assert.ErrorIs(t, err, ErrModelNotTrained)
}

func TestMaxentSaveLoad(t *testing.T) {
	model := trainTestModel(t)
	root := t.TempDir()
	dir := filepath.Join(root, "sentiment")
	require.NoError(t, model.Save(dir))

	loaded, err := LoadMaxentModel(dir)
	require.NoError(t, err)
	assert.Equal(t, "sentiment", loaded.Name())

	fromFS, err := LoadMaxentModelFS("sentiment", os.DirFS(root))
	require.NoError(t, err)

	for _, ex := range sentimentCorpus {
		want, err := model.Predict(context.Background(), ex.Text)
		require.NoError(t, err)
		got, err := loaded.Predict(context.Background(), ex.Text)
		require.NoError(t, err)
		assert.Equal(t, want.Sentiment, got.Sentiment)
		assert.InDelta(t, want.Score, got.Score, 1e-9)

		got, err = fromFS.Predict(context.Background(), ex.Text)
		require.NoError(t, err)
		assert.Equal(t, want.Sentiment, got.Sentiment)
	}

	_, err = LoadMaxentModelFS("missing", os.DirFS(root))
	assert.Error(t, err)
	_, err = LoadMaxentModel(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestTrain(t *testing.T) {
	var calls int
	cfg := DefaultTrainingConfig()
	cfg.ValidationSplit = 0.25
	cfg.ProgressCallback = func(iterations int, accuracy float64) {
		calls++
		assert.Positive(t, iterations)
		assert.GreaterOrEqual(t, accuracy, 0.0)
	}

	_, metrics, err := NewTrainer(cfg).Train(sentimentCorpus)
	require.NoError(t, err)
	assert.Equal(t, 9, metrics.TrainingExamples)
	assert.Equal(t, 3, metrics.ValidationExamples)
	assert.LessOrEqual(t, metrics.Accuracy, 1.0)
	assert.LessOrEqual(t, metrics.Iterations, cfg.Iterations)
	assert.Equal(t, 1, calls)
}

func TestTrainErrors(t *testing.T) {
	_, _, err := NewTrainer(DefaultTrainingConfig()).Train(nil)
	assert.ErrorIs(t, err, ErrEmptyTrainingData)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := DefaultTrainingConfig()
	cfg.Context = ctx
	_, _, err = NewTrainer(cfg).Train(sentimentCorpus)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCrossValidate(t *testing.T) {
	cfg := DefaultTrainingConfig()
	cfg.Iterations = 20
	tr := NewTrainer(cfg)

	res, err := tr.CrossValidate(sentimentCorpus, 3)
	require.NoError(t, err)
	require.Len(t, res.FoldResults, 3)
	total := 0
	for _, f := range res.FoldResults {
		total += f.Examples
	}
	assert.Equal(t, len(sentimentCorpus), total)
	assert.GreaterOrEqual(t, res.MeanAccuracy, 0.0)
	assert.LessOrEqual(t, res.MeanAccuracy, 1.0)

	_, err = tr.CrossValidate(sentimentCorpus, 1)
	assert.Error(t, err)
	_, err = tr.CrossValidate(sentimentCorpus[:2], 3)
	assert.Error(t, err)
}

func TestAnalyzeWithTrainedModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseModel = true
	a, err := NewAnalyzer(cfg, WithModel(trainTestModel(t)))
	require.NoError(t, err)

	r, err := a.Analyze("เสียใจมาก 😭", Single, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, "maxent", r.ModelUsed)
	assert.Equal(t, Negative, r.Sentiment)
	assert.Equal(t, LabelSad, r.Label())
}
