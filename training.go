package thaiemotion

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyTrainingData is returned when there is nothing to train on.
var ErrEmptyTrainingData = errors.New("training data is empty")

// LabeledText is a text with its gold coarse sentiment.
type LabeledText struct {
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
}

// TrainingConfig contains configuration for model training
type TrainingConfig struct {
	Name             string
	Iterations       int
	Tolerance        float64 // GIS stops once the mean weight change drops below this
	ValidationSplit  float64
	Shuffle          bool
	Seed             int64
	Context          context.Context
	Logger           *logrus.Logger
	ProgressCallback func(iterations int, accuracy float64)
}

// DefaultTrainingConfig returns a default training configuration
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Name:            "maxent",
		Iterations:      100,
		Tolerance:       0.0005,
		ValidationSplit: 0.2,
		Shuffle:         true,
		Seed:            1,
		Context:         context.Background(),
	}
}

// TrainingMetrics contains metrics from training
type TrainingMetrics struct {
	TrainingExamples   int
	ValidationExamples int
	Accuracy           float64 // on the validation split, or the training data when there is none
	Iterations         int
	Converged          bool
	TrainingTime       time.Duration
}

// CrossValidationResult contains results from cross-validation
type CrossValidationResult struct {
	MeanAccuracy float64
	StdAccuracy  float64
	FoldResults  []ValidationResult
}

// ValidationResult contains validation metrics for one fold
type ValidationResult struct {
	Accuracy float64
	Examples int
}

// Trainer fits MaxentModels from labeled text.
type Trainer struct {
	config TrainingConfig
	log    *logrus.Entry
}

// NewTrainer creates a new trainer with the given configuration
func NewTrainer(config TrainingConfig) *Trainer {
	if config.Context == nil {
		config.Context = context.Background()
	}
	if config.Iterations <= 0 {
		config.Iterations = DefaultTrainingConfig().Iterations
	}
	if config.Name == "" {
		config.Name = DefaultTrainingConfig().Name
	}
	logger := config.Logger
	if logger == nil {
		logger = discardLogger()
	}
	return &Trainer{
		config: config,
		log:    logger.WithField("component", "trainer"),
	}
}

// Train fits a model on data. When ValidationSplit is set, the tail of the
// (optionally shuffled) data is held out and Accuracy is measured on it.
func (t *Trainer) Train(data []LabeledText) (*MaxentModel, TrainingMetrics, error) {
	start := time.Now()
	if len(data) == 0 {
		return nil, TrainingMetrics{}, ErrEmptyTrainingData
	}

	data = append([]LabeledText(nil), data...)
	if t.config.Shuffle {
		r := rand.New(rand.NewSource(t.config.Seed))
		r.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
	}

	trainData, validData := data, []LabeledText(nil)
	if t.config.ValidationSplit > 0 && t.config.ValidationSplit < 1 {
		splitIdx := int(float64(len(data)) * (1.0 - t.config.ValidationSplit))
		if splitIdx > 0 && splitIdx < len(data) {
			trainData, validData = data[:splitIdx], data[splitIdx:]
		}
	}

	model, res, err := t.fit(trainData)
	if err != nil {
		return nil, TrainingMetrics{}, err
	}

	metrics := TrainingMetrics{
		TrainingExamples:   len(trainData),
		ValidationExamples: len(validData),
		Iterations:         res.iterations,
		Converged:          res.converged,
	}
	if len(validData) > 0 {
		metrics.Accuracy = t.evaluate(model, validData)
	} else {
		metrics.Accuracy = t.evaluate(model, trainData)
	}
	metrics.TrainingTime = time.Since(start)

	if t.config.ProgressCallback != nil {
		t.config.ProgressCallback(metrics.Iterations, metrics.Accuracy)
	}
	t.log.WithFields(logrus.Fields{
		"train":      metrics.TrainingExamples,
		"validation": metrics.ValidationExamples,
		"accuracy":   metrics.Accuracy,
		"iterations": metrics.Iterations,
		"converged":  metrics.Converged,
	}).Info("trained maxent model")

	return model, metrics, nil
}

func (t *Trainer) fit(data []LabeledText) (*MaxentModel, gisResult, error) {
	extractor := newSentimentFeatureExtractor(DefaultPatternTable())
	corpus := make(featureSet, 0, len(data))
	for _, example := range data {
		if err := t.config.Context.Err(); err != nil {
			return nil, gisResult{}, err
		}
		corpus = append(corpus, feature{
			features: extractor.extractFeatures(example.Text),
			label:    string(example.Sentiment),
		})
	}
	return trainGIS(t.config.Context, t.config.Name, corpus, t.config.Iterations, t.config.Tolerance, t.log)
}

func (t *Trainer) evaluate(model *MaxentModel, data []LabeledText) float64 {
	if len(data) == 0 {
		return 0
	}
	correct := 0
	for _, example := range data {
		pred, err := model.Predict(t.config.Context, example.Text)
		if err == nil && pred.Sentiment == example.Sentiment {
			correct++
		}
	}
	return float64(correct) / float64(len(data))
}

// CrossValidate runs k-fold cross-validation and reports the mean and
// standard deviation of fold accuracy.
func (t *Trainer) CrossValidate(data []LabeledText, k int) (CrossValidationResult, error) {
	if k <= 1 {
		return CrossValidationResult{}, fmt.Errorf("k must be greater than 1")
	}
	if len(data) < k {
		return CrossValidationResult{}, fmt.Errorf("need at least %d examples for %d folds, have %d", k, k, len(data))
	}

	foldSize := len(data) / k
	results := make([]ValidationResult, k)
	accuracies := make([]float64, k)

	for fold := 0; fold < k; fold++ {
		start := fold * foldSize
		end := start + foldSize
		if fold == k-1 {
			end = len(data)
		}

		testData := data[start:end]
		trainData := make([]LabeledText, 0, len(data)-len(testData))
		trainData = append(trainData, data[:start]...)
		trainData = append(trainData, data[end:]...)

		model, _, err := t.fit(trainData)
		if err != nil {
			return CrossValidationResult{}, fmt.Errorf("fold %d: %w", fold, err)
		}
		acc := t.evaluate(model, testData)
		results[fold] = ValidationResult{Accuracy: acc, Examples: len(testData)}
		accuracies[fold] = acc
	}

	mean, std := stat.MeanStdDev(accuracies, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return CrossValidationResult{
		MeanAccuracy: mean,
		StdAccuracy:  std,
		FoldResults:  results,
	}, nil
}
