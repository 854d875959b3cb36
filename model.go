package thaiemotion

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Prediction is a model's coarse sentiment judgment for one text.
type Prediction struct {
	Sentiment     Sentiment
	Score         float64 // P(positive) - P(negative) for probabilistic models
	Confidence    float64
	Probabilities map[Sentiment]float64
}

// A Model is a secondary sentiment signal. When configured it decides the
// sentiment and sentiment score of an analysis; the labels always come from
// the rule engine.
type Model interface {
	Name() string
	Predict(ctx context.Context, text string) (Prediction, error)
}

// ErrModelNotTrained is returned when predicting with an empty model.
var ErrModelNotTrained = errors.New("model has no weights")

const biasFeature = "__BIAS__"

type feature struct {
	features map[string]string
	label    string
}

type featureSet []feature

// MaxentModel is a multinomial maximum-entropy sentiment classifier trained
// with generalized iterative scaling.
type MaxentModel struct {
	name        string
	mapping     map[string]int // fname-fval-label -> weight index
	weights     []float64
	labels      []string
	cardinality int

	extractor *sentimentFeatureExtractor
}

func newMaxentModel(name string, weights []float64, mapping map[string]int, labels []string) *MaxentModel {
	return &MaxentModel{
		name:      name,
		mapping:   mapping,
		weights:   weights,
		labels:    labels,
		extractor: newSentimentFeatureExtractor(DefaultPatternTable()),
	}
}

// Name implements Model.
func (m *MaxentModel) Name() string {
	return m.name
}

// Labels returns the sentiment classes the model was trained on.
func (m *MaxentModel) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Predict implements Model.
func (m *MaxentModel) Predict(ctx context.Context, text string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	if len(m.weights) == 0 || len(m.labels) == 0 {
		return Prediction{}, ErrModelNotTrained
	}
	features := m.extractor.extractFeatures(text)
	features[biasFeature] = "1"
	probs := m.probabilities(features)

	pred := Prediction{Probabilities: make(map[Sentiment]float64, len(probs))}
	for _, label := range m.labels {
		p := probs[label]
		s := Sentiment(label)
		pred.Probabilities[s] = p
		if p > pred.Confidence {
			pred.Confidence = p
			pred.Sentiment = s
		}
	}
	pred.Score = pred.Probabilities[Positive] - pred.Probabilities[Negative]
	return pred, nil
}

func encodingKey(fname, fval, label string) string {
	return strings.Join([]string{fname, fval, label}, "-")
}

// probabilities returns the softmax distribution over labels.
func (m *MaxentModel) probabilities(features map[string]string) map[string]float64 {
	scores := make(map[string]float64, len(m.labels))
	maxScore := math.Inf(-1)
	for _, label := range m.labels {
		score := 0.0
		for fname, fval := range features {
			if idx, found := m.mapping[encodingKey(fname, fval, label)]; found {
				if idx < len(m.weights) && !math.IsInf(m.weights[idx], -1) {
					score += m.weights[idx]
				}
			}
		}
		scores[label] = score
		maxScore = math.Max(maxScore, score)
	}

	sumExp := 0.0
	for label, score := range scores {
		e := math.Exp(score - maxScore)
		scores[label] = e
		sumExp += e
	}
	for label := range scores {
		scores[label] /= sumExp
	}
	return scores
}

// Save writes the model under dir/Maxent as gob files.
func (m *MaxentModel) Save(dir string) error {
	loc := filepath.Join(dir, "Maxent")
	if err := os.MkdirAll(loc, os.ModePerm); err != nil {
		return err
	}
	assets := map[string]any{
		"mapping.gob": m.mapping,
		"weights.gob": m.weights,
		"labels.gob":  m.labels,
	}
	for name, v := range assets {
		if err := writeGob(filepath.Join(loc, name), v); err != nil {
			return fmt.Errorf("saving %s: %w", name, err)
		}
	}
	return nil
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadMaxentModel loads a model written by Save. The model is named after
// the directory.
func LoadMaxentModel(dir string) (*MaxentModel, error) {
	return loadMaxent(filepath.Base(dir), os.DirFS(dir))
}

// LoadMaxentModelFS locates a directory called name within filesys and
// loads the model stored there.
func LoadMaxentModelFS(name string, filesys fs.FS) (*MaxentModel, error) {
	var modelFS fs.FS
	err := fs.WalkDir(filesys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == name {
			modelFS, err = fs.Sub(filesys, path)
			if err != nil {
				return err
			}
			return io.EOF
		}
		return nil
	})
	if err != io.EOF {
		if err == nil {
			err = fs.ErrNotExist
		}
		return nil, fmt.Errorf("locating model %q: %w", name, err)
	}
	return loadMaxent(name, modelFS)
}

func loadMaxent(name string, filesys fs.FS) (*MaxentModel, error) {
	var mapping map[string]int
	var weights []float64
	var labels []string

	maxent, err := fs.Sub(filesys, "Maxent")
	if err != nil {
		return nil, err
	}
	assets := []struct {
		file string
		into any
	}{
		{"mapping.gob", &mapping},
		{"weights.gob", &weights},
		{"labels.gob", &labels},
	}
	for _, a := range assets {
		if err := readGob(maxent, a.file, a.into); err != nil {
			return nil, fmt.Errorf("loading %s: %w", a.file, err)
		}
	}
	return newMaxentModel(name, weights, mapping, labels), nil
}

func readGob(filesys fs.FS, name string, into any) error {
	f, err := filesys.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(into)
}

// encodeCorpus builds the feature mapping and the GIS cardinality.
func encodeCorpus(name string, corpus featureSet) *MaxentModel {
	mapping := make(map[string]int)
	var labels []string
	seen := map[string]bool{}

	for _, entry := range corpus {
		if !seen[entry.label] {
			seen[entry.label] = true
			labels = append(labels, entry.label)
		}
		for fname, fval := range entry.features {
			key := encodingKey(fname, fval, entry.label)
			if _, found := mapping[key]; !found {
				mapping[key] = len(mapping)
			}
		}
	}
	for _, label := range labels {
		key := encodingKey(biasFeature, "1", label)
		if _, found := mapping[key]; !found {
			mapping[key] = len(mapping)
		}
	}

	cardinality := 0
	for _, entry := range corpus {
		if n := len(entry.features); n > cardinality {
			cardinality = n
		}
	}

	m := newMaxentModel(name, make([]float64, len(mapping)), mapping, labels)
	m.cardinality = cardinality
	return m
}

func empiricalCount(corpus featureSet, encoding *MaxentModel) *mat.VecDense {
	count := mat.NewVecDense(len(encoding.mapping), nil)
	for _, entry := range corpus {
		for fname, fval := range entry.features {
			if idx, found := encoding.mapping[encodingKey(fname, fval, entry.label)]; found {
				count.SetVec(idx, count.AtVec(idx)+1)
			}
		}
	}
	return count
}

func expectedCount(encoding *MaxentModel, corpus featureSet) *mat.VecDense {
	count := mat.NewVecDense(len(encoding.mapping), nil)
	for _, entry := range corpus {
		probs := encoding.probabilities(entry.features)
		for _, label := range encoding.labels {
			prob := probs[label]
			for fname, fval := range entry.features {
				if idx, found := encoding.mapping[encodingKey(fname, fval, label)]; found {
					count.SetVec(idx, count.AtVec(idx)+prob)
				}
			}
		}
	}
	return count
}

type gisResult struct {
	iterations int
	converged  bool
	avgDelta   float64
}

// trainGIS fits the maxent weights with generalized iterative scaling.
// Every corpus entry gets the bias feature before encoding.
func trainGIS(ctx context.Context, name string, corpus featureSet, maxIter int, tolerance float64, log *logrus.Entry) (*MaxentModel, gisResult, error) {
	for i := range corpus {
		if corpus[i].features == nil {
			corpus[i].features = make(map[string]string)
		}
		corpus[i].features[biasFeature] = "1"
	}

	encoding := encodeCorpus(name, corpus)
	log.WithFields(logrus.Fields{
		"features":    len(encoding.mapping),
		"labels":      len(encoding.labels),
		"cardinality": encoding.cardinality,
	}).Debug("encoded training corpus")

	empCount := empiricalCount(corpus, encoding)
	rows := empCount.Len()

	var unattested []int
	for index := 0; index < rows; index++ {
		if v := empCount.AtVec(index); v == 0 {
			unattested = append(unattested, index)
		} else {
			empCount.SetVec(index, math.Log(v))
		}
	}

	weights := make([]float64, rows)
	for _, idx := range unattested {
		weights[idx] = math.Inf(-1)
	}
	encoding.weights = weights

	var res gisResult
	if encoding.cardinality == 0 {
		return encoding, res, nil
	}
	cInv := 1.0 / float64(encoding.cardinality)

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, res, err
		}

		estCount := expectedCount(encoding, corpus)
		for _, idx := range unattested {
			estCount.SetVec(idx, estCount.AtVec(idx)+1)
		}
		for index := 0; index < rows; index++ {
			if v := estCount.AtVec(index); v > 0 {
				estCount.SetVec(index, math.Log(v))
			}
		}

		// w_i += (1/C) * (log(empirical) - log(expected))
		delta := mat.NewVecDense(rows, nil)
		delta.SubVec(empCount, estCount)
		delta.ScaleVec(cInv, delta)

		deltaSum := 0.0
		for index := range weights {
			if !math.IsInf(weights[index], -1) {
				weights[index] += delta.AtVec(index)
				deltaSum += math.Abs(delta.AtVec(index))
			}
		}
		encoding.weights = weights

		res.iterations = iter + 1
		res.avgDelta = deltaSum / float64(rows)
		if iter%20 == 0 {
			log.WithFields(logrus.Fields{"iteration": iter + 1, "avg_delta": res.avgDelta}).Debug("gis iteration")
		}
		if res.avgDelta < tolerance {
			res.converged = true
			break
		}
	}
	return encoding, res, nil
}
