package thaiemotion

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a set of analysis results.
type Summary struct {
	Total               int                       `json:"total"`
	Labels              map[Label]int             `json:"labels"`
	Groups              map[Group]int             `json:"groups"`
	Sentiments          map[Sentiment]int         `json:"sentiments"`
	Contexts            map[string]map[string]int `json:"contexts"`
	MeanConfidence      float64                   `json:"mean_confidence"`
	StdConfidence       float64                   `json:"std_confidence"`
	ConfidenceQuantiles map[string]float64        `json:"confidence_quantiles,omitempty"`
	Sarcastic           int                       `json:"sarcastic"`
	Fallbacks           int                       `json:"fallbacks"`
	ModelsUsed          map[string]int            `json:"models_used"`
}

var summaryQuantiles = []struct {
	name string
	p    float64
}{
	{"p25", 0.25},
	{"p50", 0.5},
	{"p75", 0.75},
}

// Summarize counts labels, groups, sentiments and context dimensions over
// results. Every selected label and group of a multi-mode result is
// counted. Nil results are skipped.
func Summarize(results []*AnalysisResult) Summary {
	s := Summary{
		Labels:     make(map[Label]int),
		Groups:     make(map[Group]int),
		Sentiments: make(map[Sentiment]int),
		Contexts: map[string]map[string]int{
			"primary":     {},
			DimFormality:  {},
			DimSocial:     {},
			DimTone:       {},
			DimGeneration: {},
			DimProfession: {},
		},
		ModelsUsed: make(map[string]int),
	}

	confidences := make([]float64, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Total++
		for _, l := range r.SelectedLabels {
			s.Labels[l]++
		}
		for _, g := range r.Groups {
			s.Groups[g]++
		}
		s.Sentiments[r.Sentiment]++

		s.Contexts["primary"][r.Context.PrimaryContext]++
		s.Contexts[DimFormality][r.Context.FormalityLevel]++
		s.Contexts[DimSocial][r.Context.SocialSetting]++
		s.Contexts[DimTone][r.Context.EmotionalTone]++
		s.Contexts[DimGeneration][r.Context.Generation]++
		s.Contexts[DimProfession][r.Context.Profession]++

		if r.IsSarcastic {
			s.Sarcastic++
		}
		if r.FallbackReason != "" {
			s.Fallbacks++
		}
		s.ModelsUsed[r.ModelUsed]++
		confidences = append(confidences, r.Confidence)
	}

	switch len(confidences) {
	case 0:
	case 1:
		s.MeanConfidence = confidences[0]
	default:
		s.MeanConfidence, s.StdConfidence = stat.MeanStdDev(confidences, nil)
		if math.IsNaN(s.StdConfidence) {
			s.StdConfidence = 0
		}
	}

	if len(confidences) > 0 {
		sort.Float64s(confidences)
		s.ConfidenceQuantiles = make(map[string]float64, len(summaryQuantiles))
		for _, q := range summaryQuantiles {
			s.ConfidenceQuantiles[q.name] = stat.Quantile(q.p, stat.Empirical, confidences, nil)
		}
	}
	return s
}
