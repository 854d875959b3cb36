package thaiemotion

import (
	"math"
	"strings"
)

// NeutralContext is the primary context reported when no tag matches.
const NeutralContext = "neutral"

// ContextClassifier assigns register and setting tags to text.
type ContextClassifier struct {
	table *ContextTable
}

// NewContextClassifier returns a classifier over table.
func NewContextClassifier(table *ContextTable) *ContextClassifier {
	return &ContextClassifier{table: table}
}

// Classify counts keyword hits per context tag and reduces them to a
// primary context and one value per dimension. Ties go to the tag that
// comes first in the table.
func (cc *ContextClassifier) Classify(text string) ContextAnalysis {
	clean := strings.ToLower(text)
	hits := make(map[string]int)
	for _, p := range cc.table.patterns {
		n := 0
		for _, kw := range p.Keywords {
			if strings.Contains(clean, kw) {
				n++
			}
		}
		if n > 0 {
			hits[p.Tag] = n
		}
	}

	ca := ContextAnalysis{
		PrimaryContext: NeutralContext,
		AllContexts:    hits,
	}
	cc.applyDimensions(&ca, hits)
	if len(hits) == 0 {
		return ca
	}

	best := 0
	for _, p := range cc.table.patterns {
		if n := hits[p.Tag]; n > best {
			best = n
			ca.PrimaryContext = p.Tag
		}
	}
	if words := len(Tokens(clean)); words > 0 {
		ca.ContextConfidence = round3(float64(best) / float64(words))
	}
	return ca
}

func (cc *ContextClassifier) applyDimensions(ca *ContextAnalysis, hits map[string]int) {
	for _, d := range cc.table.dimensions {
		value := d.Default
		best := 0
		for _, tag := range d.Tags {
			if n := hits[tag]; n > best {
				best = n
				value = tag
			}
		}
		switch d.Name {
		case DimFormality:
			ca.FormalityLevel = value
		case DimSocial:
			ca.SocialSetting = value
		case DimTone:
			ca.EmotionalTone = value
		case DimGeneration:
			ca.Generation = value
		case DimProfession:
			ca.Profession = value
		}
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
