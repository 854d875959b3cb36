package thaiemotion

import (
	"fmt"
	"math"
	"strings"
)

// Selection is the outcome of label selection for one text.
type Selection struct {
	Labels     []Label
	Groups     []Group
	Sentiment  Sentiment
	Confidence float64
}

// Selector normalizes raw scores and picks labels from them.
type Selector struct {
	table *PatternTable
}

// NewSelector returns a Selector that breaks ties in table order.
func NewSelector(table *PatternTable) *Selector {
	return &Selector{table: table}
}

// Normalize divides every score by the largest one. When the largest score
// is zero the scores are returned unchanged.
func (s *Selector) Normalize(scores map[Label]float64) map[Label]float64 {
	max := 0.0
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	out := make(map[Label]float64, len(scores))
	for l, v := range scores {
		if max > 0 {
			out[l] = v / max
		} else {
			out[l] = v
		}
	}
	return out
}

func validateRequest(mode Mode, threshold float64) error {
	if mode != Single && mode != Multi {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Select picks labels from normalized scores. text is the original input,
// used for the emoji override in single mode.
func (s *Selector) Select(norm map[Label]float64, mode Mode, threshold float64, text string, sarcastic bool) (Selection, error) {
	if err := validateRequest(mode, threshold); err != nil {
		return Selection{}, err
	}

	var sel Selection
	if mode == Single {
		sel = s.single(norm, text, sarcastic)
	} else {
		sel = s.multi(norm, threshold)
	}

	seen := map[Group]bool{}
	for _, l := range sel.Labels {
		g, ok := s.table.GroupOf(l)
		if !ok || seen[g] {
			continue
		}
		seen[g] = true
		sel.Groups = append(sel.Groups, g)
	}
	sel.Sentiment = coarseSentiment(seen)
	return sel, nil
}

func (s *Selector) single(norm map[Label]float64, text string, sarcastic bool) Selection {
	best, bestScore := LabelNeutral, 0.0
	for _, l := range s.table.Labels() {
		if v := norm[l]; v > bestScore {
			best, bestScore = l, v
		}
	}
	if bestScore == 0 {
		return Selection{Labels: []Label{LabelNeutral}, Confidence: 0}
	}

	if !sarcastic {
		switch {
		case hasMarker(text, laughterMarkers):
			return Selection{Labels: []Label{LabelHumor}, Confidence: math.Max(norm[LabelHumor], emojiOverrideConfidence)}
		case hasMarker(text, loveMarkers):
			return Selection{Labels: []Label{LabelLove}, Confidence: math.Max(norm[LabelLove], emojiOverrideConfidence)}
		}
	}
	return Selection{Labels: []Label{best}, Confidence: bestScore}
}

func (s *Selector) multi(norm map[Label]float64, threshold float64) Selection {
	var sel Selection
	for _, l := range s.table.Labels() {
		if v := norm[l]; v > 0 && v >= threshold {
			sel.Labels = append(sel.Labels, l)
			sel.Confidence = math.Max(sel.Confidence, v)
		}
	}
	if len(sel.Labels) == 0 {
		sel.Labels = []Label{LabelNeutral}
	}
	return sel
}

func coarseSentiment(groups map[Group]bool) Sentiment {
	switch {
	case groups[GroupPositive]:
		return Positive
	case groups[GroupNegative]:
		return Negative
	default:
		return Neutral
	}
}

func hasMarker(text string, markers []string) bool {
	lower := strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
