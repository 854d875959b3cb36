package thaiemotion

import (
	"math"
	"strings"
)

// Score weights.
const (
	keywordWeight = 1.0
	patternWeight = 1.5
	emojiWeight   = 2.0

	// MaxScore bounds every raw label score.
	MaxScore = 5.0

	miscFallbackScore = 1.0
)

// negationPrefix marks a hit as negated when it directly precedes it.
const negationPrefix = "ไม่"

// Scorer turns cleaned text into raw per-label scores.
type Scorer struct {
	table         *PatternTable
	negationGuard bool
}

// A ScorerOpt changes how a Scorer counts hits.
type ScorerOpt func(s *Scorer)

// UsingNegationGuard can enable or disable (the default) the negation
// guard. With it on, a keyword or regex hit directly preceded by "ไม่" is
// not counted unless the hit itself starts with "ไม่".
func UsingNegationGuard(on bool) ScorerOpt {
	return func(s *Scorer) {
		s.negationGuard = on
	}
}

// NewScorer returns a Scorer over table. Every substring and regex hit
// counts unless a ScorerOpt says otherwise.
func NewScorer(table *PatternTable, opts ...ScorerOpt) *Scorer {
	s := &Scorer{table: table}
	for _, applyOpt := range opts {
		applyOpt(s)
	}
	return s
}

// Score returns a raw score for every label in the table. text must already
// be cleaned; emojis are the glyphs extracted from the original text.
func (s *Scorer) Score(text string, emojis []string, sarcastic bool) map[Label]float64 {
	scores := make(map[Label]float64, len(s.table.emotions))

	doubleNeg := doubleNegative.MatchString(text)
	if doubleNeg {
		text = doubleNegative.ReplaceAllString(text, " ")
	}

	bonus := s.IntensityBonus(text)

	for _, ep := range s.table.emotions {
		score := 0.0
		for _, kw := range ep.Keywords {
			if s.countsKeyword(text, kw) {
				score += keywordWeight
			}
		}
		for _, re := range ep.Patterns {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				if !s.negationGuard || !negatedAt(text, loc[0], text[loc[0]:loc[1]]) {
					score += patternWeight
				}
			}
		}
		for _, e := range emojis {
			if containsString(ep.Emojis, e) {
				score += emojiWeight
			}
		}
		score *= 1 + bonus
		scores[ep.Label] = math.Min(score, MaxScore)
	}

	if doubleNeg {
		scores[LabelNeutral] += doubleNegativeNeutralBoost
		for _, l := range doubleNegativeSuppressed {
			scores[l] = 0
		}
	}

	if sarcastic {
		for _, l := range s.table.LabelsIn(GroupPositive) {
			scores[l] = 0
		}
		for _, b := range sarcasmBoosts {
			scores[b.Label] += b.Boost
		}
	}

	allZero := true
	for l, v := range scores {
		v = math.Min(v, MaxScore)
		scores[l] = v
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		scores[LabelMisc] = miscFallbackScore
	}
	return scores
}

// IntensityBonus sums the tier bonus of every intensity word present in
// text, capped at maxIntensityBonus.
func (s *Scorer) IntensityBonus(text string) float64 {
	bonus := 0.0
	for _, tier := range s.table.intensity {
		for _, w := range tier.Words {
			if strings.Contains(text, w) {
				bonus += tier.Bonus
			}
		}
	}
	return math.Min(bonus, maxIntensityBonus)
}

func (s *Scorer) countsKeyword(text, kw string) bool {
	if !s.negationGuard {
		return strings.Contains(text, kw)
	}
	return containsUnnegated(text, kw)
}

// containsUnnegated reports whether kw occurs in text at least once
// without a negation directly in front of it.
func containsUnnegated(text, kw string) bool {
	offset := 0
	for {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		pos := offset + i
		if !negatedAt(text, pos, kw) {
			return true
		}
		offset = pos + len(kw)
	}
}

// negatedAt reports whether the hit starting at pos is negated. Hits that
// carry the negation themselves are never negated.
func negatedAt(text string, pos int, hit string) bool {
	if strings.HasPrefix(hit, negationPrefix) {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(text[:pos], " "), negationPrefix)
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
