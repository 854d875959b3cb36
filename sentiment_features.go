package thaiemotion

import (
	"strconv"
	"strings"
	"unicode"
)

// sentimentFeatureExtractor turns text into the sparse string features the
// maxent model is trained on.
type sentimentFeatureExtractor struct {
	ngramSize int
	scorer    *Scorer
}

func newSentimentFeatureExtractor(table *PatternTable) *sentimentFeatureExtractor {
	return &sentimentFeatureExtractor{
		ngramSize: 3,
		scorer:    NewScorer(table),
	}
}

// extractFeatures returns fname -> fval pairs for text.
func (sfe *sentimentFeatureExtractor) extractFeatures(text string) map[string]string {
	features := make(map[string]string)
	clean := CleanText(text)

	sfe.extractTokens(clean, features)
	sfe.extractCharNGrams(clean, features)
	sfe.extractEmoji(text, features)
	sfe.extractRuleFeatures(text, clean, features)
	sfe.extractStyleFeatures(text, features)

	return features
}

// extractTokens adds content-word unigrams and bigrams.
func (sfe *sentimentFeatureExtractor) extractTokens(clean string, features map[string]string) {
	tokens := ContentTokens(clean)
	for _, tok := range tokens {
		features["unigram:"+tok] = "1"
	}
	for i := 0; i < len(tokens)-1; i++ {
		features["bigram:"+tokens[i]+"_"+tokens[i+1]] = "1"
	}
}

// extractCharNGrams adds character n-grams. Thai is written without spaces
// between words, so these carry most of the lexical signal.
func (sfe *sentimentFeatureExtractor) extractCharNGrams(clean string, features map[string]string) {
	for _, g := range charNGrams(clean, sfe.ngramSize) {
		if isWord(g) {
			features["char3:"+g] = "1"
		}
	}
}

func (sfe *sentimentFeatureExtractor) extractEmoji(text string, features map[string]string) {
	for _, e := range ExtractEmojis(text) {
		features["emoji:"+e] = "1"
	}
	for _, class := range Emoticons(text) {
		features["emoticon:"+class] = "1"
	}
}

// extractRuleFeatures exposes the rule engine's view of the text: the
// sarcasm flag and which labels the pattern table fires on.
func (sfe *sentimentFeatureExtractor) extractRuleFeatures(text, clean string, features map[string]string) {
	sarcasm := DetectSarcasm(clean)
	features["sarcastic"] = strconv.FormatBool(sarcasm.IsSarcastic)

	scores := sfe.scorer.Score(clean, ExtractEmojis(text), false)
	for label, score := range scores {
		if score > 0 && label != LabelMisc {
			features["hit:"+string(label)] = "1"
		}
	}
	if doubleNegative.MatchString(clean) {
		features["double_negative"] = "1"
	}
}

func (sfe *sentimentFeatureExtractor) extractStyleFeatures(text string, features map[string]string) {
	if strings.Contains(text, "!!") {
		features["multi_exclamation"] = "1"
	}
	if strings.Contains(text, "?") {
		features["question"] = "1"
	}
	if strings.Contains(text, "...") || strings.Contains(text, "…") {
		features["ellipsis"] = "1"
	}
	for _, tok := range Tokens(text) {
		if isAllCaps(tok) && len(tok) > 2 {
			features["all_caps"] = "1"
		}
		if isElongated(tok) {
			features["elongated"] = "1"
		}
	}
}

// Helper functions

func isAllCaps(text string) bool {
	if len(text) == 0 {
		return false
	}
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			if !unicode.Is(unicode.Latin, r) {
				return false
			}
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isElongated reports a run of three or more identical runes, as in
// "จ้าาา" or "sooo".
func isElongated(text string) bool {
	count := 1
	var prev rune = -1
	for _, r := range text {
		if r == prev {
			count++
			if count >= 3 {
				return true
			}
		} else {
			count = 1
		}
		prev = r
	}
	return false
}

func isWord(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
