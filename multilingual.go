package thaiemotion

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// dominantShare is the script share above which a text counts as written
// in one language rather than mixed.
const dominantShare = 0.7

// LanguageDetector classifies text by the script its letters are written in.
type LanguageDetector struct {
	englishRE *regexp.Regexp
}

// NewLanguageDetector creates a new language detector
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		englishRE: regexp.MustCompile(`\b(the|and|that|have|for|not|with|you|this|but|it|is|so|just|what)\b`),
	}
}

// DetectLanguage returns the dominant language of text and the share of
// letters written in it. Digits, emoji and punctuation are ignored.
func (ld *LanguageDetector) DetectLanguage(text string) (Language, float64) {
	var thai, latin, other int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Thai, r):
			// Thai vowel and tone marks are not letters, count them anyway.
			if unicode.IsLetter(r) || unicode.IsMark(r) {
				thai++
			}
		case unicode.IsLetter(r) && r <= unicode.MaxLatin1:
			latin++
		case unicode.IsLetter(r):
			other++
		}
	}

	total := thai + latin + other
	if total == 0 {
		return Unknown, 0
	}

	thaiShare := float64(thai) / float64(total)
	latinShare := float64(latin) / float64(total)

	// A few English function words tip short Latin-heavy texts over.
	if latin > 0 && ld.englishRE.MatchString(strings.ToLower(text)) {
		latinShare += 0.05
	}

	switch {
	case thaiShare >= dominantShare:
		return Thai, thaiShare
	case latinShare >= dominantShare:
		return English, math.Min(latinShare, 1)
	case thai > 0 && latin > 0:
		return Mixed, math.Min(math.Max(thaiShare, latinShare), 1)
	default:
		return Unknown, math.Min(math.Max(thaiShare, latinShare), 1)
	}
}

// IsMultilingualSupported reports whether lang is one the rule engine has
// patterns for.
func IsMultilingualSupported(lang Language) bool {
	for _, supported := range GetSupportedLanguages() {
		if lang == supported {
			return true
		}
	}
	return false
}

// GetSupportedLanguages returns the languages the rule engine covers.
func GetSupportedLanguages() []Language {
	return []Language{Thai, English, Mixed}
}

// FormatLanguageError wraps ErrUnsupportedLanguage for a model that cannot
// score lang.
func FormatLanguageError(model string, lang Language) error {
	return fmt.Errorf("%w: %s cannot score %s text", ErrUnsupportedLanguage, model, lang)
}
