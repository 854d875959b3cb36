package thaiemotion

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/bbalet/stopwords"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// emojiRanges are the codepoint ranges treated as emoji.
var emojiRanges = []struct{ lo, hi rune }{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F1E0, 0x1F1FF}, // flags
	{0x2702, 0x27B0},   // dingbats
	{0x24C2, 0x24C2},
	{0x1F200, 0x1F251}, // enclosed ideographic supplement
	{0x1F900, 0x1FAFF}, // supplemental symbols and pictographs
	{0x2600, 0x26FF},   // misc symbols
	{0x2764, 0x2764},
}

// emojiModifiers are dropped from extracted glyphs.
var emojiModifiers = []struct{ lo, hi rune }{
	{0xFE0E, 0xFE0F},   // variation selectors
	{0x200D, 0x200D},   // zero width joiner
	{0x1F3FB, 0x1F3FF}, // skin tones
}

func inRanges(r rune, ranges []struct{ lo, hi rune }) bool {
	for _, rg := range ranges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

func isEmoji(r rune) bool {
	return inRanges(r, emojiRanges)
}

// ExtractEmojis returns every emoji codepoint in text, in order. Repeated
// emoji are kept.
func ExtractEmojis(text string) []string {
	var out []string
	for _, r := range text {
		if isEmoji(r) && !inRanges(r, emojiModifiers) {
			out = append(out, string(r))
		}
	}
	return out
}

func stripEmojiModifiers(s string) string {
	return strings.Map(func(r rune) rune {
		if inRanges(r, emojiModifiers) {
			return -1
		}
		return r
	}, s)
}

// Tokens splits text on whitespace.
func Tokens(text string) []string {
	return strings.Fields(text)
}

var (
	urlRE     = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	mentionRE = regexp.MustCompile(`@\S+`)
	hashtagRE = regexp.MustCompile(`#(\S+)`)
)

var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"…", "...",
	"&rsquo;", "'")

// CleanText lower-cases text, composes it to NFC, strips URLs, mentions and
// hashtags and collapses whitespace.
func CleanText(text string) string {
	text = norm.NFC.String(text)
	text = sanitizer.Replace(text)
	text = strings.ToLower(text)
	text = urlRE.ReplaceAllString(text, " ")
	text = mentionRE.ReplaceAllString(text, " ")
	text = hashtagRE.ReplaceAllString(text, " $1 ")
	return strings.Join(strings.Fields(text), " ")
}

var (
	segmenterOnce sync.Once
	segmenter     *sentences.DefaultSentenceTokenizer
)

func sentenceTokenizer() *sentences.DefaultSentenceTokenizer {
	segmenterOnce.Do(func() {
		tok, err := english.NewSentenceTokenizer(nil)
		if err == nil {
			segmenter = tok
		}
	})
	return segmenter
}

// Sentences splits text into sentences with the punkt segmenter. Text that
// has no terminal punctuation comes back as a single sentence.
func Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	tok := sentenceTokenizer()
	if tok == nil {
		return []string{strings.TrimSpace(text)}
	}

	var out []string
	for _, s := range tok.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return out
}

// ContentTokens returns the lower-cased tokens of text with English stop
// words and bare punctuation removed. Thai tokens pass through untouched.
func ContentTokens(text string) []string {
	var out []string
	for _, tok := range Tokens(strings.ToLower(text)) {
		tok = strings.TrimFunc(tok, func(r rune) bool {
			return unicode.IsPunct(r) || (unicode.IsSymbol(r) && !isEmoji(r))
		})
		if tok == "" {
			continue
		}
		if isLatin(tok) {
			if strings.TrimSpace(stopwords.CleanString(tok, "en", false)) == "" {
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// charNGrams returns the rune n-grams of s with spaces removed.
func charNGrams(s string, n int) []string {
	runes := []rune(strings.ReplaceAll(s, " ", ""))
	if len(runes) < n {
		return nil
	}
	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}

// wordSet returns the set of whitespace tokens of the lower-cased text.
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Tokens(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

var emoticons = map[string]string{
	":)":  "smile",
	":-)": "smile",
	"=)":  "smile",
	":d":  "smile",
	"xd":  "laugh",
	":p":  "tease",
	":(":  "frown",
	":-(": "frown",
	":'(": "cry",
	"<3":  "heart",
	"-_-": "flat",
	"^^":  "smile",
	"^_^": "smile",
	"t_t": "cry",
}

// Emoticons returns the ASCII emoticons found as whitespace tokens of text,
// mapped to a coarse class.
func Emoticons(text string) []string {
	var out []string
	for _, tok := range Tokens(strings.ToLower(text)) {
		if class, ok := emoticons[tok]; ok {
			out = append(out, class)
		}
	}
	return out
}
