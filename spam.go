package thaiemotion

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Spam heuristics.
const (
	maxSpecialCharRatio = 0.3
	maxRepeatedRunes    = 5
	minSpamFreeLength   = 5
	maxSpamFreeLength   = 5000

	// DefaultDedupeThreshold is the word-set Jaccard similarity at which two
	// texts count as duplicates.
	DefaultDedupeThreshold = 0.85
)

// SpamField is the record key FilterSpam marks kept records with.
const SpamField = "is_spam"

var spamPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"call to action", regexp.MustCompile(`(?i)ดูได้ที่|click here|คลิกเลย`)},
	{"contact", regexp.MustCompile(`(?i)line\s*id|line\s*@|ไลน์`)},
	{"phone number", regexp.MustCompile(`\d{3,}.*\d{3,}`)},
	{"link", regexp.MustCompile(`(?i)www\.|\.com|\.net|http|bit\.ly`)},
	{"product", regexp.MustCompile(`ผลิตภัณฑ์|สนใจติดต่อ|สั่งซื้อ`)},
	{"price", regexp.MustCompile(`ราคา.*บาท|บาท.*ราคา`)},
	{"promotion", regexp.MustCompile(`(?i)promotion|โปรโมชั่น|ส่วนลด`)},
	{"membership", regexp.MustCompile(`(?i)vip|premium|member`)},
	{"subscribe", regexp.MustCompile(`(?i)subscribe|สมัครสมาชิก`)},
	{"free offer", regexp.MustCompile(`(?i)free|ฟรี`)},
	{"gambling", regexp.MustCompile(`(?i)casino|เว็บพนัน|บาคาร่า|สล็อต`)},
	{"pharmacy", regexp.MustCompile(`(?i)viagra|ยาเพิ่ม`)},
	{"diet", regexp.MustCompile(`(?i)weight.*loss|ลดน้ำหนัก|ลดความอ้วน`)},
}

const specialChars = `!@#$%^&*()_+=[]{};:"/\|,.<>?~`

// IsSpam applies the spam heuristics to text and returns the first one
// that fires.
func IsSpam(text string) (bool, string) {
	text = strings.ToLower(text)
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return true, "empty text"
	}

	for _, p := range spamPatterns {
		if p.re.MatchString(text) {
			return true, "matched spam pattern: " + p.name
		}
	}

	special := 0
	for _, r := range text {
		if unicode.IsDigit(r) || strings.ContainsRune(specialChars, r) {
			special++
		}
	}
	if ratio := float64(special) / float64(n); ratio > maxSpecialCharRatio {
		return true, fmt.Sprintf("special character ratio %.2f", ratio)
	}

	if longestRun(text) >= maxRepeatedRunes {
		return true, "repeated character"
	}

	if n < minSpamFreeLength {
		return true, "too short"
	}
	if n > maxSpamFreeLength {
		return true, "too long"
	}
	return false, ""
}

// longestRun returns the length of the longest run of one repeated rune.
func longestRun(text string) int {
	best, run := 0, 0
	var prev rune = -1
	for _, r := range text {
		if r == prev {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prev = r
	}
	return best
}

// FilterSpam drops spam records and records with no text under field. Kept
// records are copied and marked with SpamField=false.
func FilterSpam(records []Record, field string) []Record {
	var out []Record
	for _, rec := range records {
		text := RecordText(rec, field)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if spam, _ := IsSpam(text); spam {
			continue
		}
		kept := make(Record, len(rec)+1)
		for k, v := range rec {
			kept[k] = v
		}
		kept[SpamField] = false
		out = append(out, kept)
	}
	return out
}

// Deduplicate drops records whose text under field is empty, an exact
// repeat of an earlier kept text (ignoring case and surrounding space), or
// at least threshold similar to a kept text by word-set Jaccard index.
func Deduplicate(records []Record, field string, threshold float64) []Record {
	var out []Record
	seen := make(map[string]bool)
	var keptSets []map[string]struct{}

	for _, rec := range records {
		text := strings.ToLower(strings.TrimSpace(RecordText(rec, field)))
		if text == "" || seen[text] {
			continue
		}
		words := wordSet(text)
		duplicate := false
		for _, other := range keptSets {
			if jaccard(words, other) >= threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		seen[text] = true
		keptSets = append(keptSets, words)
		out = append(out, rec)
	}
	return out
}

// jaccard returns |a ∩ b| / |a ∪ b|, or 0 when either set is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
