package thaiemotion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMode is returned when the analysis mode is neither single nor multi.
	ErrInvalidMode = errors.New("invalid analysis mode")

	// ErrInvalidThreshold is returned when a multi-label threshold lies outside [0, 1].
	ErrInvalidThreshold = errors.New("invalid multi-label threshold")

	// ErrInvalidPatternTable is returned when the pattern tables break the
	// label/group partition.
	ErrInvalidPatternTable = errors.New("invalid pattern table")

	// ErrUnsupportedFormat is returned for unknown training export formats.
	ErrUnsupportedFormat = errors.New("unsupported training data format")

	// ErrUnsupportedLanguage is returned by a Model that cannot score the given text.
	ErrUnsupportedLanguage = errors.New("unsupported language for model")
)

// Label is a fine-grained emotion label. Values are the Thai label strings
// used in persisted records.
type Label string

// Positive labels.
const (
	LabelJoy         Label = "ดีใจ"
	LabelLike        Label = "ชอบ"
	LabelTouched     Label = "ซึ้งใจ"
	LabelSatisfied   Label = "พอใจ"
	LabelLove        Label = "รัก"
	LabelEncouraging Label = "ให้กำลังใจ"
	LabelRelieved    Label = "สบายใจ"
)

// Negative labels.
const (
	LabelAnger         Label = "โกรธ"
	LabelSad           Label = "เสียใจ"
	LabelDisappointed  Label = "ผิดหวัง"
	LabelAnnoyed       Label = "รำคาญ"
	LabelHate          Label = "เกลียด"
	LabelFear          Label = "กลัว"
	LabelUncomfortable Label = "อึดอัด"
	LabelShocked       Label = "ตกใจ"
	LabelDissatisfied  Label = "ไม่พอใจ"
)

// Neutral labels.
const (
	LabelNeutral     Label = "เฉย ๆ"
	LabelIndifferent Label = "ไม่รู้สึกอะไร"
	LabelInformative Label = "ข้อมูลข่าวสาร"
	LabelCurious     Label = "อยากรู้อยากเห็น"
	LabelHopeful     Label = "คาดหวัง"
)

// Others labels.
const (
	LabelSarcasm  Label = "ประชด"
	LabelHumor    Label = "ขำขัน"
	LabelSardonic Label = "เสียดสี"
	LabelConfused Label = "สับสน"
	LabelMisc     Label = "อื่นๆ"
)

// Group is a coarse bucket every label belongs to.
type Group string

const (
	GroupPositive Group = "Positive"
	GroupNegative Group = "Negative"
	GroupNeutral  Group = "Neutral"
	GroupOthers   Group = "Others"
)

// groupOrder is the fixed order groups are reported in.
var groupOrder = []Group{GroupPositive, GroupNegative, GroupNeutral, GroupOthers}

// Sentiment is the three-way coarse summary of an analysis.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Fixed sentiment scores per coarse sentiment. They do not depend on the
// magnitude of the emotion scores.
const (
	PositiveScore = 0.7
	NegativeScore = -0.7
	NeutralScore  = 0.0
)

// Score returns the fixed numeric score for s.
func (s Sentiment) Score() float64 {
	switch s {
	case Positive:
		return PositiveScore
	case Negative:
		return NegativeScore
	default:
		return NeutralScore
	}
}

// Mode selects single-label or multi-label output.
type Mode string

const (
	Single Mode = "single"
	Multi  Mode = "multi"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Single, Multi:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// DefaultThreshold is the multi-label cutoff used when none is configured.
const DefaultThreshold = 0.3

// Language is the dominant script of a text.
type Language string

const (
	Thai    Language = "th"
	English Language = "en"
	Mixed   Language = "mixed"
	Unknown Language = "unknown"
)

// SarcasmResult is the output of the sarcasm detector.
type SarcasmResult struct {
	IsSarcastic bool   `json:"is_sarcastic"`
	Reason      string `json:"reason,omitempty"`
}

// ContextAnalysis describes the register and setting a text was written in.
type ContextAnalysis struct {
	PrimaryContext    string         `json:"primary_context"`
	AllContexts       map[string]int `json:"all_contexts"`
	FormalityLevel    string         `json:"formality_level"`
	SocialSetting     string         `json:"social_setting"`
	EmotionalTone     string         `json:"emotional_tone"`
	Generation        string         `json:"generation"`
	Profession        string         `json:"profession"`
	ContextConfidence float64        `json:"context_confidence"`
}

// AnalysisResult is the judgment produced for one text. It is built fresh
// per call and never mutated afterwards.
type AnalysisResult struct {
	Text             string
	RawScores        map[Label]float64
	NormalizedScores map[Label]float64
	SelectedLabels   []Label
	Groups           []Group
	Sentiment        Sentiment
	SentimentScore   float64
	Confidence       float64
	Context          ContextAnalysis
	IsSarcastic      bool
	SarcasmReason    string
	Mode             Mode
	Threshold        float64
	Emojis           []string
	Language         Language

	// ModelUsed names the component that decided Sentiment and
	// SentimentScore: "rules" or the name of the external model.
	ModelUsed string

	// FallbackReason is set when an external model was configured but
	// failed, so the rule-based result was kept.
	FallbackReason string
}

// Label returns the first selected label.
func (r *AnalysisResult) Label() Label {
	if len(r.SelectedLabels) == 0 {
		return LabelNeutral
	}
	return r.SelectedLabels[0]
}

// Group returns the first reported group.
func (r *AnalysisResult) Group() Group {
	if len(r.Groups) == 0 {
		return GroupNeutral
	}
	return r.Groups[0]
}
