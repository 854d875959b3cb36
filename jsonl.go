package thaiemotion

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// OutputRecord is the flat, serializable form of an AnalysisResult.
// Single-mode results fill the singular label fields, multi-mode results
// the plural ones.
type OutputRecord struct {
	RunID            string            `json:"run_id,omitempty"`
	Text             string            `json:"text"`
	Sentiment        Sentiment         `json:"sentiment"`
	Confidence       float64           `json:"confidence"`
	SentimentScore   float64           `json:"sentiment_score"`
	DetailedEmotion  Label             `json:"detailed_emotion,omitempty"`
	EmotionGroup     Group             `json:"emotion_group,omitempty"`
	DetailedEmotions []Label           `json:"detailed_emotions,omitempty"`
	EmotionGroups    []Group           `json:"emotion_groups,omitempty"`
	Context          ContextAnalysis   `json:"context"`
	IsSarcastic      bool              `json:"is_sarcastic"`
	SarcasmReason    string            `json:"sarcasm_reason,omitempty"`
	Language         Language          `json:"language,omitempty"`
	Mode             Mode              `json:"analysis_mode"`
	Threshold        float64           `json:"threshold,omitempty"`
	ModelUsed        string            `json:"model_used"`
	FallbackReason   string            `json:"fallback_reason,omitempty"`
	Scores           map[Label]float64 `json:"scores,omitempty"`
}

// Record flattens r. Normalized scores are included when includeScores is
// set.
func (r *AnalysisResult) Record(includeScores bool) OutputRecord {
	out := OutputRecord{
		Text:           r.Text,
		Sentiment:      r.Sentiment,
		Confidence:     r.Confidence,
		SentimentScore: r.SentimentScore,
		Context:        r.Context,
		IsSarcastic:    r.IsSarcastic,
		SarcasmReason:  r.SarcasmReason,
		Language:       r.Language,
		Mode:           r.Mode,
		ModelUsed:      r.ModelUsed,
		FallbackReason: r.FallbackReason,
	}
	if r.Mode == Multi {
		out.DetailedEmotions = r.SelectedLabels
		out.EmotionGroups = r.Groups
		out.Threshold = r.Threshold
	} else {
		out.DetailedEmotion = r.Label()
		out.EmotionGroup = r.Group()
	}
	if includeScores {
		out.Scores = r.NormalizedScores
	}
	return out
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encoding item %d: %w", i, err)
		}
	}
	return nil
}

// maxLineSize bounds a single JSONL line.
const maxLineSize = 4 << 20

// ReadJSONL decodes one JSON object per line. Blank lines are skipped.
func ReadJSONL(r io.Reader) ([]Record, error) {
	var records []Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
