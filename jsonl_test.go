package thaiemotion

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSingle(t *testing.T) {
	a := newTestAnalyzer(t)
	r, err := a.Analyze("555😂🤣", Single, DefaultThreshold)
	require.NoError(t, err)

	rec := r.Record(false)
	assert.Equal(t, LabelHumor, rec.DetailedEmotion)
	assert.Equal(t, GroupOthers, rec.EmotionGroup)
	assert.Nil(t, rec.DetailedEmotions)
	assert.Nil(t, rec.Scores)
	assert.Zero(t, rec.Threshold)

	withScores := r.Record(true)
	assert.Equal(t, r.NormalizedScores, withScores.Scores)
}

func TestRecordJSONFields(t *testing.T) {
	a := newTestAnalyzer(t)
	r, err := a.Analyze("งานนี้สุดยอดครับ... ถ้าชอบความล้มเหลว", Multi, 0.5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, []OutputRecord{r.Record(true)}))

	var fields map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	for _, key := range []string{
		"text", "sentiment", "confidence", "sentiment_score", "detailed_emotions",
		"emotion_groups", "context", "is_sarcastic", "sarcasm_reason", "analysis_mode",
		"threshold", "model_used", "scores",
	} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "detailed_emotion")
	assert.Equal(t, "multi", fields["analysis_mode"])
	assert.Equal(t, true, fields["is_sarcastic"])
	assert.NotContains(t, buf.String(), `\u0e`, "Thai is written unescaped")
}

func TestWriteReadJSONL(t *testing.T) {
	records := []Record{
		{"text": "ดีใจ", "n": 1.0},
		{"text": "<b>&</b>"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, records))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "<b>&</b>")

	got, err := ReadJSONL(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadJSONL(t *testing.T) {
	got, err := ReadJSONL(strings.NewReader("{\"text\":\"a\"}\n\n  \n{\"text\":\"b\"}\n"))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = ReadJSONL(strings.NewReader("{\"text\":\"a\"}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
