package thaiemotion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extraPatterns = `{
  "emotions": [
    {"label": "ดีใจ", "keywords": ["ปังมาก", "ดีใจ"], "emojis": ["🎉"]},
    {"label": "ง่วง", "group": "Others", "keywords": ["ง่วงนอน"]}
  ],
  "intensity": {"high": ["โคตรๆ"]}
}`

func TestMerge(t *testing.T) {
	pt, err := DefaultPatternTable().Merge(strings.NewReader(extraPatterns))
	require.NoError(t, err)

	labels := pt.Labels()
	require.Len(t, labels, 27)
	assert.Equal(t, Label("ง่วง"), labels[26])
	assert.Equal(t, 26, pt.Position("ง่วง"))
	group, ok := pt.GroupOf("ง่วง")
	assert.True(t, ok)
	assert.Equal(t, GroupOthers, group)

	joy := pt.Emotions()[pt.Position(LabelJoy)]
	assert.Contains(t, joy.Keywords, "ปังมาก")
	assert.Contains(t, joy.Emojis, "🎉")
	count := 0
	for _, kw := range joy.Keywords {
		if kw == "ดีใจ" {
			count++
		}
	}
	assert.Equal(t, 1, count, "existing keywords are not repeated")

	assert.Contains(t, pt.IntensityTiers()[0].Words, "โคตรๆ")
	assert.NotContains(t, DefaultPatternTable().IntensityTiers()[0].Words, "โคตรๆ")
	assert.Len(t, DefaultPatternTable().Labels(), 26)
}

func TestMergeRejects(t *testing.T) {
	tests := []struct {
		input string
		desc  string
	}{
		{`{"emotions": [{"label": "รัก", "group": "Negative"}]}`, "Label changes group"},
		{`{"emotions": [{"label": "ง่วง", "keywords": ["ง่วง"]}]}`, "New label without group"},
		{`{"emotions": [{"label": "ง่วง", "group": "Sleepy"}]}`, "Unknown group"},
		{`{"intensity": {"extreme": ["สุดๆๆ"]}}`, "Unknown tier"},
		{`{"emotions": [{"label": "รัก", "patterns": ["(ab"]}]}`, "Bad regex"},
		{`{"emotions": [{"label": "ง่วง", "group": "Others"}, {"label": "ง่วง", "group": "Negative"}]}`, "New label moves group"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := DefaultPatternTable().Merge(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidPatternTable)
		})
	}

	_, err := DefaultPatternTable().Merge(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestMergeRepeatedNewLabel(t *testing.T) {
	tests := []struct {
		input string
		desc  string
	}{
		{`{"emotions": [
			{"label": "ง่วง", "group": "Others", "keywords": ["ง่วงนอน"]},
			{"label": "ง่วง", "group": "Others", "keywords": ["หาวนอน", "ง่วงนอน"]}
		]}`, "Same group repeated"},
		{`{"emotions": [
			{"label": "ง่วง", "group": "Others", "keywords": ["ง่วงนอน"]},
			{"label": "ง่วง", "keywords": ["หาวนอน"]}
		]}`, "Group given once"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			pt, err := DefaultPatternTable().Merge(strings.NewReader(tt.input))
			require.NoError(t, err)

			require.Len(t, pt.Labels(), 27)
			group, ok := pt.GroupOf("ง่วง")
			assert.True(t, ok)
			assert.Equal(t, GroupOthers, group)
			assert.Equal(t, []string{"ง่วงนอน", "หาวนอน"}, pt.Emotions()[pt.Position("ง่วง")].Keywords)
			assert.Equal(t, []Label{"ง่วง"}, pt.LabelsIn(GroupOthers)[len(pt.LabelsIn(GroupOthers))-1:])
		})
	}
}

func TestLoadPatternFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	require.NoError(t, os.WriteFile(path, []byte(extraPatterns), 0o600))

	pt, err := LoadPatternFile(path)
	require.NoError(t, err)

	a := newTestAnalyzer(t, WithPatternTable(pt))
	r, err := a.Analyze("ง่วงนอน", Single, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, Label("ง่วง"), r.Label())
	assert.Equal(t, GroupOthers, r.Group())
	assert.Equal(t, Neutral, r.Sentiment)

	_, err = LoadPatternFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
