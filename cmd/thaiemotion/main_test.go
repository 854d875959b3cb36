package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/thaiemotion"
	"github.com/tsawler/thaiemotion/internal/config"
)

func decodeLines(t *testing.T, data string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestRunPositionalText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-mode", "multi", "ดีใจมากเลย รักเธอที่สุดเลย ❤️"},
		strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	recs := decodeLines(t, stdout.String())
	require.Len(t, recs, 1)
	assert.Equal(t, "ดีใจมากเลย รักเธอที่สุดเลย ❤️", recs[0]["text"])

	analysis, ok := recs[0][thaiemotion.AnalysisField].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "multi", analysis["analysis_mode"])
	assert.Equal(t, string(thaiemotion.Positive), analysis["sentiment"])
	assert.NotEmpty(t, analysis["run_id"])
	assert.NotContains(t, analysis, "scores")
}

func TestRunStdinFilters(t *testing.T) {
	stdin := strings.NewReader(strings.Join([]string{
		"ร้านนี้อาหารอร่อยมาก บริการดี",
		"ร้านนี้อาหารอร่อยมาก บริการดี",
		"คลิกเลย bit.ly/xyz",
		"",
	}, "\n"))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-spam", "-dedupe", "-scores"}, stdin, &stdout, &stderr)
	require.NoError(t, err)

	recs := decodeLines(t, stdout.String())
	require.Len(t, recs, 1)
	assert.Equal(t, false, recs[0][thaiemotion.SpamField])
	analysis := recs[0][thaiemotion.AnalysisField].(map[string]any)
	assert.Contains(t, analysis, "scores")
}

func TestRunJSONLFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.jsonl")
	output := filepath.Join(dir, "out.jsonl")
	require.NoError(t, os.WriteFile(input, []byte(
		"{\"id\": 1, \"message\": \"555😂🤣\"}\n{\"id\": 2, \"message\": \"โกรธมาก โมโห\"}\n"), 0o600))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-input", input, "-output", output, "-text-field", "message", "-stats"},
		strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	recs := decodeLines(t, string(data))
	require.Len(t, recs, 2)
	assert.Equal(t, 1.0, recs[0]["id"])
	first := recs[0][thaiemotion.AnalysisField].(map[string]any)
	assert.Equal(t, string(thaiemotion.LabelHumor), first["detailed_emotion"])

	var summary thaiemotion.Summary
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &summary))
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Labels[thaiemotion.LabelHumor])
}

func TestRunSentences(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-sentences", "I am so happy today. I hate this traffic!"},
		strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	recs := decodeLines(t, stdout.String())
	require.Len(t, recs, 1)
	sents, ok := recs[0]["sentences"].([]any)
	require.True(t, ok)
	assert.Len(t, sents, 2)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		args []string
		desc string
	}{
		{[]string{"-mode", "all", "x"}, "Invalid mode"},
		{[]string{"-threshold", "2", "x"}, "Invalid threshold"},
		{[]string{"-unknown"}, "Unknown flag"},
		{[]string{"-model", filepath.Join(t.TempDir(), "missing"), "x"}, "Missing model"},
		{[]string{"-input", filepath.Join(t.TempDir(), "missing.jsonl")}, "Missing input"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, strings.NewReader(""), &stdout, &stderr)
			assert.Error(t, err)
		})
	}
}

func TestOverride(t *testing.T) {
	o, fs, err := parseFlags([]string{"-model", "vader", "-threshold", "0.6"}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Analysis.Mode = "multi"
	o.override(cfg, fs)

	assert.Equal(t, "multi", cfg.Analysis.Mode, "unset flags keep the loaded value")
	assert.Equal(t, 0.6, cfg.Analysis.Threshold)
	assert.Equal(t, config.ModelVader, cfg.Model.Kind)
	assert.True(t, cfg.Analysis.UseModel)
}

func TestReadRecords(t *testing.T) {
	recs, err := readRecords(strings.NewReader("  \n"), "text")
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = readRecords(strings.NewReader("one\n\n two \n"), "body")
	require.NoError(t, err)
	assert.Equal(t, []thaiemotion.Record{{"body": "one"}, {"body": "two"}}, recs)

	recs, err = readRecords(strings.NewReader("{\"text\": \"a\"}\n"), "text")
	require.NoError(t, err)
	assert.Equal(t, []thaiemotion.Record{{"text": "a"}}, recs)
}
