package thaiemotion

import (
	"fmt"
	"strings"
)

// TrainingFormat selects the layout of exported training examples.
type TrainingFormat string

const (
	// FormatClassification produces label ids or multi-hot vectors for
	// encoder classifiers.
	FormatClassification TrainingFormat = "classification"
	// FormatInstruction produces instruction/input/output triples for
	// instruction tuning.
	FormatInstruction TrainingFormat = "instruction"
)

const (
	singleLabelInstruction = "วิเคราะห์อารมณ์ของข้อความนี้และเลือกอารมณ์ที่เหมาะสมที่สุด"
	multiLabelInstruction  = "วิเคราะห์อารมณ์ของข้อความนี้และเลือกอารมณ์ที่เหมาะสม (สามารถเลือกได้หลายอารมณ์)"
)

// TrainingExample is one exported training record. Which fields are set
// depends on the format and on whether it carries one label or several.
type TrainingExample struct {
	Text        string  `json:"text,omitempty"`
	Label       Label   `json:"label,omitempty"`
	LabelID     *int    `json:"label_id,omitempty"`
	Labels      []Label `json:"labels,omitempty"`
	LabelVector []int   `json:"label_vector,omitempty"`

	Instruction string `json:"instruction,omitempty"`
	Input       string `json:"input,omitempty"`
	Output      string `json:"output,omitempty"`
}

// FormatTrainingRecord formats text and its labels against the built-in
// catalog.
func FormatTrainingRecord(text string, labels []Label, format TrainingFormat) (TrainingExample, error) {
	return defaultTable.FormatTrainingRecord(text, labels, format)
}

// FormatTrainingRecord formats text and its labels as a training example.
// A single label produces the single-label layout; several labels produce
// the multi-label one. Label ids and vector positions follow catalog order.
func (pt *PatternTable) FormatTrainingRecord(text string, labels []Label, format TrainingFormat) (TrainingExample, error) {
	if len(labels) == 0 {
		return TrainingExample{}, fmt.Errorf("%w: no labels for %q", ErrUnsupportedFormat, text)
	}
	for _, l := range labels {
		if pt.Position(l) < 0 {
			return TrainingExample{}, fmt.Errorf("%w: unknown label %q", ErrInvalidPatternTable, l)
		}
	}

	switch format {
	case FormatClassification:
		if len(labels) == 1 {
			id := pt.Position(labels[0])
			return TrainingExample{Text: text, Label: labels[0], LabelID: &id}, nil
		}
		vec := make([]int, len(pt.emotions))
		for _, l := range labels {
			vec[pt.Position(l)] = 1
		}
		return TrainingExample{Text: text, Labels: labels, LabelVector: vec}, nil

	case FormatInstruction:
		if len(labels) == 1 {
			return TrainingExample{
				Instruction: singleLabelInstruction,
				Input:       text,
				Output:      string(labels[0]),
			}, nil
		}
		names := make([]string, len(labels))
		for i, l := range labels {
			names[i] = string(l)
		}
		return TrainingExample{
			Instruction: multiLabelInstruction,
			Input:       text,
			Output:      strings.Join(names, ", "),
		}, nil
	}
	return TrainingExample{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
