package thaiemotion

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// PatternFile is the JSON layout of an external pattern file.
//
//	{
//	  "emotions": [
//	    {"label": "ดีใจ", "keywords": ["ปังมาก"], "emojis": ["🎉"]},
//	    {"label": "ง่วง", "group": "Others", "keywords": ["ง่วง"]}
//	  ],
//	  "intensity": {"high": ["โคตรๆ"]}
//	}
type PatternFile struct {
	Emotions  []PatternFileEntry  `json:"emotions"`
	Intensity map[string][]string `json:"intensity"`
}

// PatternFileEntry extends a label, or adds one when Group is set and the
// label is not in the catalog yet.
type PatternFileEntry struct {
	PatternDefinition
	Group Group `json:"group,omitempty"`
}

// LoadPatternFile reads a pattern file and merges it into a copy of the
// built-in catalog.
func LoadPatternFile(path string) (*PatternTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading pattern file: %w", err)
	}
	defer f.Close()

	pt, err := defaultTable.Merge(f)
	if err != nil {
		return nil, fmt.Errorf("pattern file %s: %w", path, err)
	}
	return pt, nil
}

// Merge decodes a PatternFile from r and returns a new table holding pt's
// patterns plus the extras. Keywords, regexes and emojis already present
// are not repeated. pt is unchanged.
func (pt *PatternTable) Merge(r io.Reader) (*PatternTable, error) {
	var ext PatternFile
	if err := json.NewDecoder(r).Decode(&ext); err != nil {
		return nil, fmt.Errorf("error parsing pattern JSON: %w", err)
	}

	defs := pt.Definitions()
	groups := pt.Memberships()
	index := make(map[Label]int, len(defs))
	groupOf := make(map[Label]Group, len(defs))
	for i, d := range defs {
		index[d.Label] = i
		groupOf[d.Label] = pt.labelGroup[d.Label]
	}

	for _, e := range ext.Emotions {
		if i, ok := index[e.Label]; ok {
			if e.Group != "" && e.Group != groupOf[e.Label] {
				return nil, fmt.Errorf("%w: label %q cannot move from %s to %s",
					ErrInvalidPatternTable, e.Label, groupOf[e.Label], e.Group)
			}
			defs[i].Keywords = appendNew(defs[i].Keywords, e.Keywords...)
			defs[i].Patterns = appendNew(defs[i].Patterns, e.Patterns...)
			defs[i].Emojis = appendNew(defs[i].Emojis, e.Emojis...)
			continue
		}

		if e.Group == "" {
			return nil, fmt.Errorf("%w: new label %q has no group", ErrInvalidPatternTable, e.Label)
		}
		index[e.Label] = len(defs)
		groupOf[e.Label] = e.Group
		defs = append(defs, e.PatternDefinition)
		placed := false
		for gi := range groups {
			if groups[gi].Group == e.Group {
				groups[gi].Labels = append(groups[gi].Labels, e.Label)
				placed = true
			}
		}
		if !placed {
			return nil, fmt.Errorf("%w: unknown group %q for label %q", ErrInvalidPatternTable, e.Group, e.Label)
		}
	}

	tiers := make([]IntensityTier, len(pt.intensity))
	copy(tiers, pt.intensity)
	for name, words := range ext.Intensity {
		found := false
		for i := range tiers {
			if tiers[i].Name == name {
				tiers[i].Words = appendNew(append([]string(nil), tiers[i].Words...), words...)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown intensity tier %q", ErrInvalidPatternTable, name)
		}
	}

	return NewPatternTable(defs, groups, tiers)
}

func appendNew(dst []string, items ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range items {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		dst = append(dst, s)
	}
	return dst
}
