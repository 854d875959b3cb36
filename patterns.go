package thaiemotion

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternDefinition is the uncompiled form of an emotion pattern. It is the
// shape used both by the built-in catalog and by external pattern files.
type PatternDefinition struct {
	Label      Label      `json:"label"`
	Keywords   []string   `json:"keywords"`
	Patterns   []string   `json:"patterns"`
	Emojis     []string   `json:"emojis"`
	ScoreRange [2]float64 `json:"score_range"`
}

// EmotionPattern describes how one label is recognised in text.
type EmotionPattern struct {
	Label      Label
	Group      Group
	Keywords   []string
	Patterns   []*regexp.Regexp
	Emojis     []string
	ScoreRange [2]float64 // advisory only
}

// GroupMembership lists the labels that belong to a group.
type GroupMembership struct {
	Group  Group
	Labels []Label
}

// IntensityTier is a set of intensity adverbs and the bonus each hit adds.
type IntensityTier struct {
	Name  string
	Bonus float64
	Words []string
}

// PatternTable holds the compiled emotion catalog, the label to group
// partition and the intensity tiers. A PatternTable is immutable once built.
type PatternTable struct {
	emotions   []EmotionPattern
	index      map[Label]int
	labelGroup map[Label]Group
	intensity  []IntensityTier
}

// requiredLabels are referenced directly by the scorer and the selector.
var requiredLabels = []Label{
	LabelNeutral, LabelMisc, LabelAnger, LabelHate, LabelDissatisfied,
	LabelSarcasm, LabelSardonic, LabelAnnoyed, LabelHumor, LabelLove,
}

// NewPatternTable compiles defs and checks that groups partition them. The
// order of defs is the catalog order used for every tie-break.
func NewPatternTable(defs []PatternDefinition, groups []GroupMembership, tiers []IntensityTier) (*PatternTable, error) {
	pt := &PatternTable{
		index:      make(map[Label]int, len(defs)),
		labelGroup: make(map[Label]Group, len(defs)),
		intensity:  tiers,
	}

	for _, gm := range groups {
		if !validGroup(gm.Group) {
			return nil, fmt.Errorf("%w: unknown group %q", ErrInvalidPatternTable, gm.Group)
		}
		for _, label := range gm.Labels {
			if prev, dup := pt.labelGroup[label]; dup {
				return nil, fmt.Errorf("%w: label %q is in both %s and %s",
					ErrInvalidPatternTable, label, prev, gm.Group)
			}
			pt.labelGroup[label] = gm.Group
		}
	}

	for _, def := range defs {
		if _, dup := pt.index[def.Label]; dup {
			return nil, fmt.Errorf("%w: label %q defined twice", ErrInvalidPatternTable, def.Label)
		}
		group, ok := pt.labelGroup[def.Label]
		if !ok {
			return nil, fmt.Errorf("%w: label %q has no group", ErrInvalidPatternTable, def.Label)
		}
		ep, err := compilePattern(def, group)
		if err != nil {
			return nil, err
		}
		pt.index[def.Label] = len(pt.emotions)
		pt.emotions = append(pt.emotions, ep)
	}

	for label := range pt.labelGroup {
		if _, ok := pt.index[label]; !ok {
			return nil, fmt.Errorf("%w: label %q is grouped but has no pattern entry",
				ErrInvalidPatternTable, label)
		}
	}
	for _, label := range requiredLabels {
		if _, ok := pt.index[label]; !ok {
			return nil, fmt.Errorf("%w: required label %q missing", ErrInvalidPatternTable, label)
		}
	}
	return pt, nil
}

func compilePattern(def PatternDefinition, group Group) (EmotionPattern, error) {
	ep := EmotionPattern{
		Label:      def.Label,
		Group:      group,
		Keywords:   lowerAll(def.Keywords),
		Emojis:     make([]string, 0, len(def.Emojis)),
		ScoreRange: def.ScoreRange,
	}
	for _, expr := range def.Patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return EmotionPattern{}, fmt.Errorf("%w: label %q pattern %q: %v",
				ErrInvalidPatternTable, def.Label, expr, err)
		}
		ep.Patterns = append(ep.Patterns, re)
	}
	for _, e := range def.Emojis {
		if e = stripEmojiModifiers(e); e != "" {
			ep.Emojis = append(ep.Emojis, e)
		}
	}
	return ep, nil
}

func validGroup(g Group) bool {
	for _, known := range groupOrder {
		if g == known {
			return true
		}
	}
	return false
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Labels returns every label in catalog order.
func (pt *PatternTable) Labels() []Label {
	labels := make([]Label, len(pt.emotions))
	for i, ep := range pt.emotions {
		labels[i] = ep.Label
	}
	return labels
}

// Emotions returns the compiled patterns in catalog order.
func (pt *PatternTable) Emotions() []EmotionPattern {
	return pt.emotions
}

// GroupOf returns the group label belongs to.
func (pt *PatternTable) GroupOf(label Label) (Group, bool) {
	g, ok := pt.labelGroup[label]
	return g, ok
}

// LabelsIn returns the labels of group in catalog order.
func (pt *PatternTable) LabelsIn(group Group) []Label {
	var labels []Label
	for _, ep := range pt.emotions {
		if ep.Group == group {
			labels = append(labels, ep.Label)
		}
	}
	return labels
}

// Position returns the catalog index of label, or -1.
func (pt *PatternTable) Position(label Label) int {
	if i, ok := pt.index[label]; ok {
		return i
	}
	return -1
}

// IntensityTiers returns the intensity tiers.
func (pt *PatternTable) IntensityTiers() []IntensityTier {
	return pt.intensity
}

// Definitions returns the uncompiled form of the table, in catalog order.
func (pt *PatternTable) Definitions() []PatternDefinition {
	defs := make([]PatternDefinition, len(pt.emotions))
	for i, ep := range pt.emotions {
		patterns := make([]string, len(ep.Patterns))
		for j, re := range ep.Patterns {
			patterns[j] = re.String()
		}
		defs[i] = PatternDefinition{
			Label:      ep.Label,
			Keywords:   append([]string(nil), ep.Keywords...),
			Patterns:   patterns,
			Emojis:     append([]string(nil), ep.Emojis...),
			ScoreRange: ep.ScoreRange,
		}
	}
	return defs
}

// Memberships returns the group partition in group order.
func (pt *PatternTable) Memberships() []GroupMembership {
	out := make([]GroupMembership, 0, len(groupOrder))
	for _, g := range groupOrder {
		out = append(out, GroupMembership{Group: g, Labels: pt.LabelsIn(g)})
	}
	return out
}

var defaultTable = mustTable(NewPatternTable(defaultDefinitions, defaultGroups, defaultIntensity))

func mustTable(pt *PatternTable, err error) *PatternTable {
	if err != nil {
		panic(err)
	}
	return pt
}

// DefaultPatternTable returns the built-in catalog.
func DefaultPatternTable() *PatternTable {
	return defaultTable
}

var defaultGroups = []GroupMembership{
	{GroupPositive, []Label{LabelJoy, LabelLike, LabelTouched, LabelSatisfied, LabelLove, LabelEncouraging, LabelRelieved}},
	{GroupNegative, []Label{LabelAnger, LabelSad, LabelDisappointed, LabelAnnoyed, LabelHate, LabelFear, LabelUncomfortable, LabelShocked, LabelDissatisfied}},
	{GroupNeutral, []Label{LabelNeutral, LabelIndifferent, LabelInformative, LabelCurious, LabelHopeful}},
	{GroupOthers, []Label{LabelSarcasm, LabelHumor, LabelSardonic, LabelConfused, LabelMisc}},
}

var defaultIntensity = []IntensityTier{
	{Name: "high", Bonus: 0.5, Words: []string{"มาก", "เลย", "สุด", "โคตร", "จริงๆ", "มากๆ", "สุดๆ", "หนัก", "แรง"}},
	{Name: "medium", Bonus: 0.2, Words: []string{"ค่อนข้าง", "พอสมควร", "เยอะ"}},
	{Name: "low", Bonus: 0.1, Words: []string{"นิดหน่อย", "เล็กน้อย", "นิดๆ"}},
}

// maxIntensityBonus caps the summed intensity bonus, so intensity can at
// most double a score.
const maxIntensityBonus = 1.0

var defaultDefinitions = []PatternDefinition{
	// Positive
	{
		Label:      LabelJoy,
		Keywords:   []string{"ดีใจ", "มีความสุข", "แฮปปี้", "ปลื้ม", "ยินดี", "เย้", "เจ๋ง", "ปลาบปลื้ม", "ชื่นใจ", "สมหวัง", "สุขใจ", "ฟิน", "สุดยอด", "ยอดเยี่ยม", "เริ่ด", "happy", "joyful", "delighted", "amazing", "wonderful", "fantastic", "excellent"},
		Patterns:   []string{`ดี\s*ใจ`, `ปลื้ม`, `แฮปปี้`, `เย้+`},
		Emojis:     []string{"😊", "😄", "🤗", "😍", "🥰", "😘", "😆", "🤩"},
		ScoreRange: [2]float64{0.6, 1.0},
	},
	{
		Label:      LabelLike,
		Keywords:   []string{"ชอบ", "ถูกใจ", "โปรด", "สนใจ", "โดนใจ", "ชื่นชอบ", "ติดใจ", "like", "enjoy"},
		Patterns:   []string{`ชอบ.*มาก`, `ถูกใจ`, `โดนใจ`},
		Emojis:     []string{"❤️", "💕", "😍", "🥰", "😘", "💖", "💝"},
		ScoreRange: [2]float64{0.5, 0.9},
	},
	{
		Label:      LabelTouched,
		Keywords:   []string{"ซึ้ง", "ซึ้งใจ", "น้ำตาซึม", "ประทับใจ", "ซาบซึ้ง", "ตื้นตัน", "กินใจ", "ขอบคุณ", "ขอบใจ", "touched", "grateful", "thankful", "appreciate"},
		Patterns:   []string{`ซึ้ง.*ใจ`, `ประทับใจ`, `น้ำตา.*ซึม`, `ซาบซึ้ง`},
		Emojis:     []string{"🥺", "🤧", "💞", "🙏"},
		ScoreRange: [2]float64{0.4, 0.8},
	},
	{
		Label:      LabelSatisfied,
		Keywords:   []string{"พอใจ", "โอเค", "ใช้ได้", "เรียบร้อย", "ไม่ติด", "satisfied", "okay"},
		Patterns:   []string{`พอใจ`, `ใช้ได้`, `เรียบร้อย`},
		Emojis:     []string{"👍", "👌", "😌", "🙂"},
		ScoreRange: [2]float64{0.2, 0.6},
	},
	{
		Label:      LabelLove,
		Keywords:   []string{"รัก", "หลงรัก", "เลิฟ", "love", "ฮัก", "รักมาก", "รักที่สุด", "คิดถึง", "เอ็นดู", "adore"},
		Patterns:   []string{`รัก.*มาก`, `หลงรัก`, `เลิฟ`, `love`, `ฮัก`},
		Emojis:     []string{"❤️", "💕", "💖", "💝", "😍", "🥰", "😘", "💗", "💓", "💘", "💙", "💚", "💛", "💜", "🤍", "🩵", "😻"},
		ScoreRange: [2]float64{0.7, 1.0},
	},
	{
		Label:      LabelEncouraging,
		Keywords:   []string{"สู้ๆ", "สู้ต่อไป", "อย่ายอมแพ้", "เอาใจช่วย", "เชียร์", "เป็นกำลังใจ", "ให้กำลังใจ", "เข้มแข็งนะ", "cheer up", "keep fighting", "don't give up", "you can do it"},
		Patterns:   []string{`สู้\s*ๆ`, `กำลังใจ`},
		Emojis:     []string{"💪", "✊", "🙌"},
		ScoreRange: [2]float64{0.5, 0.9},
	},
	{
		Label:      LabelRelieved,
		Keywords:   []string{"สบายใจ", "โล่งใจ", "หายห่วง", "หมดกังวล", "ผ่อนคลาย", "โล่งอก", "relieved", "relaxed"},
		Patterns:   []string{`โล่ง(ใจ|อก)`},
		Emojis:     []string{"😌"},
		ScoreRange: [2]float64{0.3, 0.7},
	},

	// Negative
	{
		Label:      LabelAnger,
		Keywords:   []string{"โกรธ", "ฉุน", "โมโห", "แค้น", "เดือด", "ห่วยแตก", "หัวร้อน", "หัวเสีย", "หงุดหงิด", "ฟิวส์ขาด", "angry", "furious", "pissed"},
		Patterns:   []string{`โกรธ.*มาก`, `ฉุน.*ขาด`, `โมโห`, `ห่วย.*แตก`, `แย่.*มาก`},
		Emojis:     []string{"😠", "😡", "🤬", "👿", "💢", "😤"},
		ScoreRange: [2]float64{-1.0, -0.6},
	},
	{
		Label:      LabelSad,
		Keywords:   []string{"เสียใจ", "เศร้า", "ใจหาย", "ปวดใจ", "เสียดาย", "หดหู่", "เหงา", "อกหัก", "ช้ำใจ", "sad", "heartbroken", "depressed", "lonely"},
		Patterns:   []string{`เสียใจ`, `เศร้า.*มาก`, `ใจหาย`, `ปวดใจ`},
		Emojis:     []string{"😢", "😭", "😞", "☹️", "😔", "💔"},
		ScoreRange: [2]float64{-0.8, -0.4},
	},
	{
		Label:      LabelDisappointed,
		Keywords:   []string{"ผิดหวัง", "ท้อ", "หมดหวัง", "ไม่ได้ดังใจ", "หวังเกิน", "disappointed", "letdown"},
		Patterns:   []string{`ผิดหวัง`, `หวัง.*เกิน`, `หมดหวัง`},
		Emojis:     []string{"😞", "😔", "😓", "😩"},
		ScoreRange: [2]float64{-0.7, -0.3},
	},
	{
		Label:      LabelAnnoyed,
		Keywords:   []string{"รำคาญ", "น่ารำคาญ", "เบื่อ", "หน่าย", "เซ็ง", "เอือม", "เครียด", "annoying", "annoyed", "irritated"},
		Patterns:   []string{`รำคาญ`, `เบื่อ.*มาก`, `เซ็ง`},
		Emojis:     []string{"😒", "🙄", "😑", "😫"},
		ScoreRange: [2]float64{-0.6, -0.2},
	},
	{
		Label:      LabelHate,
		Keywords:   []string{"เกลียด", "ขยะแขยง", "ชัง", "น่ารังเกียจ", "แหวะ", "hate", "despise", "disgust"},
		Patterns:   []string{`เกลียด.*มาก`, `ขยะแขยง`, `ไม่ชอบ.*เลย`},
		Emojis:     []string{"🤮", "🤢", "👿"},
		ScoreRange: [2]float64{-1.0, -0.7},
	},
	{
		Label:      LabelFear,
		Keywords:   []string{"กลัว", "หวาดกลัว", "วิตก", "กังวล", "หวั่น", "ขนลุก", "สยอง", "น่ากลัว", "scared", "afraid", "terrified", "fear"},
		Patterns:   []string{`กลัว.*มาก`, `หวาดกลัว`, `วิตก`, `กังวล`},
		Emojis:     []string{"😨", "😰", "😱", "😧", "🫣"},
		ScoreRange: [2]float64{-0.8, -0.3},
	},
	{
		Label:      LabelUncomfortable,
		Keywords:   []string{"อึดอัด", "อับอาย", "เก้อ", "ไม่สบายใจ", "กดดัน", "ขัดใจ", "awkward", "uncomfortable"},
		Patterns:   []string{`อึดอัด`, `อับอาย`, `กดดัน`},
		Emojis:     []string{"😣", "😖"},
		ScoreRange: [2]float64{-0.6, -0.2},
	},
	{
		Label:      LabelShocked,
		Keywords:   []string{"ตกใจ", "สะดุ้ง", "ตกตะลึง", "ตะลึง", "อึ้ง", "เหวอ", "ช็อก", "shocked", "omg"},
		Patterns:   []string{`ตกใจ.*มาก`, `สะดุ้ง`, `ตะลึง`},
		Emojis:     []string{"😱", "😳", "🫨", "😲"},
		ScoreRange: [2]float64{-0.5, 0.0},
	},
	{
		Label:      LabelDissatisfied,
		Keywords:   []string{"ไม่พอใจ", "ไม่ชอบ", "ไม่ปลื้ม", "ไม่โอเค", "แย่", "ห่วย", "ไม่ได้เรื่อง", "ไม่เอาไหน", "ล้มเหลว", "พัง", "เจ๊ง", "bad", "terrible", "awful", "horrible", "sucks", "dissatisfied"},
		Patterns:   []string{`ไม่\s*พอใจ`, `ไม่ได้เรื่อง`},
		Emojis:     []string{"👎"},
		ScoreRange: [2]float64{-0.7, -0.3},
	},

	// Neutral
	{
		Label:      LabelNeutral,
		Keywords:   []string{"เฉยๆ", "เฉย ๆ", "ธรรมดา", "ปกติ", "พอใช้", "เรื่อยๆ", "so-so", "meh"},
		Patterns:   []string{`เฉย\s*ๆ`, `ธรรมดา`},
		Emojis:     []string{"😐", "😶"},
		ScoreRange: [2]float64{-0.1, 0.1},
	},
	{
		Label:      LabelIndifferent,
		Keywords:   []string{"ไม่รู้สึก", "ไม่สน", "ไม่แคร์", "ชาชิน", "whatever", "don't care"},
		Patterns:   []string{`ไม่รู้สึก.*อะไร`, `ไม่สน`, `ไม่แคร์`},
		Emojis:     []string{"🤷"},
		ScoreRange: [2]float64{-0.05, 0.05},
	},
	{
		Label:      LabelInformative,
		Keywords:   []string{"ข้อมูล", "ข่าว", "รายงาน", "แจ้ง", "อัปเดต", "ประกาศ", "news", "update"},
		Patterns:   []string{`ข้อมูล`, `ข่าว`, `รายงาน`, `แจ้ง`, `อัปเดต`},
		Emojis:     []string{"📰", "📊", "📈", "📢"},
		ScoreRange: [2]float64{0.0, 0.0},
	},
	{
		Label:      LabelCurious,
		Keywords:   []string{"อยากรู้", "อยากเห็น", "สงสัย", "ใคร่รู้", "อยากลอง", "น่าสนใจ", "น่าติดตาม", "curious", "wonder"},
		Patterns:   []string{`อยาก(รู้|เห็น|ลอง)`},
		Emojis:     []string{"🧐", "👀"},
		ScoreRange: [2]float64{0.0, 0.3},
	},
	{
		Label:      LabelHopeful,
		Keywords:   []string{"คาดหวัง", "หวังว่า", "ตั้งตารอ", "รอคอย", "ลุ้น", "hope", "look forward", "wish"},
		Patterns:   []string{`หวังว่า`, `ตั้งตา\s*รอ`},
		Emojis:     []string{"🤞"},
		ScoreRange: [2]float64{0.0, 0.4},
	},

	// Others
	{
		Label:      LabelSarcasm,
		Keywords:   []string{"ประชด", "ประชดประชัน", "เหน็บแนม", "แดกดัน", "จิกกัด", "แขวะ", "แซะ", "ดีออก", "sarcastic", "ironic"},
		Patterns:   []string{`ประชด`, `เหน็บ\s*แนม`, `แดกดัน`, `แซะ`},
		Emojis:     []string{"😏", "🙄", "😒"},
		ScoreRange: [2]float64{-0.4, -0.1},
	},
	{
		Label:      LabelHumor,
		Keywords:   []string{"ขำ", "ตลก", "555", "ฮา", "ฮ่า", "เฮฮา", "ขำกลิ้ง", "ฮาแตก", "lol", "lmao", "funny", "hilarious"},
		Patterns:   []string{`ขำ`, `ตลก`, `555+`, `ฮ่?า+`},
		Emojis:     []string{"😂", "🤣", "😅", "😁", "😆", "😄", "😃", "😸", "😹", "🤪", "😜"},
		ScoreRange: [2]float64{0.3, 0.8},
	},
	{
		Label:      LabelSardonic,
		Keywords:   []string{"เสียดสี", "เย้ยหยัน", "ถากถาง", "ดูถูก", "ดูแคลน", "เหยียด", "เยาะเย้ย", "mock", "scorn"},
		Patterns:   []string{`เสียดสี`, `ถากถาง`, `เยาะเย้ย`},
		Emojis:     []string{"😏", "🙄"},
		ScoreRange: [2]float64{-0.5, -0.2},
	},
	{
		Label:      LabelConfused,
		Keywords:   []string{"สับสน", "งง", "เข้าใจไม่ได้", "แปลก", "ฉงน", "มึน", "confused", "confusing"},
		Patterns:   []string{`สับสน`, `งง`, `เข้าใจไม่ได้`},
		Emojis:     []string{"😕", "🤔", "😵", "🫤"},
		ScoreRange: [2]float64{-0.2, 0.2},
	},
	{
		Label:      LabelMisc,
		ScoreRange: [2]float64{0.0, 0.0},
	},
}

// Markers that force the single-label emoji override. They are matched as
// substrings of the original text.
var (
	laughterMarkers = []string{"😂", "🤣", "😅", "😁", "😆", "😄", "😃", "😸", "😹", "555", "ฮ่า"}
	loveMarkers     = []string{"❤", "🩵", "💙", "💚", "💛", "💜", "💗", "💖", "💓", "💞", "💕", "💘", "💝", "💟", "❣", "♥", "<3", "🤍", "💌", "🌹", "🌻", "🌷", "😘", "😍", "🥰", "😻", "😚", "😙", "😽"}
)

// emojiOverrideConfidence is the minimum confidence of a label forced by
// the emoji override.
const emojiOverrideConfidence = 0.8

// doubleNegative matches "not not like" and "not not hate" constructions.
var doubleNegative = regexp.MustCompile(`ไม่(ได้)?ไม่(ชอบ|เกลียด)`)

// doubleNegativeSuppressed are zeroed when a double negative is present.
var doubleNegativeSuppressed = []Label{LabelHate, LabelAnger, LabelDissatisfied}

const doubleNegativeNeutralBoost = 3.0

// sarcasmBoosts are added once per sarcastic text, after Positive labels
// are zeroed.
var sarcasmBoosts = []struct {
	Label Label
	Boost float64
}{
	{LabelAnger, 5.0},
	{LabelSarcasm, 10.0},
	{LabelSardonic, 10.0},
	{LabelAnnoyed, 8.0},
}
