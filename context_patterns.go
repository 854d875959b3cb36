package thaiemotion

import "fmt"

// ContextPattern is a register or setting tag and the words that signal it.
type ContextPattern struct {
	Tag      string   `json:"tag"`
	Keywords []string `json:"keywords"`
}

// ContextDimension reduces a subset of context tags to a single value.
type ContextDimension struct {
	Name    string
	Tags    []string
	Default string
}

// Dimension names.
const (
	DimFormality  = "formality"
	DimSocial     = "social"
	DimTone       = "emotional_tone"
	DimGeneration = "generation"
	DimProfession = "profession"
)

// ContextTable is the ordered list of context tags and the dimensions built
// on top of them.
type ContextTable struct {
	patterns   []ContextPattern
	dimensions []ContextDimension
}

// NewContextTable checks that every dimension refers to known tags and
// that no tag is claimed by two dimensions.
func NewContextTable(patterns []ContextPattern, dims []ContextDimension) (*ContextTable, error) {
	known := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		if known[p.Tag] {
			return nil, fmt.Errorf("%w: context tag %q defined twice", ErrInvalidPatternTable, p.Tag)
		}
		known[p.Tag] = true
	}
	owner := map[string]string{}
	for _, d := range dims {
		for _, tag := range d.Tags {
			if !known[tag] {
				return nil, fmt.Errorf("%w: dimension %s uses unknown tag %q", ErrInvalidPatternTable, d.Name, tag)
			}
			if prev, ok := owner[tag]; ok {
				return nil, fmt.Errorf("%w: tag %q is in dimensions %s and %s", ErrInvalidPatternTable, tag, prev, d.Name)
			}
			owner[tag] = d.Name
		}
	}
	ct := &ContextTable{dimensions: dims}
	for _, p := range patterns {
		ct.patterns = append(ct.patterns, ContextPattern{Tag: p.Tag, Keywords: lowerAll(p.Keywords)})
	}
	return ct, nil
}

// Patterns returns the context tags in table order.
func (ct *ContextTable) Patterns() []ContextPattern {
	return ct.patterns
}

var defaultContextTable = mustContextTable(NewContextTable(defaultContextPatterns, defaultDimensions))

func mustContextTable(ct *ContextTable, err error) *ContextTable {
	if err != nil {
		panic(err)
	}
	return ct
}

// DefaultContextTable returns the built-in context tags.
func DefaultContextTable() *ContextTable {
	return defaultContextTable
}

var defaultDimensions = []ContextDimension{
	{Name: DimFormality, Tags: []string{"formal", "informal", "slang"}, Default: "neutral"},
	{Name: DimSocial, Tags: []string{"social_media", "news_media", "review", "online_shopping"}, Default: "general"},
	{Name: DimTone, Tags: []string{"complaint", "praise", "emergency", "celebration", "condolence", "question"}, Default: "neutral"},
	{Name: DimGeneration, Tags: []string{"gen_z", "millennial", "gen_x"}, Default: "unknown"},
	{Name: DimProfession, Tags: []string{"business", "education", "healthcare", "government", "tech", "gaming"}, Default: "general"},
}

var defaultContextPatterns = []ContextPattern{
	{"formal", []string{"ครับ", "ค่ะ", "คะ", "กรุณา", "ท่าน", "ดิฉัน", "กระผม", "ขอแสดง", "เรียนเชิญ"}},
	{"informal", []string{"นะ", "เนอะ", "อะ", "เออ", "จ้า", "ป่ะ", "ว่ะ", "เว้ย"}},
	{"slang", []string{"โคตร", "เฟี้ยว", "เทพ", "แม่ง", "จัดเต็ม", "ตึงๆ", "เกรียน", "กาก"}},
	{"social_media", []string{"แชร์", "ไลค์", "กดไลค์", "โพสต์", "คอมเมนต์", "เม้น", "รีทวีต", "แฮชแท็ก", "ฟีด", "สตอรี่", "tiktok", "facebook", "twitter", "youtube"}},
	{"news_media", []string{"ข่าว", "รายงานข่าว", "แถลง", "ผู้สื่อข่าว", "สำนักข่าว", "breaking", "headline"}},
	{"review", []string{"รีวิว", "ให้ดาว", "คะแนน", "สินค้า", "บริการ", "review", "ใช้แล้ว"}},
	{"online_shopping", []string{"สั่งซื้อ", "ส่งของ", "พัสดุ", "ราคา", "ลดราคา", "ช้อปปี้", "ลาซาด้า", "เก็บเงินปลายทาง"}},
	{"complaint", []string{"ร้องเรียน", "แย่มาก", "ไม่พอใจ", "ผิดหวัง", "ห่วย", "ช้ามาก", "คืนเงิน", "complain"}},
	{"praise", []string{"ชื่นชม", "เก่งมาก", "สุดยอด", "ยอดเยี่ยม", "ปรบมือ", "เยี่ยม", "great job"}},
	{"emergency", []string{"ฉุกเฉิน", "อันตราย", "ต้องรีบ", "ช่วยด้วย", "ไฟไหม้", "อุบัติเหตุ", "เร่งด่วน", "sos"}},
	{"celebration", []string{"ยินดีด้วย", "สุขสันต์", "ฉลอง", "วันเกิด", "ปีใหม่", "congrats", "congratulations", "happy birthday"}},
	{"condolence", []string{"เสียใจด้วย", "แสดงความเสียใจ", "ไว้อาลัย", "สู่สุคติ", "ไว้ทุกข์", "r.i.p", "rest in peace"}},
	{"question", []string{"?", "ไหม", "มั้ย", "ทำไม", "อย่างไร", "ยังไง", "ที่ไหน", "เมื่อไหร่", "หรือเปล่า", "หรือยัง"}},
	{"gen_z", []string{"ฟิน", "ปัง", "จึ้ง", "มองบน", "เกินต้าน", "ตัวมัม", "นอยด์", "ลำไย", "slay", "vibe"}},
	{"millennial", []string{"ชิล", "จุงเบย", "ฟินเวอร์", "ติ่ง", "โอปป้า", "อิอิ"}},
	{"gen_x", []string{"สมัยก่อน", "สมัยนู้น", "ลูกหลาน", "รุ่นเก่า", "เพจเจอร์", "เทปคาสเซ็ท"}},
	{"business", []string{"ธุรกิจ", "บริษัท", "ลงทุน", "กำไร", "ขาดทุน", "หุ้น", "ลูกค้า", "การตลาด", "ยอดขาย"}},
	{"education", []string{"โรงเรียน", "มหาวิทยาลัย", "นักเรียน", "นักศึกษา", "อาจารย์", "คุณครู", "การบ้าน", "ข้อสอบ"}},
	{"healthcare", []string{"โรงพยาบาล", "หมอ", "แพทย์", "พยาบาล", "คนไข้", "ผู้ป่วย", "กินยา", "วัคซีน", "สุขภาพ"}},
	{"government", []string{"รัฐบาล", "นายก", "กระทรวง", "ราชการ", "นโยบาย", "ภาษี", "เลือกตั้ง"}},
	{"tech", []string{"แอป", "แอพ", "โปรแกรม", "ซอฟต์แวร์", "อัปเดต", "มือถือ", "คอมพิวเตอร์", "อินเทอร์เน็ต", "เอไอ", "wifi"}},
	{"gaming", []string{"เกม", "rov", "สตรีม", "แรงค์", "เติมเกม", "pubg", "esport"}},
	{"personal", []string{"กู", "มึง", "ฉัน", "รู้สึก", "คิดว่า", "ส่วนตัว"}},
	{"request", []string{"ขอให้", "ขอความ", "รบกวน", "อยากได้", "ต้องการ", "โปรดช่วย"}},
	{"suggestion", []string{"น่าจะ", "ควรจะ", "ลองดู", "แนะนำ", "เสนอ"}},
	{"gratitude", []string{"ขอบคุณ", "ขอบใจ", "ซึ้งใจ", "thank"}},
	{"apology", []string{"ขอโทษ", "ขออภัย", "sorry"}},
	{"greeting", []string{"สวัสดี", "หวัดดี", "อรุณสวัสดิ์", "hello"}},
	{"politics", []string{"การเมือง", "พรรค", "ประชาธิปไตย", "ม็อบ", "ประท้วง", "รัฐประหาร", "ส.ส."}},
	{"sports", []string{"ฟุตบอล", "นักเตะ", "แข่งขัน", "ทีมชาติ", "นักกีฬา"}},
	{"food", []string{"อร่อย", "อาหาร", "ร้านอาหาร", "เมนู", "รสชาติ"}},
	{"travel", []string{"เที่ยว", "โรงแรม", "ริมทะเล", "ทะเลสวย", "ชายหาด", "ตั๋วเครื่องบิน", "ทริป", "beach"}},
	{"family", []string{"ครอบครัว", "พี่น้อง", "ลูกสาว", "ลูกชาย", "สามี", "ภรรยา"}},
	{"religion", []string{"ทำบุญ", "สาธุ", "วัด", "พระสงฆ์", "ศาสนา"}},
}
