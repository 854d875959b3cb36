package thaiemotion

import (
	"fmt"
	"regexp"
	"strings"
)

// sarcasmIdioms are tried in order; the first match wins.
var sarcasmIdioms = compileAll(
	// Thai irony idioms
	`ดีออก`, `จ้าาา`, `พ่อคุณ`, `แม่คุณ`, `ตัวดีเลย`,
	`(เยี่ยม|ดี|เลิศ|ประเสริฐ|สุดยอด)จริงๆ(\s*เนอะ)?`,
	`(ดี|เก่ง)ตายห่า`,
	`ภูมิใจในตัว.*จริงๆ`,
	`ขอบคุณสำหรับความ(พยายาม|หวังดี)`,
	`(สวย|หล่อ)เลือกได้`,
	`(ดี|เก่ง)จนไม่รู้จะพูดยังไง`,
	`.*ซะไม่มี`,
	`ทำดีแล้วครับ.* สำหรับ`,
	`บริการระดับห้าดาว.* ในโลกคู่ขนาน`,
	`อนาคตสดใสแน่นอน.* ถ้า`,
	`เสียงเพราะมาก.* จนอยากปิดหู`,
	`เขียนดีนะ.* ถ้าไม่นับว่า`,
	`ฉลาดเป็นกรด.* แต่`,
	`ขอบคุณ.*ที่.*แย่`,
	`(งาน|สิ่ง)นี้สุดยอด.*ถ้า.*ล้มเหลว`,
	`ขอบคุณ.*ที่ทำให้.*แย่`,

	// rhetorical questions
	`ทำกันได้ลงคอ(เนอะ)?`,
	`ใครจะไปทน`,

	// English
	`'(amazing|great|fantastic|wonderful|perfect)'`,
	`just what i needed`,
	`so fun`,
	`(i love|i enjoy) it when`,
	`oh, great`,
	`another meeting`,
	`(clear|smooth) as mud`,
	`that's just perfect`,
)

// sarcasmStructures match a positive word, a connective and then a
// negative word.
var sarcasmStructures = compileAll(
	`(ดี|สวย|อร่อย|ชอบ|สุดยอด|เยี่ยม|ดีใจ|เก่ง|พัฒนาการที่ดี|เป็นความคิดที่ดี|ชุดนี้สวย|เสียงเพราะ|เขียนดีนะ|ฉลาดเป็นกรด|ประทับใจ)\s*.*(แต่|ถ้า|สำหรับ|จน|ในความ|ที่เป็นต้นเหตุ|ไม่นับว่า|กว่าจะ|กว่าที่)\s*.*(แย่|ห่วย|ล้มเหลว|ต่ำ|ปัญหา|ไม่พัฒนา|ไม่อยากเจอ|ปิดหู|ไม่รู้เรื่อง|กัดกร่อน|ไร้ความสามารถ)`,
	`(ขอบคุณ|ขอบใจ).*(ที่|นะ).*(แย่|เลว|ล้มเหลว)`,
	`(สุดยอด|เยี่ยม|ดี).*(ถ้า|สำหรับ).*(ชอบ|คน).*(ล้มเหลว|แย่)`,
	`(amazing|great|fantastic|wonderful|perfect|love|fun|nice)\s*.*(waited|breaks|lost|for no reason|another meeting)`,
)

var (
	ellipsisPositive = []string{"ขอบคุณ", "สุดยอด", "เยี่ยม", "ดี", "เก่ง", "สวย", "เพราะ"}
	ellipsisNegative = []string{"แย่", "ล้มเหลว", "ถ้าชอบ", "สำหรับคน", "ที่ไม่", "ไม่รู้เรื่อง"}
)

const ellipsisReason = "Positive-negative contrast with ellipsis"

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// DetectSarcasm reports whether text reads as sarcastic. The checks run in
// a fixed order and the first hit decides the reason. text is lower-cased
// before matching.
func DetectSarcasm(text string) SarcasmResult {
	lower := strings.ToLower(text)

	for _, re := range sarcasmIdioms {
		if re.MatchString(lower) {
			return SarcasmResult{
				IsSarcastic: true,
				Reason:      fmt.Sprintf("Matched sarcasm pattern: '%s'", re.String()),
			}
		}
	}

	for _, re := range sarcasmStructures {
		if re.MatchString(lower) {
			return SarcasmResult{
				IsSarcastic: true,
				Reason:      fmt.Sprintf("Matched positive-negative structure: '%s'", re.String()),
			}
		}
	}

	if first, rest, ok := strings.Cut(lower, "..."); ok {
		// Only the segment up to the next ellipsis counts as the tail.
		second, _, _ := strings.Cut(rest, "...")
		if containsAny(first, ellipsisPositive) && containsAny(second, ellipsisNegative) {
			return SarcasmResult{IsSarcastic: true, Reason: ellipsisReason}
		}
	}

	return SarcasmResult{}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
