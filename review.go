package thaiemotion

import (
	"regexp"
	"strings"
)

// Reviewer re-checks sentiment judgments against a lexicon of political
// and criticism vocabulary. It never alters the result it is given.
type Reviewer struct {
	// ReviewThreshold is the confidence below which lexicon counts may
	// override the sentiment.
	ReviewThreshold float64

	// BoostThreshold is the confidence below which strong emotion or
	// criticism raises the confidence.
	BoostThreshold float64
}

// NewReviewer returns a Reviewer with the default thresholds.
func NewReviewer() *Reviewer {
	return &Reviewer{ReviewThreshold: 0.5, BoostThreshold: 0.6}
}

// Review adjustments.
const (
	overrideConfidenceStep = 0.2
	overrideConfidenceCap  = 0.75
	sarcasmConfidenceFloor = 0.7
	criticismConfidence    = 0.65
	boostConfidenceStep    = 0.15
	boostConfidenceCap     = 0.8
	reviewedScore          = 0.6
)

var (
	politicalNegative = []string{
		"โง่", "หลอก", "ทุจริต", "ฉ้อโกง", "ด่า", "ตำหนิ", "วิจารณ์", "แย่", "ผิด",
		"ลาออก", "ไล่ออก", "ยุบ", "โกหก", "หลอกลวง", "คอรัปชั่น", "ใช้ไม่ได้",
		"ปัญหา", "ล้มเหลว", "พัง", "เสีย", "ห่วย", "โกรธ", "ฉิบหาย",
	}
	politicalPositive = []string{
		"ดี", "เก่ง", "ยอดเยี่ยม", "สุดยอด", "ชอบ", "สนับสนุน", "เห็นด้วย",
		"ถูกต้อง", "ชื่นชม", "ประทับใจ", "ดีใจ", "ภูมิใจ", "หวัง", "เชิดชู",
	}
	criticismWords = []string{
		"ไม่เอา", "อย่า", "หยุด", "เลิก", "ปฏิเสธ", "คัดค้าน", "ไม่เห็นด้วย",
		"ผิดพลาด", "ไม่ถูก", "ไม่ควร", "ไม่ดี", "ไม่ใช่", "ตำหนิ",
	}

	strongEmotion = compileAll(
		`!{2,}`, `\?{2,}`, `หา{2,}ย`, `(แย่){2,}`, `(โง่){2,}`,
		`ฉิบ+หาย`, `ห่วย+`, `เฮ้ย+`, `เชี่ย+`,
		`(ดี){2,}`, `(เก่ง){2,}`, `สุดยอด+`, `ยอดเยี่ยม+`, `วาว+`, `เยี่ยม+`,
	)
	reviewSarcasm = compileAll(
		`เก่งจัง`, `ดีจัง`, `เก่งมาก`, `ดีมาก.*ไม่`, `ถูกต้องแล้ว.*ไม่`,
		`ใช่.*ไม่`, `งั้นหรอ`, `จริงๆ.*เหรอ`, `อืม.*ใช่`,
	)
)

// PoliticalContext counts the review lexicon in a text.
type PoliticalContext struct {
	IsPolitical        bool      `json:"is_political"`
	NegativeWords      int       `json:"neg_word_count"`
	PositiveWords      int       `json:"pos_word_count"`
	CriticismWords     int       `json:"criticism_count"`
	IsCriticism        bool      `json:"is_criticism"`
	SarcasmDetected    bool      `json:"sarcasm_detected"`
	StrongEmotion      bool      `json:"strong_emotion"`
	SuggestedSentiment Sentiment `json:"adjusted_sentiment"`
}

// Review is a possibly adjusted sentiment judgment.
type Review struct {
	Sentiment          Sentiment             `json:"sentiment"`
	SentimentScore     float64               `json:"sentiment_score"`
	Confidence         float64               `json:"confidence"`
	Probabilities      map[Sentiment]float64 `json:"probabilities,omitempty"`
	OriginalSentiment  Sentiment             `json:"original_sentiment"`
	OriginalConfidence float64               `json:"original_confidence"`
	Political          PoliticalContext      `json:"political_context"`
	Applied            bool                  `json:"review_applied"`
	ConfidenceAdjusted bool                  `json:"confidence_adjusted"`
	Reasons            []string              `json:"review_reasons,omitempty"`
}

// Changed reports whether the review altered the sentiment.
func (rv Review) Changed() bool {
	return rv.Sentiment != rv.OriginalSentiment
}

// PoliticalContext counts review vocabulary in text and suggests a
// sentiment from the counts.
func (rv *Reviewer) PoliticalContext(text string) PoliticalContext {
	lower := strings.ToLower(text)
	pc := PoliticalContext{
		NegativeWords:  countContained(lower, politicalNegative),
		PositiveWords:  countContained(lower, politicalPositive),
		CriticismWords: countContained(lower, criticismWords),
	}
	pc.IsPolitical = pc.NegativeWords+pc.PositiveWords+pc.CriticismWords > 0
	pc.IsCriticism = pc.CriticismWords > 0 || pc.NegativeWords > pc.PositiveWords
	pc.SarcasmDetected = matchesAny(lower, reviewSarcasm)
	pc.StrongEmotion = matchesAny(lower, strongEmotion)

	negative := pc.NegativeWords + pc.CriticismWords
	switch {
	case pc.SarcasmDetected, negative > pc.PositiveWords*2:
		pc.SuggestedSentiment = Negative
	case pc.PositiveWords > negative:
		pc.SuggestedSentiment = Positive
	default:
		pc.SuggestedSentiment = Neutral
	}
	return pc
}

// Review re-checks r against the lexicon. The rules apply in order and
// later rules see the sentiment left by earlier ones.
func (rv *Reviewer) Review(text string, r *AnalysisResult) Review {
	pc := rv.PoliticalContext(text)
	origSent, origConf := r.Sentiment, r.Confidence
	out := Review{
		Sentiment:          origSent,
		SentimentScore:     r.SentimentScore,
		Confidence:         origConf,
		OriginalSentiment:  origSent,
		OriginalConfidence: origConf,
		Political:          pc,
	}

	if origConf < rv.ReviewThreshold && pc.IsPolitical && pc.SuggestedSentiment != origSent {
		out.Sentiment = pc.SuggestedSentiment
		out.Confidence = min(overrideConfidenceCap, origConf+overrideConfidenceStep)
		out.Reasons = append(out.Reasons, "political_context_override: "+string(origSent)+" -> "+string(pc.SuggestedSentiment))
	}

	if pc.SarcasmDetected && origSent != Negative {
		out.Sentiment = Negative
		out.Confidence = max(sarcasmConfidenceFloor, origConf)
		out.Reasons = append(out.Reasons, "sarcasm_detected: forced negative")
	}

	if pc.NegativeWords >= 2 && origSent == Neutral {
		out.Sentiment = Negative
		out.Confidence = max(criticismConfidence, origConf)
		out.Reasons = append(out.Reasons, "strong_criticism: neutral -> negative")
	}

	if origConf < rv.BoostThreshold && (pc.StrongEmotion || pc.CriticismWords > 0) {
		out.Confidence = min(boostConfidenceCap, origConf+boostConfidenceStep)
		out.ConfidenceAdjusted = true
		out.Reasons = append(out.Reasons, "confidence_boost: strong_emotion/criticism detected")
	}

	if origSent == Positive && pc.NegativeWords > pc.PositiveWords {
		out.Sentiment = Negative
		out.Reasons = append(out.Reasons, "contradiction_fix: positive with negative words -> negative")
	}

	if len(out.Reasons) > 0 {
		out.Applied = true
		switch out.Sentiment {
		case Negative:
			out.SentimentScore = -reviewedScore
			out.Probabilities = map[Sentiment]float64{Negative: 0.7, Neutral: 0.2, Positive: 0.1}
		case Positive:
			out.SentimentScore = reviewedScore
			out.Probabilities = map[Sentiment]float64{Positive: 0.7, Neutral: 0.2, Negative: 0.1}
		default:
			out.SentimentScore = 0
			out.Probabilities = map[Sentiment]float64{Neutral: 0.6, Positive: 0.2, Negative: 0.2}
		}
	}
	return out
}

// ReviewStats counts what a batch review changed.
type ReviewStats struct {
	Total              int `json:"total"`
	Reviewed           int `json:"reviewed"`
	SentimentChanged   int `json:"sentiment_changed"`
	ConfidenceAdjusted int `json:"confidence_adjusted"`
	LowConfidence      int `json:"low_confidence_count"`
}

// ReviewAll reviews every result against its own text. Nil results are
// skipped and yield a zero Review.
func (rv *Reviewer) ReviewAll(results []*AnalysisResult) ([]Review, ReviewStats) {
	reviews := make([]Review, len(results))
	var st ReviewStats
	for i, r := range results {
		if r == nil {
			continue
		}
		st.Total++
		if r.Confidence < rv.ReviewThreshold {
			st.LowConfidence++
		}
		rev := rv.Review(r.Text, r)
		if rev.Applied {
			st.Reviewed++
			if rev.Changed() {
				st.SentimentChanged++
			}
			if rev.ConfidenceAdjusted {
				st.ConfidenceAdjusted++
			}
		}
		reviews[i] = rev
	}
	return reviews, st
}

func countContained(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func matchesAny(text string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
