package classifier

import (
	"strings"
	"unicode/utf8"

	"sales-insights-go/internal/extractor"
	"sales-insights-go/internal/types"
)

// keywordRule classifies a transcript when every keyword group matches
// (a group matches when any of its keywords occurs in the lower-cased text).
type keywordRule struct {
	groups      [][]string
	category    types.Category
	subCategory string
	confidence  float64
}

func (r keywordRule) matches(lower string) bool {
	for _, group := range r.groups {
		found := false
		for _, kw := range group {
			if strings.Contains(lower, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

var (
	greetingKeywords = []string{"สวัสดี", "หวัดดี", "hello", "good morning", "good afternoon"}
	introKeywords    = []string{"แนะนำ", "รู้จัก", "บริษัทของเรา", "สินค้าของเรา", "introduce", "our company", "our product"}
	needsKeywords    = []string{"ความต้องการ", "งบประมาณ", "ปัญหา", "ใช้งานอยู่", "budget", "requirement", "pain point", "currently using"}
	demoKeywords     = []string{"เดโม", "สาธิต", "นำเสนอ", "ฟีเจอร์", "ทดลองใช้", "demo", "presentation", "feature"}
	priceKeywords    = []string{"ราคา", "ส่วนลด", "เงื่อนไข", "ต่อรอง", "ผ่อนชำระ", "price", "discount", "terms", "bargain"}
	closingKeywords  = []string{"สัญญา", "เซ็น", "ตกลง", "ยืนยัน", "สั่งซื้อ", "contract", "sign", "agree", "confirm"}
	followUpKeywords = []string{"ติดตาม", "นัดหมาย", "ครั้งหน้า", "ติดต่อกลับ", "follow up", "follow-up", "appointment", "next time"}
)

// Declaration order matters: every matching rule overwrites the running
// classification, so the last match wins.
var classificationRules = []keywordRule{
	{groups: [][]string{greetingKeywords, introKeywords}, category: types.CategoryProspecting, subCategory: "introduction", confidence: 0.7},
	{groups: [][]string{needsKeywords}, category: types.CategoryQualification, subCategory: "needs-assessment", confidence: 0.8},
	{groups: [][]string{demoKeywords}, category: types.CategoryPresentation, subCategory: "product-demo", confidence: 0.8},
	{groups: [][]string{priceKeywords}, category: types.CategoryNegotiation, subCategory: "price-discussion", confidence: 0.8},
	{groups: [][]string{closingKeywords}, category: types.CategoryClosing, subCategory: "contract-discussion", confidence: 0.9},
	{groups: [][]string{followUpKeywords}, category: types.CategoryFollowUp, subCategory: "appointment-setting", confidence: 0.7},
}

const longTranscriptChars = 500

// classifyWithRules is the deterministic fallback path. It always produces a
// result, even for an empty transcript.
func classifyWithRules(transcript string) types.ClassificationResult {
	lower := strings.ToLower(transcript)

	result := types.ClassificationResult{
		Category:    types.CategoryQualification,
		SubCategory: "general",
		Confidence:  0.6,
		Reasoning:   "rule-based keyword classification",
	}

	for _, rule := range classificationRules {
		if rule.matches(lower) {
			result.Category = rule.category
			result.SubCategory = rule.subCategory
			result.Confidence = rule.confidence
		}
	}

	extracted := extractor.Extract(transcript)
	result.ExtractedData = types.ExtractedData{
		CustomerInfo: extracted.CustomerInfo(),
		DealInfo:     extracted.DealInfo(),
		ActionItems:  extracted.ActionItems,
	}.Normalized()

	score := 50
	// characters, not bytes: Thai text is three bytes per rune
	if utf8.RuneCountInString(transcript) > longTranscriptChars {
		score += 20
	}
	if len(extracted.ActionItems) > 0 {
		score += 15
	}
	if extracted.CustomerName != "" || extracted.CompanyName != "" {
		score += 15
	}
	if score > 100 {
		score = 100
	}
	result.QualityScore = score

	return result
}
