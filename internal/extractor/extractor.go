// Package extractor pulls structured candidate fields out of raw sales
// transcripts with deterministic pattern rules. Extraction is best effort:
// a pattern that never matches yields an absent field, never an error.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"sales-insights-go/internal/types"
)

const maxActionItems = 5

// Trigger clauses meaning "must/should/will <X>", Thai and Latin, terminated
// by sentence punctuation or end of line.
var actionItemPattern = regexp.MustCompile(`(?i)(?:ต้องการ|ต้อง|ควรจะ|ควร|อย่าลืม|\b(?:must|should|will|need to)\b)\s*([^.!?\n]+)`)

// Company marker followed by one or two tokens; a trailing legal suffix is
// stripped from the captured value.
var companyPattern = regexp.MustCompile(`(?i)(?:บริษัท|company)\s*([^\s.,!?]+(?:\s+[^\s.,!?]+)?)`)

var legalSuffixes = []string{"จำกัด", "มหาชน", "ltd.", "ltd", "limited", "inc.", "inc", "co.,", "co.", "corp.", "corp"}

// Person marker followed by one token; the marker itself is not part of the
// captured name.
var personPattern = regexp.MustCompile(`(?i)(?:คุณ|khun|mr\.|ms\.|mrs\.)\s*([^\s.,!?]{1,30})`)

// Integer with optional thousands separators followed by a currency or scale
// unit.
var moneyPattern = regexp.MustCompile(`(?i)([0-9]{1,3}(?:,[0-9]{3})+|[0-9]+)\s*(ล้านบาท|ล้าน|แสนบาท|แสน|หมื่น|พันบาท|พัน|บาท|baht|thb|million|thousand|k\b)`)

// Result is the best-effort structured extraction from one transcript.
// RawDealValue keeps the numeric string exactly as spoken; DealAmount applies
// the unit scaling.
type Result struct {
	CustomerName string
	CompanyName  string
	RawDealValue string
	DealUnit     string
	ActionItems  []string
}

// Extract scans the transcript and returns whatever fields its patterns find.
// It never fails; pathological input produces an empty Result.
func Extract(transcript string) Result {
	res := Result{ActionItems: []string{}}
	if transcript == "" {
		return res
	}

	for _, m := range actionItemPattern.FindAllStringSubmatch(transcript, -1) {
		item := strings.TrimSpace(m[1])
		if item == "" {
			continue
		}
		res.ActionItems = append(res.ActionItems, item)
		if len(res.ActionItems) == maxActionItems {
			break
		}
	}

	if m := companyPattern.FindStringSubmatch(transcript); m != nil {
		res.CompanyName = stripLegalSuffix(strings.TrimSpace(m[1]))
	}

	if m := personPattern.FindStringSubmatch(transcript); m != nil {
		name := strings.TrimSpace(m[1])
		// "คุณภาพ" (quality) shares the person marker prefix; skip it
		if !strings.HasPrefix(name, "ภาพ") {
			res.CustomerName = name
		}
	}

	if m := moneyPattern.FindStringSubmatch(transcript); m != nil {
		res.RawDealValue = m[1]
		res.DealUnit = strings.ToLower(m[2])
	}

	return res
}

// DealAmount scales the raw value by its unit into baht. Zero when nothing
// was extracted or the raw value does not parse.
func (r Result) DealAmount() float64 {
	if r.RawDealValue == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(r.RawDealValue, ",", ""), 64)
	if err != nil {
		return 0
	}
	return n * unitMultiplier(r.DealUnit)
}

func unitMultiplier(unit string) float64 {
	switch unit {
	case "ล้าน", "ล้านบาท", "million":
		return 1_000_000
	case "แสน", "แสนบาท":
		return 100_000
	case "หมื่น":
		return 10_000
	case "พัน", "พันบาท", "thousand", "k":
		return 1_000
	default:
		return 1
	}
}

// CustomerInfo shapes the extracted identity fields for merging into an
// activity record.
func (r Result) CustomerInfo() types.CustomerInfo {
	return types.CustomerInfo{Name: r.CustomerName, Company: r.CompanyName}
}

// DealInfo shapes the extracted deal fields; Value stays the raw string.
func (r Result) DealInfo() types.DealInfo {
	return types.DealInfo{Value: r.RawDealValue}
}

func stripLegalSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range legalSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimSpace(name[:len(name)-len(suffix)])
		}
	}
	return name
}
