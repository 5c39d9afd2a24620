// Package scorer computes the composite 0-100 quality score for one sales
// activity. Score is a pure function of the record's current fields: no
// external calls, no failure modes.
package scorer

import (
	"sales-insights-go/internal/types"
)

// Sub-score ceilings. The maxima sum to 115; the total is capped at 100.
const (
	maxDurationScore   = 35
	maxEngagementScore = 25
	maxOutcomesScore   = 25
	maxFollowUpScore   = 15
	maxTotalScore      = 100
)

var categoryBonus = map[types.Category]int{
	types.CategoryProspecting:   5,
	types.CategoryQualification: 10,
	types.CategoryPresentation:  15,
	types.CategoryNegotiation:   20,
	types.CategoryClosing:       25,
	types.CategoryFollowUp:      8,
	types.CategorySupport:       5,
}

const defaultCategoryBonus = 5

// Score computes the activity's quality score, grade, and improvement
// recommendations. Idempotent for identical inputs.
func Score(activity types.Activity) types.ActivityScore {
	a := types.Normalize(activity)

	breakdown := types.ScoreBreakdown{
		Duration:      durationScore(a),
		Engagement:    engagementScore(a),
		Outcomes:      outcomesScore(a),
		FollowUp:      followUpScore(a),
		CategoryBonus: bonusFor(a.Category),
	}

	total := breakdown.Duration + breakdown.Engagement + breakdown.Outcomes +
		breakdown.FollowUp + breakdown.CategoryBonus
	if total > maxTotalScore {
		total = maxTotalScore
	}

	return types.ActivityScore{
		TotalScore:      total,
		Breakdown:       breakdown,
		Grade:           gradeFor(total),
		Recommendations: recommendations(a, breakdown, total),
	}
}

// durationScore buckets the conversation length in seconds.
func durationScore(a types.Activity) int {
	seconds := a.TranscriptionDuration
	if seconds == 0 {
		seconds = a.QualityMetrics.Duration
	}
	switch {
	case seconds < 60:
		return 5
	case seconds < 300:
		return 15
	case seconds < 900:
		return 25
	case seconds < 1800:
		return 30
	default:
		return maxDurationScore
	}
}

func engagementScore(a types.Activity) int {
	score := a.QualityMetrics.Engagement * 2
	if a.IsEnhanced {
		score += 5
	}
	if a.CustomerInfo.Name != "" || a.CustomerInfo.Company != "" {
		score += 5
	}
	if a.DealInfo.Value != "" || a.DealInfo.Status != "" {
		score += 5
	}
	if score > maxEngagementScore {
		score = maxEngagementScore
	}
	return score
}

func outcomesScore(a types.Activity) int {
	score := a.QualityMetrics.Outcomes * 2
	actionPoints := len(a.ActionItems) * 2
	if actionPoints > 10 {
		actionPoints = 10
	}
	score += actionPoints
	if a.EstimatedValue > 0 {
		score += 5
	}
	if score > maxOutcomesScore {
		score = maxOutcomesScore
	}
	return score
}

func followUpScore(a types.Activity) int {
	score := 0
	switch a.Status {
	case types.StatusCompleted:
		score += 10
	case types.StatusFollowUp:
		score += 5
	}
	if a.CompletedDate != nil && a.DueDate != nil {
		if !a.CompletedDate.After(*a.DueDate) {
			score += 5
		} else {
			score -= 5
		}
	}
	if a.QualityMetrics.FollowUpCompleted {
		score += 5
	}
	if score < 0 {
		score = 0
	}
	if score > maxFollowUpScore {
		score = maxFollowUpScore
	}
	return score
}

func bonusFor(category types.Category) int {
	if bonus, ok := categoryBonus[category]; ok {
		return bonus
	}
	return defaultCategoryBonus
}

func gradeFor(total int) string {
	switch {
	case total >= 90:
		return "A"
	case total >= 80:
		return "B"
	case total >= 70:
		return "C"
	case total >= 60:
		return "D"
	default:
		return "F"
	}
}

// recommendations emits Thai advisory strings for weak areas. The prospecting
// check inspects the already-capped total, so it runs after total computation.
func recommendations(a types.Activity, b types.ScoreBreakdown, total int) []string {
	recs := []string{}
	if b.Duration < 20 {
		recs = append(recs, "ควรใช้เวลาสนทนากับลูกค้าให้นานขึ้นเพื่อเก็บข้อมูลให้ครบถ้วน")
	}
	if b.Engagement < 15 {
		recs = append(recs, "ควรบันทึกข้อมูลลูกค้าและรายละเอียดดีลให้ครบถ้วนมากขึ้น")
	}
	if b.Outcomes < 15 {
		recs = append(recs, "ควรสรุปผลลัพธ์ของการสนทนาให้ชัดเจนและวัดผลได้")
	}
	if len(a.ActionItems) == 0 {
		recs = append(recs, "ควรกำหนดรายการสิ่งที่ต้องทำหลังจบการสนทนาทุกครั้ง")
	}
	if a.EstimatedValue <= 0 {
		recs = append(recs, "ควรประเมินมูลค่าดีลเพื่อช่วยจัดลำดับความสำคัญของลูกค้า")
	}
	if a.Category == types.CategoryProspecting && total < 60 {
		recs = append(recs, "ควรเตรียมข้อมูลลูกค้าให้พร้อมก่อนติดต่อครั้งแรกเพื่อเพิ่มคุณภาพการสนทนา")
	}
	return recs
}
