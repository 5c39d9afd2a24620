package scorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sales-insights-go/internal/types"
)

func TestScoreBareActivityUsesDefaults(t *testing.T) {
	activity := types.Activity{Status: types.StatusPending}

	result := Score(activity)

	require.Equal(t, 5, result.Breakdown.Duration)
	require.Equal(t, 10, result.Breakdown.Engagement)
	require.Equal(t, 10, result.Breakdown.Outcomes)
	require.Equal(t, 0, result.Breakdown.FollowUp)
	require.Equal(t, 5, result.Breakdown.CategoryBonus)
	require.Equal(t, 30, result.TotalScore)
	require.Equal(t, "F", result.Grade)

	require.Contains(t, result.Recommendations, "ควรกำหนดรายการสิ่งที่ต้องทำหลังจบการสนทนาทุกครั้ง")
	require.Contains(t, result.Recommendations, "ควรประเมินมูลค่าดีลเพื่อช่วยจัดลำดับความสำคัญของลูกค้า")
}

func TestScoreEngagementSaturatesAtCeiling(t *testing.T) {
	activity := types.Activity{
		Status:         types.StatusPending,
		IsEnhanced:     true,
		QualityMetrics: &types.QualityMetrics{Engagement: 10, Outcomes: 5},
		CustomerInfo:   types.CustomerInfo{Name: "สมชาย"},
		DealInfo:       types.DealInfo{Value: "500,000"},
	}

	result := Score(activity)

	// min(25, 10*2 + 5 + 5 + 5)
	require.Equal(t, 25, result.Breakdown.Engagement)
}

func TestScoreDurationBuckets(t *testing.T) {
	cases := []struct {
		seconds float64
		want    int
	}{
		{0, 5}, {59, 5}, {60, 15}, {299, 15}, {300, 25},
		{899, 25}, {900, 30}, {1799, 30}, {1800, 35}, {7200, 35},
	}
	for _, tc := range cases {
		result := Score(types.Activity{Status: types.StatusPending, TranscriptionDuration: tc.seconds})
		require.Equal(t, tc.want, result.Breakdown.Duration, "seconds: %v", tc.seconds)
	}
}

func TestScoreDurationFallsBackToQualityMetrics(t *testing.T) {
	activity := types.Activity{
		Status:         types.StatusPending,
		QualityMetrics: &types.QualityMetrics{Duration: 1000, Engagement: 5, Outcomes: 5},
	}

	result := Score(activity)

	require.Equal(t, 30, result.Breakdown.Duration)
}

func TestScoreOutcomes(t *testing.T) {
	activity := types.Activity{
		Status:         types.StatusPending,
		QualityMetrics: &types.QualityMetrics{Engagement: 5, Outcomes: 8},
		ActionItems:    []string{"a", "b", "c", "d", "e", "f", "g"},
		EstimatedValue: 100_000,
	}

	result := Score(activity)

	// min(25, 8*2 + min(10, 7*2) + 5)
	require.Equal(t, 25, result.Breakdown.Outcomes)
}

func TestScoreFollowUpOnTimeAndLate(t *testing.T) {
	due := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	early := due.Add(-24 * time.Hour)
	late := due.Add(24 * time.Hour)

	onTime := Score(types.Activity{Status: types.StatusCompleted, CompletedDate: &early, DueDate: &due})
	require.Equal(t, 15, onTime.Breakdown.FollowUp) // 10 + 5

	lateDone := Score(types.Activity{Status: types.StatusCompleted, CompletedDate: &late, DueDate: &due})
	require.Equal(t, 5, lateDone.Breakdown.FollowUp) // 10 - 5
}

func TestScoreFollowUpNeverNegative(t *testing.T) {
	due := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	late := due.Add(48 * time.Hour)

	result := Score(types.Activity{Status: types.StatusPending, CompletedDate: &late, DueDate: &due})

	require.Equal(t, 0, result.Breakdown.FollowUp)
}

func TestScoreFollowUpStatusPoints(t *testing.T) {
	followUp := Score(types.Activity{Status: types.StatusFollowUp})
	require.Equal(t, 5, followUp.Breakdown.FollowUp)

	withMetric := Score(types.Activity{
		Status:         types.StatusFollowUp,
		QualityMetrics: &types.QualityMetrics{Engagement: 5, Outcomes: 5, FollowUpCompleted: true},
	})
	require.Equal(t, 10, withMetric.Breakdown.FollowUp)
}

func TestScoreCategoryBonusTable(t *testing.T) {
	cases := map[types.Category]int{
		types.CategoryProspecting:   5,
		types.CategoryQualification: 10,
		types.CategoryPresentation:  15,
		types.CategoryNegotiation:   20,
		types.CategoryClosing:       25,
		types.CategoryFollowUp:      8,
		types.CategorySupport:       5,
		types.Category("unknown"):   5,
		types.Category(""):          5,
	}
	for category, want := range cases {
		result := Score(types.Activity{Status: types.StatusPending, Category: category})
		require.Equal(t, want, result.Breakdown.CategoryBonus, "category: %s", category)
	}
}

func TestScoreTotalCappedAtHundred(t *testing.T) {
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(time.Hour)
	activity := types.Activity{
		Status:                types.StatusCompleted,
		Category:              types.CategoryClosing,
		TranscriptionDuration: 2000,
		IsEnhanced:            true,
		QualityMetrics:        &types.QualityMetrics{Engagement: 10, Outcomes: 10, FollowUpCompleted: true},
		CustomerInfo:          types.CustomerInfo{Name: "สมชาย", Company: "สยามเทรดดิ้ง"},
		DealInfo:              types.DealInfo{Value: "2,000,000", Status: "won"},
		ActionItems:           []string{"a", "b", "c", "d", "e"},
		EstimatedValue:        2_000_000,
		CompletedDate:         &now,
		DueDate:               &due,
	}

	result := Score(activity)

	// sub-scores sum to 115, total is capped
	require.Equal(t, 35, result.Breakdown.Duration)
	require.Equal(t, 25, result.Breakdown.Engagement)
	require.Equal(t, 25, result.Breakdown.Outcomes)
	require.Equal(t, 15, result.Breakdown.FollowUp)
	require.Equal(t, 25, result.Breakdown.CategoryBonus)
	require.Equal(t, 100, result.TotalScore)
	require.Equal(t, "A", result.Grade)
	require.Empty(t, result.Recommendations)
}

func TestScoreGradeThresholds(t *testing.T) {
	base := types.Activity{
		Status:         types.StatusPending,
		QualityMetrics: &types.QualityMetrics{Engagement: 5, Outcomes: 5},
	}

	// duration 35 + engagement 10 + outcomes 10 + bonus 25 = 80
	b := base
	b.TranscriptionDuration = 2000
	b.Category = types.CategoryClosing
	require.Equal(t, "B", Score(b).Grade)

	// duration 30 + engagement 10 + outcomes 10 + bonus 20 = 70
	c := base
	c.TranscriptionDuration = 1000
	c.Category = types.CategoryNegotiation
	require.Equal(t, "C", Score(c).Grade)

	// duration 25 + engagement 10 + outcomes 10 + bonus 15 = 60
	d := base
	d.TranscriptionDuration = 500
	d.Category = types.CategoryPresentation
	require.Equal(t, "D", Score(d).Grade)
}

func TestScoreProspectingRecommendationUsesFinalTotal(t *testing.T) {
	weak := Score(types.Activity{Status: types.StatusPending, Category: types.CategoryProspecting})
	require.Contains(t, weak.Recommendations, "ควรเตรียมข้อมูลลูกค้าให้พร้อมก่อนติดต่อครั้งแรกเพื่อเพิ่มคุณภาพการสนทนา")

	strong := types.Activity{
		Status:                types.StatusCompleted,
		Category:              types.CategoryProspecting,
		TranscriptionDuration: 2000,
		IsEnhanced:            true,
		QualityMetrics:        &types.QualityMetrics{Engagement: 10, Outcomes: 10, FollowUpCompleted: true},
		CustomerInfo:          types.CustomerInfo{Name: "สมชาย"},
		DealInfo:              types.DealInfo{Value: "1,000,000"},
		ActionItems:           []string{"a", "b"},
		EstimatedValue:        1_000_000,
	}
	result := Score(strong)
	require.GreaterOrEqual(t, result.TotalScore, 60)
	require.NotContains(t, result.Recommendations, "ควรเตรียมข้อมูลลูกค้าให้พร้อมก่อนติดต่อครั้งแรกเพื่อเพิ่มคุณภาพการสนทนา")
}

func TestScoreIsIdempotent(t *testing.T) {
	activity := types.Activity{
		Status:         types.StatusFollowUp,
		Category:       types.CategoryFollowUp,
		ActionItems:    []string{"โทรกลับ"},
		EstimatedValue: 50_000,
	}

	first := Score(activity)
	second := Score(activity)

	require.Equal(t, first, second)
	require.Nil(t, activity.QualityMetrics, "input is not mutated")
}

func TestScoreAlwaysInRange(t *testing.T) {
	activities := []types.Activity{
		{},
		{Status: types.StatusCancelled},
		{TranscriptionDuration: -100, Status: types.StatusPending},
		{QualityMetrics: &types.QualityMetrics{Engagement: 10, Outcomes: 10}},
	}
	for i, a := range activities {
		result := Score(a)
		require.True(t, result.TotalScore >= 0 && result.TotalScore <= 100, "case %d", i)
	}
}
