package classifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sales-insights-go/internal/types"
)

func TestApplyWithoutTranscriptIsNoOp(t *testing.T) {
	c := New(nil)
	activity := types.Activity{
		ID:       "a-1",
		Status:   types.StatusPending,
		Category: types.CategorySupport,
	}

	updated := c.Apply(context.Background(), activity)

	require.Equal(t, activity, updated)
	require.Nil(t, updated.AIClassification)
}

func TestApplySetsClassificationAndScore(t *testing.T) {
	c := New(nil)
	activity := types.Activity{
		ID:         "a-2",
		Status:     types.StatusCompleted,
		Transcript: "ลูกค้าตกลงเซ็นสัญญา ต้องส่งเอกสารภายในวันศุกร์.",
	}

	updated := c.Apply(context.Background(), activity)

	require.Equal(t, types.CategoryClosing, updated.Category)
	require.Equal(t, "contract-discussion", updated.SubCategory)
	require.NotNil(t, updated.AIClassification)
	require.False(t, updated.AIClassification.HumanConfirmed)
	require.Equal(t, types.CategoryClosing, updated.AIClassification.SuggestedCategory)
	require.True(t, updated.ActivityScore > 0 && updated.ActivityScore <= 100)
}

func TestApplyAppendsActionItemsCumulatively(t *testing.T) {
	c := New(nil)
	activity := types.Activity{
		ID:          "a-3",
		Status:      types.StatusPending,
		Transcript:  "ต้องโทรหาลูกค้าพรุ่งนี้.",
		ActionItems: []string{"เตรียมสไลด์"},
	}

	once := c.Apply(context.Background(), activity)
	require.Equal(t, []string{"เตรียมสไลด์", "โทรหาลูกค้าพรุ่งนี้"}, once.ActionItems)

	twice := c.Apply(context.Background(), once)
	require.Equal(t, []string{"เตรียมสไลด์", "โทรหาลูกค้าพรุ่งนี้", "โทรหาลูกค้าพรุ่งนี้"}, twice.ActionItems)
}

func TestApplyResultMergePreservesExistingFields(t *testing.T) {
	activity := types.Activity{
		Transcript: "some conversation",
		CustomerInfo: types.CustomerInfo{
			Name:  "เดิม",
			Email: "old@example.com",
		},
		DealInfo: types.DealInfo{Status: "open"},
	}
	result := types.ClassificationResult{
		Category:    types.CategoryQualification,
		SubCategory: "needs-assessment",
		Confidence:  0.8,
		ExtractedData: types.ExtractedData{
			CustomerInfo: types.CustomerInfo{Name: "ใหม่", Company: "สยามเทรดดิ้ง"},
			DealInfo:     types.DealInfo{Value: "250,000"},
		}.Normalized(),
		QualityScore: 60,
	}

	updated := ApplyResult(activity, result)

	// new keys win, unspecified existing keys survive
	require.Equal(t, "ใหม่", updated.CustomerInfo.Name)
	require.Equal(t, "สยามเทรดดิ้ง", updated.CustomerInfo.Company)
	require.Equal(t, "old@example.com", updated.CustomerInfo.Email)
	require.Equal(t, "250,000", updated.DealInfo.Value)
	require.Equal(t, "open", updated.DealInfo.Status)
}

func TestApplyResultInitializesQualityMetrics(t *testing.T) {
	activity := types.Activity{
		Transcript:            "some conversation",
		TranscriptionDuration: 420,
	}
	result := types.ClassificationResult{
		Category:     types.CategoryPresentation,
		Confidence:   0.8,
		QualityScore: 73,
		ExtractedData: types.ExtractedData{
			ActionItems: []string{"ส่งสเปคสินค้า", "นัดเดโมรอบสอง"},
		}.Normalized(),
	}

	updated := ApplyResult(activity, result)

	require.NotNil(t, updated.QualityMetrics)
	require.Equal(t, 420.0, updated.QualityMetrics.Duration)
	require.Equal(t, 7, updated.QualityMetrics.Engagement) // floor(73/10)
	require.Equal(t, 2, updated.QualityMetrics.Outcomes)
	require.False(t, updated.QualityMetrics.FollowUpCompleted)
}

func TestApplyResultKeepsExistingQualityMetrics(t *testing.T) {
	existing := &types.QualityMetrics{Duration: 100, Engagement: 9, Outcomes: 8, FollowUpCompleted: true}
	activity := types.Activity{
		Transcript:     "some conversation",
		QualityMetrics: existing,
	}
	result := types.ClassificationResult{
		Category:      types.CategoryClosing,
		Confidence:    0.9,
		QualityScore:  40,
		ExtractedData: types.ExtractedData{}.Normalized(),
	}

	updated := ApplyResult(activity, result)

	require.Equal(t, existing, updated.QualityMetrics)
}

func TestApplySetsEstimatedValueFromTranscript(t *testing.T) {
	c := New(nil)
	activity := types.Activity{
		Status:     types.StatusPending,
		Transcript: "ลูกค้ามีงบประมาณ 2 ล้านบาท สำหรับระบบใหม่",
	}

	updated := c.Apply(context.Background(), activity)

	require.InDelta(t, 2_000_000, updated.EstimatedValue, 0.001)

	// an existing estimate is not overwritten
	activity.EstimatedValue = 99
	updated = c.Apply(context.Background(), activity)
	require.InDelta(t, 99, updated.EstimatedValue, 0.001)
}

func TestApplyIsIdempotentOnScore(t *testing.T) {
	c := New(nil)
	now := time.Now()
	activity := types.Activity{
		Status:     types.StatusCompleted,
		Transcript: "ขอเดโมสินค้าอีกครั้ง",
		CreatedAt:  now,
	}

	first := c.Apply(context.Background(), activity)
	second := c.Apply(context.Background(), activity)

	require.Equal(t, first.ActivityScore, second.ActivityScore)
	require.Equal(t, first.Category, second.Category)
}
