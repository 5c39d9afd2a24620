package classifier

import (
	"context"

	"sales-insights-go/internal/extractor"
	"sales-insights-go/internal/scorer"
	"sales-insights-go/internal/types"
)

// Apply classifies the activity's transcript and merges the result into the
// record: category fields are set, extracted customer/deal fields are
// shallow-merged (new values win, existing ones survive), extracted action
// items are appended, and the activity score is recomputed. An activity
// without a transcript is returned unchanged.
func (c *Classifier) Apply(ctx context.Context, a types.Activity) types.Activity {
	if a.Transcript == "" {
		return a
	}
	result := c.Classify(ctx, a.Transcript, string(a.ActivityType))
	return ApplyResult(a, result)
}

// ApplyResult merges an already-computed classification into the activity.
// Split out from Apply so the merge semantics are testable without a
// classifier instance.
func ApplyResult(a types.Activity, result types.ClassificationResult) types.Activity {
	if a.Transcript == "" {
		return a
	}

	hadMetrics := a.QualityMetrics != nil

	a.Category = result.Category
	a.SubCategory = result.SubCategory

	a.CustomerInfo = mergeCustomerInfo(a.CustomerInfo, result.ExtractedData.CustomerInfo)
	a.DealInfo = mergeDealInfo(a.DealInfo, result.ExtractedData.DealInfo)

	if len(result.ExtractedData.ActionItems) > 0 {
		items := make([]string, 0, len(a.ActionItems)+len(result.ExtractedData.ActionItems))
		items = append(items, a.ActionItems...)
		items = append(items, result.ExtractedData.ActionItems...)
		a.ActionItems = items
	}

	if a.EstimatedValue == 0 {
		if amount := extractor.Extract(a.Transcript).DealAmount(); amount > 0 {
			a.EstimatedValue = amount
		}
	}

	a.AIClassification = &types.AIClassification{
		SuggestedCategory:    result.Category,
		SuggestedSubCategory: result.SubCategory,
		Confidence:           result.Confidence,
		ExtractedData:        result.ExtractedData,
		HumanConfirmed:       false,
	}

	a.ActivityScore = scorer.Score(a).TotalScore

	if !hadMetrics {
		a.QualityMetrics = &types.QualityMetrics{
			Duration:          a.TranscriptionDuration,
			Engagement:        result.QualityScore / 10,
			Outcomes:          len(result.ExtractedData.ActionItems),
			FollowUpCompleted: false,
		}
	}

	return a
}

func mergeCustomerInfo(existing, extracted types.CustomerInfo) types.CustomerInfo {
	if extracted.Name != "" {
		existing.Name = extracted.Name
	}
	if extracted.Company != "" {
		existing.Company = extracted.Company
	}
	if extracted.Position != "" {
		existing.Position = extracted.Position
	}
	if extracted.Email != "" {
		existing.Email = extracted.Email
	}
	if extracted.Phone != "" {
		existing.Phone = extracted.Phone
	}
	return existing
}

func mergeDealInfo(existing, extracted types.DealInfo) types.DealInfo {
	if extracted.Value != "" {
		existing.Value = extracted.Value
	}
	if extracted.Status != "" {
		existing.Status = extracted.Status
	}
	if extracted.Probability != 0 {
		existing.Probability = extracted.Probability
	}
	if extracted.ExpectedCloseDate != nil {
		existing.ExpectedCloseDate = extracted.ExpectedCloseDate
	}
	return existing
}
