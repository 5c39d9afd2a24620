// Package classifier assigns a funnel category to a sales transcript. It
// prefers the language-model collaborator when one is configured and falls
// back to deterministic keyword rules on any failure, so Classify never
// surfaces an error.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"sales-insights-go/internal/llm"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/types"
)

type Classifier struct {
	provider llm.Provider
	log      *logrus.Entry
}

// New builds a classifier. provider may be nil: classification then runs on
// rules alone.
func New(provider llm.Provider) *Classifier {
	return &Classifier{
		provider: provider,
		log:      logger.New().WithComponent("classifier"),
	}
}

// Classify produces a classification for the transcript. The activity type
// hint is optional context for the AI prompt. A failed or unparseable AI
// response degrades to the rule path within the same call, without retrying.
func (c *Classifier) Classify(ctx context.Context, transcript, activityTypeHint string) types.ClassificationResult {
	if c.provider != nil && c.provider.IsConfigured() {
		result, err := c.classifyWithAI(ctx, transcript, activityTypeHint)
		if err == nil {
			return result
		}
		c.log.WithError(err).Warn("ai classification failed, falling back to rules")
	}
	return classifyWithRules(transcript)
}

const classifyPrompt = `You are a sales-conversation analyst for a Thai sales team.
Classify the transcript below into exactly one sales funnel stage and extract structured fields.

Valid categories: prospecting, qualification, presentation, negotiation, closing, follow-up, support

Activity type hint: %s

Return ONLY valid JSON matching this schema, no commentary, no markdown fences:
{
  "category": "",
  "sub_category": "",
  "confidence": 0.0,
  "quality_score": 0,
  "reasoning": "",
  "extracted_data": {
    "customer_info": {"name": "", "company": "", "position": "", "email": "", "phone": ""},
    "deal_info": {"value": "", "status": ""},
    "action_items": [],
    "next_steps": [],
    "pain_points": [],
    "decision_makers": [],
    "competitors": []
  }
}

quality_score is 0-100 for the overall quality of the conversation.
If information is missing, leave fields empty instead of inventing details.

TRANSCRIPT:
"""%s"""`

// lenientList tolerates non-array JSON by decoding to an empty list.
type lenientList []string

func (l *lenientList) UnmarshalJSON(b []byte) error {
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		*l = []string{}
		return nil
	}
	*l = items
	return nil
}

type aiResponse struct {
	Category      string   `json:"category"`
	SubCategory   string   `json:"sub_category"`
	Confidence    *float64 `json:"confidence"`
	QualityScore  *int     `json:"quality_score"`
	Reasoning     string   `json:"reasoning"`
	ExtractedData struct {
		CustomerInfo   types.CustomerInfo `json:"customer_info"`
		DealInfo       types.DealInfo     `json:"deal_info"`
		ActionItems    lenientList        `json:"action_items"`
		NextSteps      lenientList        `json:"next_steps"`
		PainPoints     lenientList        `json:"pain_points"`
		DecisionMakers lenientList        `json:"decision_makers"`
		Competitors    lenientList        `json:"competitors"`
	} `json:"extracted_data"`
}

func (c *Classifier) classifyWithAI(ctx context.Context, transcript, hint string) (types.ClassificationResult, error) {
	prompt := fmt.Sprintf(classifyPrompt, hint, transcript)

	raw, err := c.provider.Generate(ctx, prompt)
	if err != nil {
		return types.ClassificationResult{}, fmt.Errorf("llm generate: %w", err)
	}

	payload := llm.ExtractJSON(raw)
	if payload == "" {
		return types.ClassificationResult{}, fmt.Errorf("no JSON object in llm output")
	}

	var parsed aiResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return types.ClassificationResult{}, fmt.Errorf("decoding classification JSON: %w", err)
	}

	return sanitize(parsed), nil
}

const (
	defaultConfidence   = 0.7
	defaultQualityScore = 50
)

// sanitize enforces the classification contract on whatever the model
// returned: category within the funnel enum, confidence in [0,1],
// quality score in [0,100], list fields always present.
func sanitize(r aiResponse) types.ClassificationResult {
	category := types.Category(r.Category)
	if !types.ValidCategory(category) {
		category = types.CategoryQualification
	}

	confidence := defaultConfidence
	if r.Confidence != nil {
		confidence = clampFloat(*r.Confidence, 0, 1)
	}

	qualityScore := defaultQualityScore
	if r.QualityScore != nil {
		qualityScore = clampInt(*r.QualityScore, 0, 100)
	}

	return types.ClassificationResult{
		Category:    category,
		SubCategory: r.SubCategory,
		Confidence:  confidence,
		ExtractedData: types.ExtractedData{
			CustomerInfo:   r.ExtractedData.CustomerInfo,
			DealInfo:       r.ExtractedData.DealInfo,
			ActionItems:    r.ExtractedData.ActionItems,
			NextSteps:      r.ExtractedData.NextSteps,
			PainPoints:     r.ExtractedData.PainPoints,
			DecisionMakers: r.ExtractedData.DecisionMakers,
			Competitors:    r.ExtractedData.Competitors,
		}.Normalized(),
		Reasoning:    r.Reasoning,
		QualityScore: qualityScore,
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
