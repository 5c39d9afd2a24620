package types

import "time"

// ActivityType identifies the kind of sales interaction.
type ActivityType string

const (
	TypeCall         ActivityType = "call"
	TypeMeeting      ActivityType = "meeting"
	TypeEmail        ActivityType = "email"
	TypeVoiceNote    ActivityType = "voice-note"
	TypeDemo         ActivityType = "demo"
	TypeProposal     ActivityType = "proposal"
	TypeNegotiation  ActivityType = "negotiation"
	TypeFollowUpCall ActivityType = "follow-up-call"
	TypeSiteVisit    ActivityType = "site-visit"
)

// ActivityStatus tracks the lifecycle of an activity record.
type ActivityStatus string

const (
	StatusPending   ActivityStatus = "pending"
	StatusCompleted ActivityStatus = "completed"
	StatusFollowUp  ActivityStatus = "follow-up"
	StatusCancelled ActivityStatus = "cancelled"
)

// Category is a sales-funnel stage.
type Category string

const (
	CategoryProspecting   Category = "prospecting"
	CategoryQualification Category = "qualification"
	CategoryPresentation  Category = "presentation"
	CategoryNegotiation   Category = "negotiation"
	CategoryClosing       Category = "closing"
	CategoryFollowUp      Category = "follow-up"
	CategorySupport       Category = "support"
)

// Categories lists every valid funnel stage.
var Categories = []Category{
	CategoryProspecting,
	CategoryQualification,
	CategoryPresentation,
	CategoryNegotiation,
	CategoryClosing,
	CategoryFollowUp,
	CategorySupport,
}

// ValidCategory reports whether c is one of the seven funnel stages.
func ValidCategory(c Category) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type CustomerInfo struct {
	Name     string `json:"name,omitempty"`
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// DealInfo carries deal fields attached to an activity. Value holds the raw
// numeric string as spoken ("2,500,000"); scaling to baht happens when it is
// consumed for deal-value estimation.
type DealInfo struct {
	Value             string     `json:"value,omitempty"`
	Status            string     `json:"status,omitempty"`
	Probability       int        `json:"probability,omitempty"` // 0..100
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
}

type QualityMetrics struct {
	Duration          float64 `json:"duration"`   // seconds
	Engagement        int     `json:"engagement"` // 0..10
	Outcomes          int     `json:"outcomes"`   // 0..10
	FollowUpCompleted bool    `json:"follow_up_completed"`
}

// ExtractedData is the structured payload pulled out of a transcript,
// either by the LLM or the pattern extractor.
type ExtractedData struct {
	CustomerInfo   CustomerInfo `json:"customer_info"`
	DealInfo       DealInfo     `json:"deal_info"`
	ActionItems    []string     `json:"action_items"`
	NextSteps      []string     `json:"next_steps"`
	PainPoints     []string     `json:"pain_points"`
	DecisionMakers []string     `json:"decision_makers"`
	Competitors    []string     `json:"competitors"`
}

type AIClassification struct {
	SuggestedCategory    Category      `json:"suggested_category"`
	SuggestedSubCategory string        `json:"suggested_sub_category"`
	Confidence           float64       `json:"confidence"` // 0..1
	ExtractedData        ExtractedData `json:"extracted_data"`
	HumanConfirmed       bool          `json:"human_confirmed"`
	ReviewedBy           string        `json:"reviewed_by,omitempty"`
	ReviewedAt           *time.Time    `json:"reviewed_at,omitempty"`
}

// Activity is a recorded sales interaction, optionally with a transcript.
type Activity struct {
	ID                    string            `json:"id,omitempty"`
	UserID                string            `json:"user_id,omitempty"`
	Title                 string            `json:"title,omitempty"`
	ActivityType          ActivityType      `json:"activity_type"`
	Status                ActivityStatus    `json:"status"`
	Category              Category          `json:"category,omitempty"`
	SubCategory           string            `json:"sub_category,omitempty"`
	Transcript            string            `json:"transcript,omitempty"`
	TranscriptionDuration float64           `json:"transcription_duration,omitempty"` // seconds
	IsEnhanced            bool              `json:"is_enhanced,omitempty"`
	CustomerInfo          CustomerInfo      `json:"customer_info"`
	DealInfo              DealInfo          `json:"deal_info"`
	ActionItems           []string          `json:"action_items,omitempty"`
	QualityMetrics        *QualityMetrics   `json:"quality_metrics,omitempty"`
	EstimatedValue        float64           `json:"estimated_value,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	CompletedDate         *time.Time        `json:"completed_date,omitempty"`
	DueDate               *time.Time        `json:"due_date,omitempty"`
	ActivityScore         int               `json:"activity_score"` // 0..100, cached projection of the scorer
	AIClassification      *AIClassification `json:"ai_classification,omitempty"`
}

// DefaultQualityMetrics returns the metrics assumed when an activity has none.
func DefaultQualityMetrics() *QualityMetrics {
	return &QualityMetrics{Duration: 0, Engagement: 5, Outcomes: 5, FollowUpCompleted: false}
}

// Normalize fills in the defaulted sub-structures so downstream scoring and
// aggregation never read an undefined sub-field. It returns a copy; the input
// value is left untouched.
func Normalize(a Activity) Activity {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.QualityMetrics == nil {
		a.QualityMetrics = DefaultQualityMetrics()
	} else {
		qm := *a.QualityMetrics
		a.QualityMetrics = &qm
	}
	if a.AIClassification != nil {
		ai := *a.AIClassification
		ai.ExtractedData = ai.ExtractedData.Normalized()
		a.AIClassification = &ai
	}
	return a
}

// Normalized coerces nil lists to empty so encoded output is always well formed.
func (d ExtractedData) Normalized() ExtractedData {
	if d.ActionItems == nil {
		d.ActionItems = []string{}
	}
	if d.NextSteps == nil {
		d.NextSteps = []string{}
	}
	if d.PainPoints == nil {
		d.PainPoints = []string{}
	}
	if d.DecisionMakers == nil {
		d.DecisionMakers = []string{}
	}
	if d.Competitors == nil {
		d.Competitors = []string{}
	}
	return d
}
