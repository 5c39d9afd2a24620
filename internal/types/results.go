package types

// ClassificationResult is the outcome of classifying one transcript.
// It is transient; callers merge it into the Activity record.
type ClassificationResult struct {
	Category      Category      `json:"category"`
	SubCategory   string        `json:"sub_category"`
	Confidence    float64       `json:"confidence"` // 0..1
	ExtractedData ExtractedData `json:"extracted_data"`
	Reasoning     string        `json:"reasoning"`
	QualityScore  int           `json:"quality_score"` // 0..100
}

// ScoreBreakdown holds the five sub-scores that make up an activity score.
type ScoreBreakdown struct {
	Duration      int `json:"duration"`       // 0..35
	Engagement    int `json:"engagement"`     // 0..25
	Outcomes      int `json:"outcomes"`       // 0..25
	FollowUp      int `json:"follow_up"`      // 0..15
	CategoryBonus int `json:"category_bonus"` // fixed table
}

// ActivityScore is the scorer's transient output for one activity.
type ActivityScore struct {
	TotalScore      int            `json:"total_score"` // 0..100
	Breakdown       ScoreBreakdown `json:"breakdown"`
	Grade           string         `json:"grade"` // A..F
	Recommendations []string       `json:"recommendations"`
}

// Level is a coarse performance tier.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelExpert       Level = "Expert"
	LevelMaster       Level = "Master"
)

// CategoryStat is the per-category rollup inside a performance score.
type CategoryStat struct {
	Score   int     `json:"score"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Trends compares recent scoring averages.
type Trends struct {
	Last7Days  float64 `json:"last_7_days"`
	Last30Days float64 `json:"last_30_days"`
	Growth     float64 `json:"growth"` // percent
}

// UserPerformanceScore is the aggregate report over one user's activities.
// Rank is left 0 here; cross-user ranking needs every user's report and is
// the caller's concern.
type UserPerformanceScore struct {
	UserID               string                    `json:"user_id"`
	TotalScore           int                       `json:"total_score"`
	AverageActivityScore float64                   `json:"average_activity_score"`
	ActivityCount        int                       `json:"activity_count"`
	CategoryScores       map[Category]CategoryStat `json:"category_scores"`
	Trends               Trends                    `json:"trends"`
	Rank                 int                       `json:"rank"`
	Level                Level                     `json:"level"`
}
