// Package performance rolls up many scored activities into a per-user
// summary: category breakdowns, recency trends, and a performance tier.
package performance

import (
	"time"

	"sales-insights-go/internal/types"
)

// Aggregate builds the performance report for one user's activities. An empty
// slice yields the canonical zero-valued report with the Beginner level.
// Rank stays 0; cross-user ranking needs every user's report and belongs to
// the caller.
func Aggregate(userID string, activities []types.Activity) types.UserPerformanceScore {
	return aggregateAt(userID, activities, time.Now())
}

func aggregateAt(userID string, activities []types.Activity, now time.Time) types.UserPerformanceScore {
	report := types.UserPerformanceScore{
		UserID:         userID,
		CategoryScores: map[types.Category]types.CategoryStat{},
		Level:          types.LevelBeginner,
	}

	if len(activities) == 0 {
		return report
	}

	report.ActivityCount = len(activities)
	for _, a := range activities {
		report.TotalScore += a.ActivityScore

		stat := report.CategoryScores[a.Category]
		stat.Score += a.ActivityScore
		stat.Count++
		report.CategoryScores[a.Category] = stat
	}
	report.AverageActivityScore = float64(report.TotalScore) / float64(report.ActivityCount)

	// averages need the final counts, so this is a second pass
	for category, stat := range report.CategoryScores {
		stat.Average = float64(stat.Score) / float64(stat.Count)
		report.CategoryScores[category] = stat
	}

	report.Trends = trends(activities, now)
	report.Level = levelFor(report.AverageActivityScore, report.ActivityCount)

	return report
}

func trends(activities []types.Activity, now time.Time) types.Trends {
	last7 := windowAverage(activities, now.AddDate(0, 0, -7))
	last30 := windowAverage(activities, now.AddDate(0, 0, -30))

	growth := 0.0
	if last30 != 0 {
		growth = (last7 - last30) / last30 * 100
	}

	return types.Trends{Last7Days: last7, Last30Days: last30, Growth: growth}
}

// windowAverage is the mean activity score of activities created after the
// cutoff, 0 when the window is empty.
func windowAverage(activities []types.Activity, cutoff time.Time) float64 {
	sum, count := 0, 0
	for _, a := range activities {
		if a.CreatedAt.After(cutoff) {
			sum += a.ActivityScore
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// levelFor maps average score and volume to a tier. Rules are checked in
// priority order; the first match wins.
func levelFor(average float64, count int) types.Level {
	switch {
	case count < 10:
		return types.LevelBeginner
	case average >= 85 && count >= 50:
		return types.LevelMaster
	case average >= 75 && count >= 30:
		return types.LevelExpert
	case average >= 65 && count >= 20:
		return types.LevelAdvanced
	case average >= 55:
		return types.LevelIntermediate
	default:
		return types.LevelBeginner
	}
}
