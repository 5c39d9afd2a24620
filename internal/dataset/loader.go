// Package dataset loads sales-activity export spreadsheets into activity
// records for batch scoring and performance reports.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"sales-insights-go/internal/types"
)

// Column headers are matched by substring, so exports with slightly different
// labels ("User", "user_id", "User ID") all load.
type columnIndex struct {
	userID     int
	actType    int
	status     int
	category   int
	transcript int
	duration   int
	value      int
	createdAt  int
	score      int
}

// Load reads the first sheet of an xlsx activity export. Rows without a user
// id are skipped quietly; missing cells produce zero-valued fields.
func Load(path string) ([]types.Activity, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	cols := detectColumns(rows[0])
	if cols.userID == -1 {
		return nil, fmt.Errorf("no user column in header")
	}

	var out []types.Activity
	for _, row := range rows[1:] {
		userID := cell(row, cols.userID)
		if userID == "" {
			continue
		}
		a := types.Activity{
			ID:                    uuid.New().String(),
			UserID:                userID,
			ActivityType:          types.ActivityType(cell(row, cols.actType)),
			Status:                types.ActivityStatus(cell(row, cols.status)),
			Category:              types.Category(cell(row, cols.category)),
			Transcript:            cell(row, cols.transcript),
			TranscriptionDuration: floatCell(row, cols.duration),
			EstimatedValue:        floatCell(row, cols.value),
			CreatedAt:             timeCell(row, cols.createdAt),
			ActivityScore:         intCell(row, cols.score),
		}
		out = append(out, types.Normalize(a))
	}
	return out, nil
}

func detectColumns(header []string) columnIndex {
	cols := columnIndex{-1, -1, -1, -1, -1, -1, -1, -1, -1}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.userID == -1 && strings.Contains(l, "user"):
			cols.userID = i
		case cols.actType == -1 && strings.Contains(l, "type"):
			cols.actType = i
		case cols.status == -1 && strings.Contains(l, "status"):
			cols.status = i
		case cols.category == -1 && strings.Contains(l, "category"):
			cols.category = i
		case cols.duration == -1 && strings.Contains(l, "duration"):
			cols.duration = i
		case cols.transcript == -1 && strings.Contains(l, "transcript"):
			cols.transcript = i
		case cols.value == -1 && (strings.Contains(l, "value") || strings.Contains(l, "amount")):
			cols.value = i
		case cols.createdAt == -1 && (strings.Contains(l, "created") || strings.Contains(l, "date")):
			cols.createdAt = i
		case cols.score == -1 && strings.Contains(l, "score"):
			cols.score = i
		}
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func floatCell(row []string, idx int) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(cell(row, idx), ",", ""), 64)
	return v
}

func intCell(row []string, idx int) int {
	v, _ := strconv.Atoi(cell(row, idx))
	return v
}

func timeCell(row []string, idx int) time.Time {
	raw := cell(row, idx)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "01-02-06", "1/2/06 15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
