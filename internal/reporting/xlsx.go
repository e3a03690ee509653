package reporting

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spboyer/quizlens/internal/models"
)

// Sheet names of the XLSX workbook.
const (
	SheetTopics          = "Topics"
	SheetDifficulty      = "Difficulty"
	SheetAccuracy        = "Accuracy"
	SheetInsights        = "Insights"
	SheetRecommendations = "Recommendations"
)

// WriteXLSX writes the analysis as a workbook with one sheet per table.
// Undefined statistics are left as empty cells.
func WriteXLSX(w io.Writer, result *models.AnalysisResult) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", cerr)
		}
	}()

	perf := result.Performance
	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetTopics, groupRows("Topic", perf.TopicPerformance)},
		{SheetDifficulty, groupRows("Difficulty", perf.DifficultyPerformance)},
		{SheetAccuracy, accuracyRows(perf.AccuracyByTopic)},
		{SheetInsights, insightRows(result.Insights)},
		{SheetRecommendations, recommendationRows(result.Recommendations)},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", s.name, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("writing sheet %s: %w", s.name, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func groupRows(keyHeader string, rows []models.GroupSummary) [][]any {
	out := [][]any{{keyHeader, "Mean Score", "Count", "Std Dev"}}
	for _, r := range rows {
		out = append(out, []any{r.Key, cellNumber(r.MeanScore), r.Count, cellNumber(r.StdDev)})
	}
	return out
}

func accuracyRows(rows []models.AccuracySummary) [][]any {
	out := [][]any{{"Topic", "Accuracy", "Correct", "Total", "Rating"}}
	for _, r := range rows {
		out = append(out, []any{r.Topic, cellNumber(r.Accuracy), r.Correct, r.Total, InterpretAccuracy(r.Accuracy)})
	}
	return out
}

func insightRows(ins models.InsightResult) [][]any {
	out := [][]any{
		{"Overall Mean", cellNumber(ins.OverallMean)},
		{"Improvement Trends", ins.ImprovementTrends},
		{},
		{"Weak Area", "Mean Score"},
	}
	for _, r := range ins.WeakAreas {
		out = append(out, []any{r.Key, cellNumber(r.MeanScore)})
	}
	out = append(out, []any{}, []any{"Performance Gap", "Accuracy"})
	for _, r := range ins.PerformanceGaps {
		out = append(out, []any{r.Topic, cellNumber(r.Accuracy)})
	}
	return out
}

func recommendationRows(lines []string) [][]any {
	out := [][]any{{"Recommendation"}}
	for _, line := range lines {
		line = strings.TrimLeft(line, "\n")
		out = append(out, []any{line})
	}
	return out
}

// cellNumber maps undefined values to nil, which excelize writes as a blank cell.
func cellNumber(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
