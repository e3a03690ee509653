package reporting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/spboyer/quizlens/internal/models"
)

// FormatTextReport produces the plain-text console report.
func FormatTextReport(result *models.AnalysisResult) string {
	var b strings.Builder
	perf := result.Performance

	b.WriteString("Performance by Topic:\n")
	groupTable("Topic", perf.TopicPerformance).writeTo(&b)

	b.WriteString("\nPerformance by Difficulty:\n")
	groupTable("Difficulty", perf.DifficultyPerformance).writeTo(&b)

	b.WriteString("\nAccuracy by Topic:\n")
	accuracyTable(perf.AccuracyByTopic).writeTo(&b)

	ins := result.Insights
	b.WriteString("\nInsights:\n")
	fmt.Fprintf(&b, "weak_areas: %s\n", joinGroups(ins.WeakAreas))
	fmt.Fprintf(&b, "performance_gaps: %s\n", joinAccuracy(ins.PerformanceGaps))
	fmt.Fprintf(&b, "improvement_trends: %s\n", ins.ImprovementTrends)
	fmt.Fprintf(&b, "overall_mean: %s\n", formatNumber(ins.OverallMean))
	fmt.Fprintf(&b, "%s\n", InterpretOverallMean(ins.OverallMean, len(ins.WeakAreas)))

	b.WriteString("\nRecommendations:\n")
	for _, line := range result.Recommendations {
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func joinGroups(rows []models.GroupSummary) string {
	if len(rows) == 0 {
		return "none"
	}
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprintf("%s (%s)", r.Key, formatNumber(r.MeanScore))
	}
	return strings.Join(parts, ", ")
}

func joinAccuracy(rows []models.AccuracySummary) string {
	if len(rows) == 0 {
		return "none"
	}
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprintf("%s (%s)", r.Topic, formatNumber(r.Accuracy))
	}
	return strings.Join(parts, ", ")
}

// table is a small column-aligned text table. Widths are measured in
// terminal cells so wide runes in topic names keep the columns straight.
type table struct {
	headers []string
	rows    [][]string
}

func groupTable(keyHeader string, rows []models.GroupSummary) *table {
	t := &table{headers: []string{keyHeader, "Mean Score", "Count", "Std Dev"}}
	for _, r := range rows {
		t.rows = append(t.rows, []string{r.Key, formatNumber(r.MeanScore), strconv.Itoa(r.Count), formatNumber(r.StdDev)})
	}
	return t
}

func accuracyTable(rows []models.AccuracySummary) *table {
	t := &table{headers: []string{"Topic", "Accuracy", "Correct", "Total", "Rating"}}
	for _, r := range rows {
		t.rows = append(t.rows, []string{
			r.Topic, formatNumber(r.Accuracy), strconv.Itoa(r.Correct), strconv.Itoa(r.Total), InterpretAccuracy(r.Accuracy),
		})
	}
	return t
}

func (t *table) writeTo(b *strings.Builder) {
	if len(t.rows) == 0 {
		b.WriteString("  (none)\n")
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	writeRow := func(cells []string) {
		b.WriteString(" ")
		for i, cell := range cells {
			b.WriteString(" ")
			if i == len(cells)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[i]))
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.headers)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeRow(rule)
	for _, row := range t.rows {
		writeRow(row)
	}
}
