package reporting

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spboyer/quizlens/internal/models"
)

func newTestResult() *models.AnalysisResult {
	algebra := models.GroupSummary{Key: "Algebra", MeanScore: 0.6, Count: 2, StdDev: 0.1}
	algebraAccuracy := models.AccuracySummary{Topic: "Algebra", Accuracy: 0, Correct: 0, Total: 2}

	return &models.AnalysisResult{
		Performance: models.Performance{
			TopicPerformance: []models.GroupSummary{
				algebra,
				{Key: "Geometry", MeanScore: 1.0, Count: 1, StdDev: 0},
				{Key: "History", MeanScore: math.NaN(), Count: 1, StdDev: math.NaN()},
			},
			DifficultyPerformance: []models.GroupSummary{
				{Key: "Medium", MeanScore: 0.7333, Count: 4, StdDev: 0.2},
			},
			AccuracyByTopic: []models.AccuracySummary{
				algebraAccuracy,
				{Topic: "Geometry", Accuracy: math.NaN(), Correct: 0, Total: 1},
			},
		},
		Insights: models.InsightResult{
			WeakAreas:         []models.GroupSummary{algebra},
			PerformanceGaps:   []models.AccuracySummary{algebraAccuracy},
			ImprovementTrends: models.ImprovementTrendAdvice,
			OverallMean:       0.8,
		},
		Recommendations: []string{
			"Focus on the following weak topics:",
			"- Algebra (Avg Score: 0.60)",
			"\nAddress performance gaps in these topics:",
			"- Algebra (Accuracy: 0.00)",
			"\nStudy Strategies:",
			"- Practice more questions in weak areas.",
			"- Review past incorrect answers.",
			"- Attempt quizzes with varied difficulty levels.",
		},
		RecordCount: 4,
		GeneratedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"JSON", FormatJSON},
		{" markdown ", FormatMarkdown},
		{"html", FormatHTML},
		{"xlsx", FormatXLSX},
		{"junit", FormatJUnit},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
	assert.Contains(t, err.Error(), "text, json, markdown, html, xlsx, junit")
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, newTestResult(), Format("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
	assert.Zero(t, buf.Len())
}

func TestWrite_NilResult(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Write(&buf, nil, FormatText))
}

func TestFormatBinary(t *testing.T) {
	assert.True(t, FormatXLSX.Binary())
	assert.False(t, FormatText.Binary())
	assert.False(t, FormatHTML.Binary())
}

func TestInterpretAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		accuracy float64
		want     string
	}{
		{"excellent", 0.95, "Excellent (>90%)"},
		{"good boundary", 0.90, "Good (70-90%)"},
		{"good low", 0.70, "Good (70-90%)"},
		{"needs work", 0.50, "Needs Work (50-70%)"},
		{"poor", 0.49, "Poor (<50%)"},
		{"poor zero", 0, "Poor (<50%)"},
		{"undefined", math.NaN(), "Not graded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretAccuracy(tt.accuracy))
		})
	}
}

func TestInterpretOverallMean(t *testing.T) {
	assert.Equal(t, "No topic scored below the overall mean of 0.80.", InterpretOverallMean(0.8, 0))
	assert.Equal(t, "1 topic scored below the overall mean of 0.80.", InterpretOverallMean(0.8, 1))
	assert.Equal(t, "3 topics scored below the overall mean of 0.33.", InterpretOverallMean(0.333333, 3))
	assert.Contains(t, InterpretOverallMean(math.NaN(), 0), "No scored topics")
}

func TestFormatTextReport(t *testing.T) {
	out := FormatTextReport(newTestResult())

	for _, header := range []string{
		"Performance by Topic:", "Performance by Difficulty:", "Accuracy by Topic:", "Insights:", "Recommendations:",
	} {
		assert.Contains(t, out, header)
	}
	assert.Less(t, strings.Index(out, "Performance by Topic:"), strings.Index(out, "Performance by Difficulty:"))
	assert.Less(t, strings.Index(out, "Insights:"), strings.Index(out, "Recommendations:"))

	// Column widths come from the widest cell: "Geometry" and "Mean Score".
	assert.Contains(t, out, "  Topic     Mean Score  Count  Std Dev\n")
	assert.Contains(t, out, "  Algebra   0.60"+strings.Repeat(" ", 8)+"2"+strings.Repeat(" ", 6)+"0.10\n")
	assert.Contains(t, out, "  History   n/a")

	assert.Contains(t, out, "Geometry  n/a")
	assert.Contains(t, out, "Not graded")
	assert.Contains(t, out, "weak_areas: Algebra (0.60)\n")
	assert.Contains(t, out, "performance_gaps: Algebra (0.00)\n")
	assert.Contains(t, out, "improvement_trends: Focus on topics with consistent low performance.\n")
	assert.Contains(t, out, "overall_mean: 0.80\n")
	assert.Contains(t, out, "\n\nAddress performance gaps in these topics:\n")
	assert.True(t, strings.HasSuffix(out, "- Attempt quizzes with varied difficulty levels.\n"))
}

func TestFormatTextReport_Empty(t *testing.T) {
	out := FormatTextReport(&models.AnalysisResult{
		Insights: models.InsightResult{ImprovementTrends: models.ImprovementTrendAdvice, OverallMean: math.NaN()},
	})

	assert.Equal(t, 3, strings.Count(out, "(none)"))
	assert.Contains(t, out, "weak_areas: none\n")
	assert.Contains(t, out, "performance_gaps: none\n")
	assert.Contains(t, out, "overall_mean: n/a\n")
}

func TestFormatTextReport_WideRunesStayAligned(t *testing.T) {
	result := &models.AnalysisResult{
		Performance: models.Performance{
			TopicPerformance: []models.GroupSummary{
				{Key: "数学", MeanScore: 0.5, Count: 1, StdDev: 0},
				{Key: "Algebra", MeanScore: 0.75, Count: 1, StdDev: 0},
			},
		},
	}
	out := FormatTextReport(result)

	column := func(prefix string) int {
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), prefix) {
				idx := strings.Index(line, "0.")
				return runewidth.StringWidth(line[:idx])
			}
		}
		t.Fatalf("no line for %s", prefix)
		return 0
	}
	assert.Equal(t, column("Algebra"), column("数学"))
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, newTestResult(), FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	insights := got["insights"].(map[string]any)
	assert.InDelta(t, 0.8, insights["overall_mean"], 1e-9)

	accuracy := got["performance"].(map[string]any)["accuracy_by_topic"].([]any)
	require.Len(t, accuracy, 2)
	assert.Nil(t, accuracy[1].(map[string]any)["accuracy"])
	assert.EqualValues(t, 4, got["record_count"])
	assert.Equal(t, "2026-03-01T09:30:00Z", got["generated_at"])
	assert.Contains(t, buf.String(), "\n  \"performance\"")
}

func TestFormatMarkdownReport(t *testing.T) {
	out := FormatMarkdownReport(newTestResult())

	assert.True(t, strings.HasPrefix(out, "# Quiz Performance Report\n"))
	assert.Contains(t, out, "Records analyzed: 4 (generated 2026-03-01T09:30:00Z)")
	assert.Contains(t, out, "| Topic | Mean Score | Count | Std Dev |\n| --- | ---: | ---: | ---: |\n")
	assert.Contains(t, out, "| Algebra | 0.60 | 2 | 0.10 |\n")
	assert.Contains(t, out, "| History | n/a | 1 | n/a |\n")
	assert.Contains(t, out, "| Geometry | n/a | 0 | 1 | Not graded |\n")
	assert.Contains(t, out, "- **Overall mean:** 0.80\n")
	assert.Contains(t, out, "**Focus on the following weak topics:**\n\n- Algebra (Avg Score: 0.60)\n\n**Address performance gaps")
	assert.Contains(t, out, "**Study Strategies:**\n\n- Practice more questions in weak areas.\n")
}

func TestFormatMarkdownReport_EscapesTopicNames(t *testing.T) {
	result := newTestResult()
	result.Performance.TopicPerformance = []models.GroupSummary{{Key: "Sets|Logic", MeanScore: 1, Count: 1}}
	result.Performance.DifficultyPerformance = nil
	result.Performance.AccuracyByTopic = nil

	out := FormatMarkdownReport(result)

	assert.Contains(t, out, `| Sets\|Logic | 1.00 | 1 | 0.00 |`)
	assert.Contains(t, out, "_No groups._")
	assert.Contains(t, out, "_No topics._")
}

func TestWrite_HTML(t *testing.T) {
	result := newTestResult()
	result.Performance.TopicPerformance = append(result.Performance.TopicPerformance,
		models.GroupSummary{Key: "<script>alert(1)</script>", MeanScore: 1, Count: 1})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result, FormatHTML))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Quiz Performance Report</title>")
	assert.Contains(t, out, "<h1>Quiz Performance Report</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Topic</th>")
	assert.Contains(t, out, "<td>Algebra</td>")
	assert.Contains(t, out, "<li>Review past incorrect answers.</li>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, newTestResult(), FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	assert.Equal(t, []string{SheetTopics, SheetDifficulty, SheetAccuracy, SheetInsights, SheetRecommendations}, f.GetSheetList())

	topics, err := f.GetRows(SheetTopics)
	require.NoError(t, err)
	require.Len(t, topics, 4)
	assert.Equal(t, []string{"Topic", "Mean Score", "Count", "Std Dev"}, topics[0])
	assert.Equal(t, []string{"Algebra", "0.6", "2", "0.1"}, topics[1])
	assert.Equal(t, "History", topics[3][0])
	assert.Equal(t, "", topics[3][1])

	accuracy, err := f.GetRows(SheetAccuracy)
	require.NoError(t, err)
	require.Len(t, accuracy, 3)
	assert.Equal(t, []string{"Geometry", "", "0", "1", "Not graded"}, accuracy[2])

	recs, err := f.GetRows(SheetRecommendations)
	require.NoError(t, err)
	require.Len(t, recs, 9)
	assert.Equal(t, "Address performance gaps in these topics:", recs[3][0])

	insights, err := f.GetRows(SheetInsights)
	require.NoError(t, err)
	assert.Equal(t, []string{"Overall Mean", "0.8"}, insights[0])
}

func TestConvertToJUnit(t *testing.T) {
	suites := ConvertToJUnit(newTestResult())

	assert.Equal(t, 3, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	require.Len(t, suites.TestSuites, 1)

	suite := suites.TestSuites[0]
	assert.Equal(t, "Quiz Performance Report", suite.Name)
	assert.Equal(t, "2026-03-01T09:30:00Z", suite.Timestamp)
	assert.Equal(t, 1, suite.Skipped)
	require.Len(t, suite.TestCases, 3)

	algebra := suite.TestCases[0]
	require.NotNil(t, algebra.Failure)
	assert.Equal(t, "WeakAreaAndPerformanceGap", algebra.Failure.Type)
	assert.Contains(t, algebra.Failure.Body, "mean score 0.60 is below the overall mean 0.80")
	assert.Contains(t, algebra.Failure.Body, "accuracy 0.00 is below 0.50")

	assert.Nil(t, suite.TestCases[1].Failure)
	assert.Nil(t, suite.TestCases[1].Skipped)
	require.NotNil(t, suite.TestCases[2].Skipped)
}

func TestWrite_JUnit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, newTestResult(), FormatJUnit))

	assert.True(t, strings.HasPrefix(buf.String(), xml.Header))

	var parsed JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, 3, parsed.Tests)
	require.Len(t, parsed.TestSuites, 1)
	assert.Equal(t, "Algebra", parsed.TestSuites[0].TestCases[0].Name)
	assert.Equal(t, "quizlens.topics", parsed.TestSuites[0].TestCases[0].Classname)
}

func TestFormatMarkdownReport_RunID(t *testing.T) {
	result := newTestResult()
	assert.NotContains(t, FormatMarkdownReport(result), "Run:")

	result.RunID = "6f1c2f4e-0000-4000-8000-000000000001"
	out := FormatMarkdownReport(result)
	assert.Contains(t, out, "\n\nRun: `6f1c2f4e-0000-4000-8000-000000000001`\n\n## Performance by Topic")

	suite := ConvertToJUnit(result).TestSuites[0]
	assert.Contains(t, suite.Properties, JUnitProperty{Name: "run_id", Value: result.RunID})
}
