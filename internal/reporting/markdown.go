package reporting

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/spboyer/quizlens/internal/models"
)

const reportTitle = "Quiz Performance Report"

// FormatMarkdownReport renders the analysis as GitHub-flavored markdown.
func FormatMarkdownReport(result *models.AnalysisResult) string {
	var b strings.Builder
	perf := result.Performance

	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "Records analyzed: %d", result.RecordCount)
	if !result.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, " (generated %s)", result.GeneratedAt.Format(time.RFC3339))
	}
	b.WriteString("\n")
	if result.RunID != "" {
		fmt.Fprintf(&b, "\nRun: `%s`\n", result.RunID)
	}
	b.WriteString("\n")

	b.WriteString("## Performance by Topic\n\n")
	writeGroupMarkdown(&b, "Topic", perf.TopicPerformance)

	b.WriteString("## Performance by Difficulty\n\n")
	writeGroupMarkdown(&b, "Difficulty", perf.DifficultyPerformance)

	b.WriteString("## Accuracy by Topic\n\n")
	if len(perf.AccuracyByTopic) == 0 {
		b.WriteString("_No topics._\n\n")
	} else {
		b.WriteString("| Topic | Accuracy | Correct | Total | Rating |\n")
		b.WriteString("| --- | ---: | ---: | ---: | --- |\n")
		for _, r := range perf.AccuracyByTopic {
			fmt.Fprintf(&b, "| %s | %s | %d | %d | %s |\n",
				escapeCell(r.Topic), formatNumber(r.Accuracy), r.Correct, r.Total, InterpretAccuracy(r.Accuracy))
		}
		b.WriteString("\n")
	}

	ins := result.Insights
	b.WriteString("## Insights\n\n")
	fmt.Fprintf(&b, "- **Overall mean:** %s\n", formatNumber(ins.OverallMean))
	fmt.Fprintf(&b, "- **Weak areas:** %s\n", escapeInline(joinGroups(ins.WeakAreas)))
	fmt.Fprintf(&b, "- **Performance gaps:** %s\n", escapeInline(joinAccuracy(ins.PerformanceGaps)))
	fmt.Fprintf(&b, "- **Improvement trends:** %s\n\n", ins.ImprovementTrends)

	b.WriteString("## Recommendations\n\n")
	writeRecommendationsMarkdown(&b, result.Recommendations)

	return b.String()
}

func writeGroupMarkdown(b *strings.Builder, keyHeader string, rows []models.GroupSummary) {
	if len(rows) == 0 {
		b.WriteString("_No groups._\n\n")
		return
	}
	fmt.Fprintf(b, "| %s | Mean Score | Count | Std Dev |\n", keyHeader)
	b.WriteString("| --- | ---: | ---: | ---: |\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			escapeCell(r.Key), formatNumber(r.MeanScore), strconv.Itoa(r.Count), formatNumber(r.StdDev))
	}
	b.WriteString("\n")
}

// Recommendation lines are either section headers or "- " items. Headers
// become bold paragraphs so each item list stays attached to its header.
func writeRecommendationsMarkdown(b *strings.Builder, lines []string) {
	inList := false
	for _, line := range lines {
		line = strings.TrimLeft(line, "\n")
		if item, ok := strings.CutPrefix(line, "- "); ok {
			fmt.Fprintf(b, "- %s\n", escapeInline(item))
			inList = true
			continue
		}
		if inList {
			b.WriteString("\n")
			inList = false
		}
		fmt.Fprintf(b, "**%s**\n\n", escapeInline(line))
	}
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
)

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// WriteHTML renders the markdown report as a standalone HTML page.
func WriteHTML(w io.Writer, result *models.AnalysisResult) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(FormatMarkdownReport(result)), &body); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(reportTitle))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	if _, err := w.Write(page.Bytes()); err != nil {
		return fmt.Errorf("writing HTML report: %w", err)
	}
	return nil
}
