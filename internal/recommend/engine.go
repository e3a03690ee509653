package recommend

import (
	"fmt"
	"slices"

	"github.com/spboyer/quizlens/internal/models"
)

// Section headers. Every header after the first section starts with a
// blank line so the lines can be printed as they are.
const (
	WeakTopicsHeader      = "Focus on the following weak topics:"
	PerformanceGapsHeader = "\nAddress performance gaps in these topics:"
	StudyStrategiesHeader = "\nStudy Strategies:"
)

// defaultStudyStrategies close every recommendation list.
var defaultStudyStrategies = []string{
	"- Practice more questions in weak areas.",
	"- Review past incorrect answers.",
	"- Attempt quizzes with varied difficulty levels.",
}

// Engine turns insights into recommendation lines.
type Engine struct {
	strategies []string
}

// NewEngine creates a recommendation engine with the default study
// strategies.
func NewEngine() *Engine {
	return &Engine{strategies: slices.Clone(defaultStudyStrategies)}
}

// Recommend renders insight as an ordered list of lines: weak topics,
// then performance gaps, then the study strategies. Empty sections are
// left out; the strategies are always present.
func (e *Engine) Recommend(insight models.InsightResult) []string {
	lines := make([]string, 0, len(insight.WeakAreas)+len(insight.PerformanceGaps)+len(e.strategies)+3)

	if len(insight.WeakAreas) > 0 {
		lines = append(lines, WeakTopicsHeader)
		for _, g := range insight.WeakAreas {
			lines = append(lines, fmt.Sprintf("- %s (Avg Score: %.2f)", g.Key, g.MeanScore))
		}
	}

	if len(insight.PerformanceGaps) > 0 {
		lines = append(lines, PerformanceGapsHeader)
		for _, a := range insight.PerformanceGaps {
			lines = append(lines, fmt.Sprintf("- %s (Accuracy: %.2f)", a.Topic, a.Accuracy))
		}
	}

	lines = append(lines, StudyStrategiesHeader)
	lines = append(lines, e.strategies...)
	return lines
}
