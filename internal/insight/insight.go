// Package insight flags weak topics and accuracy gaps in aggregated
// performance data.
package insight

import (
	"math"

	"github.com/spboyer/quizlens/internal/metrics"
	"github.com/spboyer/quizlens/internal/models"
)

// GapThreshold is the accuracy below which a topic is a performance gap.
const GapThreshold = 0.5

// Detect derives the insights for one run.
//
// The overall mean is the unweighted mean of the topic means, not a mean
// over records. A topic is weak when its mean is strictly below it.
func Detect(perf models.Performance) models.InsightResult {
	overall := OverallMean(perf.TopicPerformance)

	result := models.InsightResult{
		WeakAreas:         []models.GroupSummary{},
		PerformanceGaps:   []models.AccuracySummary{},
		ImprovementTrends: models.ImprovementTrendAdvice,
		OverallMean:       overall,
	}

	// Comparisons against NaN are false, so an undefined overall mean or
	// topic mean never yields a weak area.
	for _, g := range perf.TopicPerformance {
		if g.MeanScore < overall {
			result.WeakAreas = append(result.WeakAreas, g)
		}
	}
	for _, a := range perf.AccuracyByTopic {
		if a.Defined() && a.Accuracy < GapThreshold {
			result.PerformanceGaps = append(result.PerformanceGaps, a)
		}
	}
	return result
}

// OverallMean is the mean of the defined topic means, or NaN when there
// are none.
func OverallMean(topics []models.GroupSummary) float64 {
	means := make([]float64, 0, len(topics))
	for _, g := range topics {
		if !math.IsNaN(g.MeanScore) {
			means = append(means, g.MeanScore)
		}
	}
	return metrics.MeanOrNaN(means)
}
