package models

import (
	"encoding/json"
	"time"
)

// ImprovementTrendAdvice is the fixed advisory attached to every insight.
const ImprovementTrendAdvice = "Focus on topics with consistent low performance."

// InsightResult lists the topics that need attention.
type InsightResult struct {
	WeakAreas         []GroupSummary
	PerformanceGaps   []AccuracySummary
	ImprovementTrends string
	// OverallMean is the unweighted mean of the topic means, NaN when there
	// are no topics with a score.
	OverallMean float64
}

func (i InsightResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		WeakAreas         []GroupSummary    `json:"weak_areas"`
		PerformanceGaps   []AccuracySummary `json:"performance_gaps"`
		ImprovementTrends string            `json:"improvement_trends"`
		OverallMean       *float64          `json:"overall_mean"`
	}{nonNil(i.WeakAreas), nonNil(i.PerformanceGaps), i.ImprovementTrends, optional(i.OverallMean)})
}

// AnalysisResult is everything one pipeline run produces.
type AnalysisResult struct {
	RunID           string        `json:"run_id"`
	Performance     Performance   `json:"performance"`
	Insights        InsightResult `json:"insights"`
	Recommendations []string      `json:"recommendations"`
	RecordCount     int           `json:"record_count"`
	GeneratedAt     time.Time     `json:"generated_at"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
