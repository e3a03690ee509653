package recommend

import (
	"testing"

	"github.com/spboyer/quizlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strategyBlock = []string{
	"\nStudy Strategies:",
	"- Practice more questions in weak areas.",
	"- Review past incorrect answers.",
	"- Attempt quizzes with varied difficulty levels.",
}

func TestRecommend_EmptyInsight(t *testing.T) {
	lines := NewEngine().Recommend(models.InsightResult{})
	assert.Equal(t, strategyBlock, lines)
}

func TestRecommend_WeakAreasAndGaps(t *testing.T) {
	insight := models.InsightResult{
		WeakAreas: []models.GroupSummary{
			{Key: "Algebra", MeanScore: 0.333333, Count: 3},
			{Key: "Geometry", MeanScore: 12.5, Count: 1},
		},
		PerformanceGaps: []models.AccuracySummary{
			{Topic: "Physics", Accuracy: 0.125},
		},
	}

	lines := NewEngine().Recommend(insight)
	want := append([]string{
		"Focus on the following weak topics:",
		"- Algebra (Avg Score: 0.33)",
		"- Geometry (Avg Score: 12.50)",
		"\nAddress performance gaps in these topics:",
		"- Physics (Accuracy: 0.12)",
	}, strategyBlock...)
	assert.Equal(t, want, lines)
}

func TestRecommend_OnlyGaps(t *testing.T) {
	insight := models.InsightResult{
		PerformanceGaps: []models.AccuracySummary{{Topic: "Math", Accuracy: 0}},
	}

	lines := NewEngine().Recommend(insight)
	require.Len(t, lines, 6)
	assert.Equal(t, "\nAddress performance gaps in these topics:", lines[0])
	assert.Equal(t, "- Math (Accuracy: 0.00)", lines[1])
	assert.Equal(t, strategyBlock, lines[2:])
}

func TestRecommend_RoundsToTwoDecimals(t *testing.T) {
	tests := []struct {
		mean float64
		want string
	}{
		{0.333333, "- T (Avg Score: 0.33)"},
		{2.0 / 3.0, "- T (Avg Score: 0.67)"},
		{25, "- T (Avg Score: 25.00)"},
		{1234.5, "- T (Avg Score: 1234.50)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			lines := NewEngine().Recommend(models.InsightResult{
				WeakAreas: []models.GroupSummary{{Key: "T", MeanScore: tt.mean, Count: 1}},
			})
			assert.Equal(t, tt.want, lines[1])
		})
	}
}

func TestNewEngine_StrategiesAreNotShared(t *testing.T) {
	first := NewEngine()
	first.strategies[0] = "- changed"

	lines := first.Recommend(models.InsightResult{})
	lines[1] = "- also changed"

	assert.Equal(t, strategyBlock, NewEngine().Recommend(models.InsightResult{}))
	assert.Equal(t, "- Practice more questions in weak areas.", defaultStudyStrategies[0])
}
