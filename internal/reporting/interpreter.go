package reporting

import (
	"fmt"
	"math"
)

// InterpretAccuracy returns a plain-language label for a topic accuracy (0–1).
func InterpretAccuracy(accuracy float64) string {
	if math.IsNaN(accuracy) {
		return "Not graded"
	}
	pct := accuracy * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretOverallMean explains how weak areas were chosen.
func InterpretOverallMean(mean float64, weak int) string {
	if math.IsNaN(mean) {
		return "No scored topics, so no weak areas could be identified."
	}
	switch weak {
	case 0:
		return fmt.Sprintf("No topic scored below the overall mean of %.2f.", mean)
	case 1:
		return fmt.Sprintf("1 topic scored below the overall mean of %.2f.", mean)
	default:
		return fmt.Sprintf("%d topics scored below the overall mean of %.2f.", weak, mean)
	}
}

// formatNumber renders a statistic with two decimals, or "n/a" when undefined.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", f)
}
