// Package aggregate computes grouped score statistics and answer accuracy
// over a uniform record set.
package aggregate

import (
	"math"
	"slices"

	"github.com/spboyer/quizlens/internal/metrics"
	"github.com/spboyer/quizlens/internal/models"
)

// KeyFunc extracts a grouping key from a record. A nil key leaves the
// record out of the grouping.
type KeyFunc func(models.ResponseRecord) *string

// ByTopic groups records by topic.
func ByTopic(r models.ResponseRecord) *string { return r.Topic }

// ByDifficulty groups records by difficulty.
func ByDifficulty(r models.ResponseRecord) *string { return r.Difficulty }

// Aggregate summarizes records by topic and by difficulty, and computes the
// answer accuracy of every topic. It does not modify records.
func Aggregate(records models.RecordSet) models.Performance {
	return models.Performance{
		TopicPerformance:      Summarize(records, ByTopic),
		DifficultyPerformance: Summarize(records, ByDifficulty),
		AccuracyByTopic:       Accuracy(records),
	}
}

// Groups maps each key to the indices of its records, in record order.
type Groups struct {
	// Keys are sorted ascending.
	Keys    []string
	Members map[string][]int
}

// GroupBy runs the grouping pass.
func GroupBy(records models.RecordSet, key KeyFunc) Groups {
	g := Groups{Keys: []string{}, Members: make(map[string][]int)}
	for i, r := range records {
		k := key(r)
		if k == nil {
			continue
		}
		if _, seen := g.Members[*k]; !seen {
			g.Keys = append(g.Keys, *k)
		}
		g.Members[*k] = append(g.Members[*k], i)
	}
	slices.Sort(g.Keys)
	return g
}

// Summarize computes the mean score, record count and score spread of every
// group. Records without a numeric score count towards the group size but
// not towards the mean.
func Summarize(records models.RecordSet, key KeyFunc) []models.GroupSummary {
	groups := GroupBy(records, key)

	summaries := make([]models.GroupSummary, 0, len(groups.Keys))
	for _, k := range groups.Keys {
		members := groups.Members[k]
		var scores []float64
		for _, i := range members {
			if s := records[i].Score; s != nil && !math.IsNaN(*s) {
				scores = append(scores, *s)
			}
		}

		summary := models.GroupSummary{
			Key:       k,
			Count:     len(members),
			MeanScore: metrics.MeanOrNaN(scores),
			StdDev:    math.NaN(),
		}
		if len(scores) > 0 {
			summary.StdDev = metrics.StdDev(scores)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// Accuracy computes, per topic, the share of records whose selected option
// equals the correct option. A record missing either option is a miss. The
// accuracy of a topic is NaN when none of its records has a correct option.
func Accuracy(records models.RecordSet) []models.AccuracySummary {
	groups := GroupBy(records, ByTopic)

	summaries := make([]models.AccuracySummary, 0, len(groups.Keys))
	for _, k := range groups.Keys {
		members := groups.Members[k]
		correct := 0
		graded := false
		for _, i := range members {
			r := records[i]
			if r.CorrectOption != nil {
				graded = true
			}
			if r.AnsweredCorrectly() {
				correct++
			}
		}

		summary := models.AccuracySummary{
			Topic:    k,
			Accuracy: math.NaN(),
			Correct:  correct,
			Total:    len(members),
		}
		if graded {
			summary.Accuracy = metrics.Ratio(correct, len(members))
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
