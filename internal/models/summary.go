package models

import (
	"encoding/json"
	"math"
)

// GroupSummary holds score statistics for one value of a grouping field
// (a topic or a difficulty).
type GroupSummary struct {
	Key string
	// MeanScore is NaN when no record of the group has a numeric score.
	MeanScore float64
	Count     int
	// StdDev is the population standard deviation of the numeric scores.
	StdDev float64
}

func (g GroupSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key       string   `json:"key"`
		MeanScore *float64 `json:"mean_score"`
		Count     int      `json:"count"`
		StdDev    *float64 `json:"std_dev"`
	}{g.Key, optional(g.MeanScore), g.Count, optional(g.StdDev)})
}

// AccuracySummary is the share of correctly answered records in a topic.
type AccuracySummary struct {
	Topic string
	// Accuracy is NaN when no record of the topic carries a correct option.
	Accuracy float64
	Correct  int
	Total    int
}

// Defined reports whether the accuracy could be computed.
func (a AccuracySummary) Defined() bool {
	return !math.IsNaN(a.Accuracy)
}

func (a AccuracySummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Topic    string   `json:"topic"`
		Accuracy *float64 `json:"accuracy"`
		Correct  int      `json:"correct"`
		Total    int      `json:"total"`
	}{a.Topic, optional(a.Accuracy), a.Correct, a.Total})
}

// Performance is the output of the aggregation stage.
type Performance struct {
	TopicPerformance      []GroupSummary    `json:"topic_performance"`
	DifficultyPerformance []GroupSummary    `json:"difficulty_performance"`
	AccuracyByTopic       []AccuracySummary `json:"accuracy_by_topic"`
}

// optional maps NaN and infinities to nil so they encode as JSON null.
func optional(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
