package models

// Defaults substituted for fields missing from a historical submission.
const (
	DefaultQuizID     = "unknown"
	DefaultUserID     = "unknown"
	DefaultTopic      = "Unknown"
	DefaultDifficulty = "Medium"
	DefaultScore      = 0.0
)

// ResponseRecord is one answered question in the uniform record set.
// A nil field means the source did not carry it, which is different from
// an empty value.
type ResponseRecord struct {
	QuizID         *string  `json:"quiz_id,omitempty" mapstructure:"quiz_id"`
	UserID         *string  `json:"user_id,omitempty" mapstructure:"user_id"`
	QuestionID     *string  `json:"question_id,omitempty" mapstructure:"question_id"`
	SelectedOption *string  `json:"selected_option,omitempty" mapstructure:"selected_option"`
	Topic          *string  `json:"topic,omitempty" mapstructure:"topic"`
	Difficulty     *string  `json:"difficulty,omitempty" mapstructure:"difficulty"`
	Score          *float64 `json:"score,omitempty" mapstructure:"score"`
	CorrectOption  *string  `json:"correct_option,omitempty" mapstructure:"correct_option"`

	// Extra holds any other keys of a quiz-metadata element.
	Extra map[string]any `json:"extra,omitempty" mapstructure:",remain"`
}

// AnsweredCorrectly reports whether both the selected and the correct
// option are known and equal.
func (r ResponseRecord) AnsweredCorrectly() bool {
	if r.SelectedOption == nil || r.CorrectOption == nil {
		return false
	}
	return *r.SelectedOption == *r.CorrectOption
}

// RecordSet is the ordered uniform record set: quiz-metadata records
// first, then flattened historical records.
type RecordSet []ResponseRecord
