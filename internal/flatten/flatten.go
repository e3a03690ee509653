// Package flatten turns the raw quiz-metadata and historical-submission
// documents into one uniform, ordered record set.
package flatten

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/quizlens/internal/jsonvalue"
	"github.com/spboyer/quizlens/internal/models"
	"github.com/spboyer/quizlens/internal/utils"
)

// Flatten builds the uniform record set: every quiz-metadata element in
// order, followed by one record per response of every submission.
//
// Quiz data that is not a list contributes no records. API data must be a
// list of submission objects or null.
func Flatten(quiz, api jsonvalue.Value) (models.RecordSet, error) {
	quizRecords, err := fromQuizMetadata(quiz)
	if err != nil {
		return nil, err
	}
	historical, err := fromSubmissions(api)
	if err != nil {
		return nil, err
	}

	slog.Debug("Flattened records", "quiz_records", len(quizRecords), "historical_records", len(historical))

	records := make(models.RecordSet, 0, len(quizRecords)+len(historical))
	records = append(records, quizRecords...)
	records = append(records, historical...)
	return records, nil
}

// fromQuizMetadata passes each element through field for field. Fields the
// element does not carry stay nil.
func fromQuizMetadata(quiz jsonvalue.Value) ([]models.ResponseRecord, error) {
	items, ok := quiz.AsList()
	if !ok {
		return nil, nil
	}

	records := make([]models.ResponseRecord, 0, len(items))
	for i, item := range items {
		if !item.IsMap() {
			return nil, &MalformedRecordError{
				Source: SourceQuiz,
				Index:  i,
				Reason: fmt.Sprintf("expected an object, got %s", item.Kind()),
			}
		}

		var rec models.ResponseRecord
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &rec,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(item.Interface()); err != nil {
			return nil, &MalformedRecordError{Source: SourceQuiz, Index: i, Reason: err.Error()}
		}
		records = append(records, rec)
	}
	return records, nil
}

func fromSubmissions(api jsonvalue.Value) ([]models.ResponseRecord, error) {
	if api.IsNull() {
		return nil, nil
	}
	submissions, ok := api.AsList()
	if !ok {
		return nil, &MalformedRecordError{
			Source: SourceAPI,
			Index:  -1,
			Reason: fmt.Sprintf("expected a list of submissions, got %s", api.Kind()),
		}
	}

	var records []models.ResponseRecord
	for i, item := range submissions {
		sub, ok := item.AsMap()
		if !ok {
			return nil, &MalformedRecordError{
				Source: SourceAPI,
				Index:  i,
				Reason: fmt.Sprintf("expected an object, got %s", item.Kind()),
			}
		}
		flattened, err := flattenSubmission(i, sub)
		if err != nil {
			return nil, err
		}
		records = append(records, flattened...)
	}
	return records, nil
}

// flattenSubmission emits one record per response map entry. Submission
// level fields are only resolved when there is at least one response, so a
// submission without answers never fails on its topics.
func flattenSubmission(index int, sub *jsonvalue.Object) ([]models.ResponseRecord, error) {
	responseMap := sub.GetOr("response_map", jsonvalue.Map(nil))
	if responseMap.IsNull() {
		return nil, nil
	}
	responses, ok := responseMap.AsMap()
	if !ok {
		return nil, malformed(index, "response_map", fmt.Sprintf("must be an object, got %s", responseMap.Kind()))
	}
	if responses.Len() == 0 {
		return nil, nil
	}

	quizID, err := optionalString(index, sub, "quiz_id", models.DefaultQuizID)
	if err != nil {
		return nil, err
	}
	userID, err := optionalString(index, sub, "user_id", models.DefaultUserID)
	if err != nil {
		return nil, err
	}
	topic, err := firstTopic(index, sub)
	if err != nil {
		return nil, err
	}
	difficulty, err := optionalString(index, sub, "difficulty", models.DefaultDifficulty)
	if err != nil {
		return nil, err
	}
	score, err := optionalScore(index, sub)
	if err != nil {
		return nil, err
	}

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		attrs := append([]any{"index", index, "responses", responses.Len()}, utils.RecordAttrs(
			utils.NamedField{Name: "quiz_id", Value: quizID},
			utils.NamedField{Name: "user_id", Value: userID},
			utils.NamedField{Name: "topic", Value: topic},
			utils.NamedField{Name: "difficulty", Value: difficulty},
		)...)
		slog.Debug("Flattening submission", attrs...)
	}

	records := make([]models.ResponseRecord, 0, responses.Len())
	for questionID, selected := range responses.All() {
		var selectedOption *string
		if !selected.IsNull() {
			s, ok := selected.Scalar()
			if !ok {
				return nil, malformed(index, "response_map", fmt.Sprintf("answer for %q must be a scalar, got %s", questionID, selected.Kind()))
			}
			selectedOption = utils.Ptr(s)
		}
		records = append(records, models.ResponseRecord{
			QuizID:         quizID,
			UserID:         userID,
			QuestionID:     utils.Ptr(questionID),
			SelectedOption: selectedOption,
			Topic:          topic,
			Difficulty:     difficulty,
			Score:          score,
		})
	}
	return records, nil
}

// optionalString reads a scalar field. An absent key yields def, an
// explicit null yields nil.
func optionalString(index int, sub *jsonvalue.Object, key, def string) (*string, error) {
	v := sub.GetOr(key, jsonvalue.String(def))
	if v.IsNull() {
		return nil, nil
	}
	s, ok := v.Scalar()
	if !ok {
		return nil, malformed(index, key, fmt.Sprintf("must be a scalar, got %s", v.Kind()))
	}
	return utils.Ptr(s), nil
}

// firstTopic returns the first element of the topics list, or the default
// topic when the key is absent.
func firstTopic(index int, sub *jsonvalue.Object) (*string, error) {
	v := sub.GetOr("topics", jsonvalue.List(jsonvalue.String(models.DefaultTopic)))
	topics, ok := v.AsList()
	if !ok {
		return nil, malformed(index, "topics", fmt.Sprintf("must be a list, got %s", v.Kind()))
	}
	if len(topics) == 0 {
		return nil, malformed(index, "topics", "is an empty list")
	}
	first := topics[0]
	if first.IsNull() {
		return nil, nil
	}
	s, ok := first.Scalar()
	if !ok {
		return nil, malformed(index, "topics", fmt.Sprintf("first element must be a scalar, got %s", first.Kind()))
	}
	return utils.Ptr(s), nil
}

// optionalScore reads the submission score. Numbers and numeric strings
// are accepted; an absent key yields the default score and null yields nil.
func optionalScore(index int, sub *jsonvalue.Object) (*float64, error) {
	v := sub.GetOr("score", jsonvalue.Number(models.DefaultScore))
	if v.IsNull() {
		return nil, nil
	}
	if n, ok := v.AsNumber(); ok {
		return utils.Ptr(n), nil
	}
	if s, ok := v.AsString(); ok {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return utils.Ptr(n), nil
		}
	}
	return nil, malformed(index, "score", fmt.Sprintf("must be a number, got %s", v.Kind()))
}

func malformed(index int, field, reason string) *MalformedRecordError {
	return &MalformedRecordError{Source: SourceAPI, Index: index, Field: field, Reason: reason}
}
