package flatten

import "fmt"

// Sources of malformed data.
const (
	SourceQuiz = "quiz"
	SourceAPI  = "api"
)

// MalformedRecordError reports input that cannot be turned into response
// records, such as a submission whose topics list is empty.
type MalformedRecordError struct {
	Source string
	// Index is the position of the offending element, or -1 when the
	// document as a whole has the wrong shape.
	Index  int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("malformed %s data: %s", e.Source, e.Reason)
	case e.Field == "":
		return fmt.Sprintf("malformed %s record %d: %s", e.Source, e.Index, e.Reason)
	default:
		return fmt.Sprintf("malformed %s record %d: field %q %s", e.Source, e.Index, e.Field, e.Reason)
	}
}
