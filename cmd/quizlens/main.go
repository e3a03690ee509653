package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spboyer/quizlens/internal/flatten"
	"github.com/spboyer/quizlens/internal/loader"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Analysis completed
	ExitDataLoad  = 1 // An input document could not be read, parsed or validated
	ExitMalformed = 2 // An input document has the wrong shape
	ExitError     = 3 // Configuration or runtime error
)

// ValidationFailedError indicates that validate ran, but one or more
// documents did not pass.
type ValidationFailedError struct {
	Failed int
}

func (e *ValidationFailedError) Error() string {
	if e.Failed == 1 {
		return "1 document failed validation"
	}
	return fmt.Sprintf("%d documents failed validation", e.Failed)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var malformed *flatten.MalformedRecordError
	if errors.As(err, &malformed) {
		return ExitMalformed
	}

	var dataLoad *loader.DataLoadError
	if errors.As(err, &dataLoad) {
		return ExitDataLoad
	}

	var failed *ValidationFailedError
	if errors.As(err, &failed) {
		return ExitDataLoad
	}

	// All other errors are configuration/runtime errors
	return ExitError
}
