package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spboyer/quizlens/internal/models"
)

// Format names an output format for an analysis report.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatXLSX     Format = "xlsx"
	FormatJUnit    Format = "junit"
)

var formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatHTML, FormatXLSX, FormatJUnit}

// Formats lists the supported format names in display order.
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat maps a user-supplied name to a Format. Matching ignores case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(formats, f) {
		return "", fmt.Errorf("unsupported format %q (expected one of %s)", name, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// Write renders result to w in the given format.
func Write(w io.Writer, result *models.AnalysisResult, format Format) error {
	if result == nil {
		return fmt.Errorf("no analysis result to report")
	}

	switch format {
	case FormatText:
		return writeString(w, FormatTextReport(result))
	case FormatJSON:
		return writeJSON(w, result)
	case FormatMarkdown:
		return writeString(w, FormatMarkdownReport(result))
	case FormatHTML:
		return WriteHTML(w, result)
	case FormatXLSX:
		return WriteXLSX(w, result)
	case FormatJUnit:
		return WriteJUnitXML(w, result)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeJSON(w io.Writer, result *models.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
