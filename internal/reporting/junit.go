package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spboyer/quizlens/internal/models"
)

// JUnit XML schema types. Each topic becomes one test case that fails when
// the topic is a weak area or a performance gap, so CI dashboards can track
// study progress the same way they track tests.

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one analysis run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Timestamp  string          `xml:"timestamp,attr,omitempty"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one topic.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure explains why a topic needs attention.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a topic with nothing to evaluate.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

const junitClassname = "quizlens.topics"

// ConvertToJUnit converts an AnalysisResult to JUnit XML form.
func ConvertToJUnit(result *models.AnalysisResult) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name: reportTitle,
		Properties: []JUnitProperty{
			{Name: "run_id", Value: result.RunID},
			{Name: "records", Value: fmt.Sprint(result.RecordCount)},
			{Name: "overall_mean", Value: formatNumber(result.Insights.OverallMean)},
		},
	}
	if !result.GeneratedAt.IsZero() {
		suite.Timestamp = result.GeneratedAt.Format(time.RFC3339)
	}

	weak := make(map[string]models.GroupSummary, len(result.Insights.WeakAreas))
	for _, w := range result.Insights.WeakAreas {
		weak[w.Key] = w
	}
	gaps := make(map[string]models.AccuracySummary, len(result.Insights.PerformanceGaps))
	for _, g := range result.Insights.PerformanceGaps {
		gaps[g.Topic] = g
	}
	accuracy := make(map[string]models.AccuracySummary, len(result.Performance.AccuracyByTopic))
	for _, a := range result.Performance.AccuracyByTopic {
		accuracy[a.Topic] = a
	}

	for _, topic := range result.Performance.TopicPerformance {
		tc := JUnitTestCase{Name: topic.Key, Classname: junitClassname}

		var reasons []string
		if w, ok := weak[topic.Key]; ok {
			reasons = append(reasons, fmt.Sprintf("mean score %.2f is below the overall mean %.2f", w.MeanScore, result.Insights.OverallMean))
		}
		if g, ok := gaps[topic.Key]; ok {
			reasons = append(reasons, fmt.Sprintf("accuracy %.2f is below 0.50", g.Accuracy))
		}

		acc, hasAcc := accuracy[topic.Key]
		switch {
		case len(reasons) > 0:
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("%s needs attention", topic.Key),
				Type:    failureType(weak, gaps, topic.Key),
				Body:    strings.Join(reasons, "\n"),
			}
			suite.Failures++
		case math.IsNaN(topic.MeanScore) && (!hasAcc || !acc.Defined()):
			tc.Skipped = &JUnitSkipped{Message: "no scores or graded answers"}
			suite.Skipped++
		}

		suite.TestCases = append(suite.TestCases, tc)
	}
	suite.Tests = len(suite.TestCases)

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func failureType(weak map[string]models.GroupSummary, gaps map[string]models.AccuracySummary, topic string) string {
	_, isWeak := weak[topic]
	_, isGap := gaps[topic]
	switch {
	case isWeak && isGap:
		return "WeakAreaAndPerformanceGap"
	case isWeak:
		return "WeakArea"
	default:
		return "PerformanceGap"
	}
}

// WriteJUnitXML writes the JUnit XML document to w.
func WriteJUnitXML(w io.Writer, result *models.AnalysisResult) error {
	data, err := xml.MarshalIndent(ConvertToJUnit(result), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	output = append(output, '\n')
	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("writing JUnit XML: %w", err)
	}
	return nil
}
