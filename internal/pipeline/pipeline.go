// Package pipeline runs the analysis stages in order: load, flatten,
// aggregate, detect insights, recommend.
package pipeline

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spboyer/quizlens/internal/aggregate"
	"github.com/spboyer/quizlens/internal/flatten"
	"github.com/spboyer/quizlens/internal/insight"
	"github.com/spboyer/quizlens/internal/loader"
	"github.com/spboyer/quizlens/internal/models"
	"github.com/spboyer/quizlens/internal/recommend"
)

//go:generate go tool mockgen -source=pipeline.go -destination=source_mock_test.go -package=pipeline

// Source supplies the parsed input documents.
type Source interface {
	Load() (*loader.Documents, error)
}

// Analyzer runs the pipeline against a [Source]. It holds no state between
// runs and may be reused.
type Analyzer struct {
	source Source
	engine *recommend.Engine
	now    func() time.Time
	newID  func() string
}

// Option configures an [Analyzer].
type Option func(*Analyzer)

// WithClock overrides the clock used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// WithRunID overrides the generator of result run IDs.
func WithRunID(newID func() string) Option {
	return func(a *Analyzer) { a.newID = newID }
}

// New creates an analyzer reading from source.
func New(source Source, opts ...Option) *Analyzer {
	a := &Analyzer{
		source: source,
		engine: recommend.NewEngine(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeFiles loads the three documents from disk and analyses them.
func AnalyzeFiles(paths loader.Paths, opts ...loader.Option) (*models.AnalysisResult, error) {
	return New(loader.FileSource{Paths: paths, Options: opts}).Run()
}

// Run loads the documents and analyses them. Load errors are returned
// unchanged.
func (a *Analyzer) Run() (*models.AnalysisResult, error) {
	if a.source == nil {
		return nil, errors.New("pipeline: no source configured")
	}
	docs, err := a.source.Load()
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = &loader.Documents{}
	}
	return a.Analyze(docs)
}

// Analyze runs every stage after loading on already parsed documents.
func (a *Analyzer) Analyze(docs *loader.Documents) (*models.AnalysisResult, error) {
	records, err := flatten.Flatten(docs.Quiz, docs.API)
	if err != nil {
		return nil, err
	}

	perf := aggregate.Aggregate(records)
	insights := insight.Detect(perf)
	recommendations := a.engine.Recommend(insights)

	slog.Debug("Analysis complete",
		"records", len(records),
		"topics", len(perf.TopicPerformance),
		"difficulties", len(perf.DifficultyPerformance),
		"weak_areas", len(insights.WeakAreas),
		"performance_gaps", len(insights.PerformanceGaps))

	return &models.AnalysisResult{
		RunID:           a.newID(),
		Performance:     perf,
		Insights:        insights,
		Recommendations: recommendations,
		RecordCount:     len(records),
		GeneratedAt:     a.now().UTC(),
	}, nil
}
