// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package curriculum orchestrates learning path generation: it fetches
// candidates from the catalog, scores them with review sentiment, ranks and
// stages them, composes a budget-bounded path and hands it to persistence.
package curriculum

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/curriculum-engine/internal/compose"
	"github.com/pdiddy/curriculum-engine/internal/logger"
	"github.com/pdiddy/curriculum-engine/internal/quality"
	"github.com/pdiddy/curriculum-engine/internal/sentiment"
	"github.com/pdiddy/curriculum-engine/internal/stage"
	"github.com/pdiddy/curriculum-engine/internal/textgen"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// ErrInvalidRequest is wrapped by every request validation error.
var ErrInvalidRequest = errors.New("invalid request")

// PathConfidence is the confidence recorded in generated path metadata.
const PathConfidence = 0.85

// CatalogProvider supplies candidate courses.
type CatalogProvider interface {
	FindCourses(ctx context.Context, q types.CatalogQuery) ([]types.Course, error)
}

// ReviewProvider supplies a course's reviews.
type ReviewProvider interface {
	ReviewsForCourse(ctx context.Context, courseID string) ([]types.Review, error)
}

// CourseLookup resolves course IDs, used to build affinity from completed courses.
type CourseLookup interface {
	CoursesByID(ctx context.Context, ids []string) ([]types.Course, error)
}

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PathStore persists generated paths.
type PathStore interface {
	SavePath(ctx context.Context, p *types.LearningPath) error
}

// Deps are the collaborators of a Generator. Only Catalog is required.
type Deps struct {
	Catalog CatalogProvider
	Reviews ReviewProvider
	Lookup  CourseLookup
	Text    TextGenerator
	Store   PathStore

	Analyzer   *sentiment.Analyzer
	Classifier *stage.Classifier
	Cache      quality.Cache
	Log        *logger.Logger
}

// Config holds generation defaults.
type Config struct {
	// Currency labels cost analyses (default "USD").
	Currency string

	// MaxPerStep caps courses per step (default 3).
	MaxPerStep int

	// Workers bounds concurrent review analysis and scoring (default 4).
	Workers int

	// MaxCandidates bounds the catalog query. Zero uses the catalog default.
	MaxCandidates int

	// Model is recorded in path metadata.
	Model string
}

// Generator builds learning paths.
type Generator struct {
	deps Deps
	cfg  Config

	composer *compose.Composer
	now      func() time.Time
	newID    func() string
}

// New returns a Generator. It fails when no catalog is supplied.
func New(deps Deps, cfg Config) (*Generator, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog provider required")
	}
	if deps.Analyzer == nil {
		deps.Analyzer = sentiment.Default()
	}
	if deps.Classifier == nil {
		deps.Classifier = stage.Default()
	}
	deps.Log = logger.OrNop(deps.Log)

	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.MaxPerStep <= 0 {
		cfg.MaxPerStep = compose.DefaultMaxPerStep
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Model == "" {
		cfg.Model = textgen.DefaultModel
	}

	return &Generator{
		deps:     deps,
		cfg:      cfg,
		composer: compose.New(deps.Classifier, deps.Log),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}, nil
}

// Request describes the path a learner wants.
type Request struct {
	UserID             string           `json:"user_id" yaml:"user_id"`
	SkillGoal          string           `json:"skill_goal" yaml:"skill_goal"`
	TargetLevel        types.Difficulty `json:"target_level" yaml:"target_level"`
	Goals              string           `json:"goals,omitempty" yaml:"goals,omitempty"`
	PreferredPlatforms []string         `json:"preferred_platforms,omitempty" yaml:"preferred_platforms,omitempty"`
	PreferredLanguage  string           `json:"preferred_language,omitempty" yaml:"preferred_language,omitempty"`

	// MaxBudget is the most the learner will pay. Zero requires PreferFree.
	MaxBudget  float64 `json:"max_budget" yaml:"max_budget"`
	PreferFree bool    `json:"prefer_free" yaml:"prefer_free"`

	// CompletedCourseIDs are excluded from the path and drive the affinity boost.
	CompletedCourseIDs []string `json:"completed_course_ids,omitempty" yaml:"completed_course_ids,omitempty"`
}

// Validate reports the first problem with r, wrapping ErrInvalidRequest.
func (r Request) Validate() error {
	switch {
	case strings.TrimSpace(r.SkillGoal) == "":
		return fmt.Errorf("%w: skill goal is required", ErrInvalidRequest)
	case r.TargetLevel == "":
		return fmt.Errorf("%w: target level is required", ErrInvalidRequest)
	case !r.TargetLevel.Valid():
		return fmt.Errorf("%w: unknown target level %q", ErrInvalidRequest, r.TargetLevel)
	case r.MaxBudget < 0:
		return fmt.Errorf("%w: budget %.2f is negative", ErrInvalidRequest, r.MaxBudget)
	case r.MaxBudget == 0 && !r.PreferFree:
		return fmt.Errorf("%w: a zero budget requires prefer-free", ErrInvalidRequest)
	}
	return nil
}
