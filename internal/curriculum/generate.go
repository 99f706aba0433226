// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curriculum

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/curriculum-engine/internal/compose"
	"github.com/pdiddy/curriculum-engine/internal/cost"
	"github.com/pdiddy/curriculum-engine/internal/rank"
	"github.com/pdiddy/curriculum-engine/internal/textgen"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

const defaultTitlePrefix = "Learning Path: "

// Generate builds a learning path for req and saves it when a PathStore is
// configured. A save failure is returned together with the composed path.
func (g *Generator) Generate(ctx context.Context, req Request) (*types.LearningPath, error) {
	return g.generate(ctx, req, defaultTitlePrefix, "")
}

// generate runs one path generation. A non-empty alternative names the preset
// the request came from and is recorded in the generation parameters.
func (g *Generator) generate(ctx context.Context, req Request, titlePrefix, alternative string) (*types.LearningPath, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	log := g.deps.Log.With("skill", req.SkillGoal, "level", string(req.TargetLevel))

	keywords := textgen.SkillKeywords(ctx, g.deps.Text, req.SkillGoal, log)
	candidates, err := g.deps.Catalog.FindCourses(ctx, types.CatalogQuery{
		Keywords:   keywords,
		Difficulty: req.TargetLevel,
		Language:   req.PreferredLanguage,
		MaxResults: g.cfg.MaxCandidates,
	})
	if err != nil {
		return nil, fmt.Errorf("finding candidate courses: %w", err)
	}
	log.Debug("fetched candidates", "keywords", len(keywords), "candidates", len(candidates))

	enriched, reviews, err := g.enrich(ctx, candidates)
	if err != nil {
		return nil, err
	}

	ranked, err := rank.Rank(ctx, enriched, rank.Filter{
		Difficulty:  req.TargetLevel,
		Language:    req.PreferredLanguage,
		IncludeFree: true,
		MaxPrice:    req.MaxBudget,
		Platforms:   req.PreferredPlatforms,
		ExcludeIDs:  req.CompletedCourseIDs,
	}, g.affinity(ctx, req.CompletedCourseIDs), rank.Options{
		Workers: g.cfg.Workers,
		Cache:   g.deps.Cache,
		Reviews: reviews,
		Log:     log,
	})
	if err != nil {
		return nil, fmt.Errorf("ranking courses: %w", err)
	}

	res := g.composer.Compose(rank.Courses(ranked), compose.Options{
		Budget:     req.MaxBudget,
		PreferFree: req.PreferFree,
		MaxPerStep: g.cfg.MaxPerStep,
	})
	if err := res.Validate(req.MaxBudget); err != nil {
		return nil, err
	}

	path := &types.LearningPath{
		ID:                     g.newID(),
		UserID:                 req.UserID,
		Title:                  titlePrefix + req.SkillGoal,
		Description:            textgen.PathDescription(ctx, g.deps.Text, req.SkillGoal, req.TargetLevel, req.Goals, log),
		SkillGoal:              req.SkillGoal,
		TargetLevel:            req.TargetLevel,
		PreferredPlatforms:     req.PreferredPlatforms,
		PreferredLanguage:      req.PreferredLanguage,
		Steps:                  res.Steps,
		EstimatedDurationHours: res.TotalHours,
		PathType:               compose.PathType(res.Selected),
		Status:                 types.PathDraft,
		Progress:               types.LearningProgress{TotalSteps: len(res.Steps)},
		CostAnalysis:           cost.Analyze(res.Steps, cost.FromCourses(res.Selected), g.cfg.Currency),
		Metadata: types.GenerationMetadata{
			Model:            g.cfg.Model,
			ConfidenceScore:  PathConfidence,
			GeneratedAt:      g.now().UTC(),
			GenerationParams: g.params(req, keywords, alternative),
		},
	}

	log.Info("generated learning path",
		"path", path.ID, "steps", len(path.Steps), "courses", path.CourseCount(),
		"spend", res.Spend, "budget", req.MaxBudget)

	if g.deps.Store != nil {
		if err := g.deps.Store.SavePath(ctx, path); err != nil {
			return path, fmt.Errorf("saving learning path: %w", err)
		}
	}
	return path, nil
}

func (g *Generator) params(req Request, keywords []string, alternative string) map[string]string {
	params := map[string]string{
		"skill_goal":          req.SkillGoal,
		"target_level":        string(req.TargetLevel),
		"max_budget":          strconv.FormatFloat(req.MaxBudget, 'f', 2, 64),
		"prefer_free":         strconv.FormatBool(req.PreferFree),
		"preferred_platforms": strings.Join(req.PreferredPlatforms, ","),
		"preferred_language":  req.PreferredLanguage,
		"keywords":            strings.Join(keywords, ","),
		"lexicon_version":     g.deps.Analyzer.Lexicon().Version,
		"stage_rules_version": g.deps.Classifier.Version(),
	}
	if alternative != "" {
		params["alternative"] = alternative
	}
	return params
}

// enrich attaches a review aggregate to each candidate that has analyzable
// reviews. It returns new course values and the reviews used per course.
// A failed review fetch is logged and the course is scored without sentiment.
func (g *Generator) enrich(ctx context.Context, courses []types.Course) ([]types.Course, map[string][]types.Review, error) {
	out := make([]types.Course, len(courses))
	copy(out, courses)
	if g.deps.Reviews == nil {
		return out, nil, nil
	}

	perCourse := make([][]types.Review, len(out))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for i := range out {
		eg.Go(func() error {
			reviews, err := g.courseReviews(gctx, out[i].ID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				g.deps.Log.Warn("review fetch failed, scoring without sentiment", "course", out[i].ID, "error", err)
				return nil
			}
			analyzed, err := g.deps.Analyzer.AnalyzeAll(gctx, reviews, 1)
			if err != nil {
				return err
			}
			perCourse[i] = analyzed
			if agg := g.deps.Analyzer.Aggregate(analyzed); agg != nil {
				out[i].ReviewAnalysis = agg
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("analyzing reviews: %w", err)
	}

	byID := make(map[string][]types.Review, len(out))
	for i, c := range out {
		byID[c.ID] = perCourse[i]
	}
	return out, byID, nil
}

// courseReviews fetches reviews and drops any that belong to another course.
func (g *Generator) courseReviews(ctx context.Context, courseID string) ([]types.Review, error) {
	reviews, err := g.deps.Reviews.ReviewsForCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	kept := reviews[:0:0]
	for _, r := range reviews {
		if r.CourseID != courseID {
			g.deps.Log.Warn("dropping review for another course", "course", courseID, "review", r.ID, "review_course", r.CourseID)
			continue
		}
		kept = append(kept, r)
	}
	return kept, nil
}

// affinity builds the tag affinity of the learner's completed courses. It is
// empty when no lookup is configured or the lookup fails.
func (g *Generator) affinity(ctx context.Context, completedIDs []string) rank.Affinity {
	if g.deps.Lookup == nil || len(completedIDs) == 0 {
		return nil
	}
	completed, err := g.deps.Lookup.CoursesByID(ctx, completedIDs)
	if err != nil {
		g.deps.Log.Warn("completed course lookup failed, ranking without affinity", "error", err)
		return nil
	}
	return rank.BuildAffinity(completed)
}
