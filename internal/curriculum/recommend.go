// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curriculum

import (
	"context"
	"fmt"

	"github.com/pdiddy/curriculum-engine/internal/rank"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// DefaultRecommendations is the number of courses Recommend returns when
// the request leaves Limit unset.
const DefaultRecommendations = 20

// RecommendRequest asks for courses matching a learner's interests.
type RecommendRequest struct {
	Interests          []string
	Level              types.Difficulty
	Language           string
	Platforms          []string
	CompletedCourseIDs []string

	// MaxPrice bounds paid courses; free courses are always eligible.
	MaxPrice float64
	Limit    int
}

// Recommend ranks catalog courses for the given interests. Completed courses
// are excluded and their tags boost related courses.
func (g *Generator) Recommend(ctx context.Context, req RecommendRequest) ([]rank.Ranked, error) {
	if len(req.Interests) == 0 {
		return nil, fmt.Errorf("%w: at least one interest is required", ErrInvalidRequest)
	}
	if req.Level != "" && !req.Level.Valid() {
		return nil, fmt.Errorf("%w: unknown level %q", ErrInvalidRequest, req.Level)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultRecommendations
	}

	candidates, err := g.deps.Catalog.FindCourses(ctx, types.CatalogQuery{
		Keywords:   req.Interests,
		Difficulty: req.Level,
		Language:   req.Language,
		MaxResults: g.cfg.MaxCandidates,
	})
	if err != nil {
		return nil, fmt.Errorf("finding courses: %w", err)
	}

	enriched, reviews, err := g.enrich(ctx, candidates)
	if err != nil {
		return nil, err
	}

	return rank.Rank(ctx, enriched, rank.Filter{
		Difficulty:  req.Level,
		Language:    req.Language,
		IncludeFree: true,
		MaxPrice:    req.MaxPrice,
		Platforms:   req.Platforms,
		ExcludeIDs:  req.CompletedCourseIDs,
	}, g.affinity(ctx, req.CompletedCourseIDs), rank.Options{
		Workers: g.cfg.Workers,
		Cache:   g.deps.Cache,
		Reviews: reviews,
		Limit:   limit,
		Log:     g.deps.Log,
	})
}

// ComparePlatforms summarizes, per platform, the catalog courses on topic.
func (g *Generator) ComparePlatforms(ctx context.Context, topic string, level types.Difficulty, language string) ([]rank.PlatformStats, error) {
	courses, err := g.deps.Catalog.FindCourses(ctx, types.CatalogQuery{
		Keywords:   []string{topic},
		Difficulty: level,
		Language:   language,
		MaxResults: g.cfg.MaxCandidates,
	})
	if err != nil {
		return nil, fmt.Errorf("finding courses: %w", err)
	}
	return rank.ComparePlatforms(courses), nil
}
