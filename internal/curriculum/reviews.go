// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curriculum

import (
	"context"
	"fmt"

	"github.com/pdiddy/curriculum-engine/internal/sentiment"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// ReviewReport is the analysis of one course's reviews.
type ReviewReport struct {
	CourseID   string                `json:"course_id" yaml:"course_id"`
	Reviews    []types.Review        `json:"reviews" yaml:"reviews"`
	Aggregate  *types.ReviewAnalysis `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Insights   sentiment.Insights    `json:"insights" yaml:"insights"`
	Suspicious []sentiment.Suspicion `json:"suspicious,omitempty" yaml:"suspicious,omitempty"`
}

// AnalyzeReviews fetches, analyzes and summarizes a course's reviews.
func (g *Generator) AnalyzeReviews(ctx context.Context, courseID string) (*ReviewReport, error) {
	if g.deps.Reviews == nil {
		return nil, fmt.Errorf("review provider required")
	}
	reviews, err := g.courseReviews(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("fetching reviews for %s: %w", courseID, err)
	}
	analyzed, err := g.deps.Analyzer.AnalyzeAll(ctx, reviews, g.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("analyzing reviews for %s: %w", courseID, err)
	}

	return &ReviewReport{
		CourseID:   courseID,
		Reviews:    analyzed,
		Aggregate:  g.deps.Analyzer.Aggregate(analyzed),
		Insights:   g.deps.Analyzer.Insights(courseID, analyzed, g.now()),
		Suspicious: g.deps.Analyzer.DetectSuspicious(analyzed),
	}, nil
}
