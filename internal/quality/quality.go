// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality computes a course's composite quality score from its
// rating, review sentiment and lesson quality.
package quality

import "github.com/pdiddy/curriculum-engine/pkg/types"

// Component weights. They sum to 1, so a course with perfect signals scores 1.
const (
	RatingWeight    = 0.4
	SentimentWeight = 0.3
	ContentWeight   = 0.2

	// InstructorCredibility is the fixed baseline every course receives
	// until instructor data is available.
	InstructorCredibility = 0.1

	maxRating = 5.0
)

// Breakdown holds the weighted contribution of each score component.
type Breakdown struct {
	Rating       float64 `json:"rating" yaml:"rating"`
	Sentiment    float64 `json:"sentiment" yaml:"sentiment"`
	ContentDepth float64 `json:"content_depth" yaml:"content_depth"`
	Instructor   float64 `json:"instructor" yaml:"instructor"`
}

// Total returns the composite score.
func (b Breakdown) Total() float64 {
	return b.Rating + b.Sentiment + b.ContentDepth + b.Instructor
}

// Score returns the composite quality score of c. The result is not clamped.
func Score(c types.Course) float64 {
	return Explain(c).Total()
}

// Explain returns the per-component contributions to c's score.
func Explain(c types.Course) Breakdown {
	b := Breakdown{Instructor: InstructorCredibility}

	if c.TotalReviews > 0 {
		b.Rating = c.AverageRating / maxRating * RatingWeight
	}
	if c.ReviewAnalysis != nil {
		b.Sentiment = max(0, (c.ReviewAnalysis.SentimentScore+1)/2) * SentimentWeight
	}
	if avg, ok := lessonQuality(c.Modules); ok {
		b.ContentDepth = avg * ContentWeight
	}
	return b
}

// lessonQuality averages QualityScore over every lesson of every module.
func lessonQuality(modules []types.Module) (float64, bool) {
	var sum float64
	var n int
	for _, m := range modules {
		for _, l := range m.Lessons {
			sum += l.QualityScore
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
