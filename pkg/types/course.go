// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the curriculum-engine pipeline.
// Courses and reviews are read-only snapshots supplied by the catalog; learning
// paths are produced by the composer and handed to a persistence collaborator.
package types

import "fmt"

// Difficulty is the course difficulty level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
	DifficultyExpert       Difficulty = "EXPERT"
)

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	default:
		return false
	}
}

// ParseDifficulty converts a case-sensitive level name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q: use BEGINNER, INTERMEDIATE, ADVANCED or EXPERT", s)
	}
	return d, nil
}

// CourseStatus is the publication status of a course in the catalog.
// Only ACTIVE courses are eligible for ranking.
type CourseStatus string

const (
	StatusActive      CourseStatus = "ACTIVE"
	StatusInactive    CourseStatus = "INACTIVE"
	StatusUnderReview CourseStatus = "UNDER_REVIEW"
	StatusDeprecated  CourseStatus = "DEPRECATED"
)

// Valid reports whether s is one of the known statuses.
func (s CourseStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusUnderReview, StatusDeprecated:
		return true
	default:
		return false
	}
}

// Pricing describes what a course costs. IsFree takes precedence over Price:
// a course flagged free costs nothing even if a price is recorded.
type Pricing struct {
	IsFree   bool    `json:"is_free" yaml:"is_free"`
	Price    float64 `json:"price" yaml:"price"`
	Currency string  `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Cost returns the amount a learner pays for the course.
func (p Pricing) Cost() float64 {
	if p.IsFree {
		return 0
	}
	return p.Price
}

// Lesson is a single unit inside a course module.
type Lesson struct {
	Title string `json:"title" yaml:"title"`

	// Duration is the lesson length in minutes.
	Duration int `json:"duration" yaml:"duration"`

	// QualityScore is a per-lesson quality signal in [0,1] supplied by the catalog.
	QualityScore float64 `json:"quality_score" yaml:"quality_score"`
}

// Module groups lessons of a course.
type Module struct {
	Title   string   `json:"title" yaml:"title"`
	Lessons []Lesson `json:"lessons" yaml:"lessons"`
}

// ReviewAnalysis is the course-level aggregate derived from its reviews.
type ReviewAnalysis struct {
	// SentimentScore is the mean sentiment of analyzed reviews, in [-1,1].
	SentimentScore float64 `json:"sentiment_score" yaml:"sentiment_score"`

	// TopicMentions counts reviews mentioning each tracked topic.
	TopicMentions map[string]int `json:"topic_mentions,omitempty" yaml:"topic_mentions,omitempty"`

	// AspectRatings averages the explicit 1-5 aspect ratings of reviews.
	AspectRatings map[string]float64 `json:"aspect_ratings,omitempty" yaml:"aspect_ratings,omitempty"`

	// CommonComplaints and CommonPraises are the top themes of negative and
	// positive reviews.
	CommonComplaints []string `json:"common_complaints,omitempty" yaml:"common_complaints,omitempty"`
	CommonPraises    []string `json:"common_praises,omitempty" yaml:"common_praises,omitempty"`

	// AnalyzedReviews is the number of reviews that carried a sentiment analysis.
	AnalyzedReviews int `json:"analyzed_reviews" yaml:"analyzed_reviews"`
}

// Course is a catalog snapshot of one third-party course.
type Course struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Platform string   `json:"platform" yaml:"platform"`
	Category string   `json:"category" yaml:"category"`
	Tags     []string `json:"tags" yaml:"tags"`

	Difficulty Difficulty   `json:"difficulty" yaml:"difficulty"`
	Status     CourseStatus `json:"status" yaml:"status"`
	Language   string       `json:"language" yaml:"language"`

	// TotalDuration is the course length in minutes.
	TotalDuration int `json:"total_duration" yaml:"total_duration"`

	Pricing Pricing `json:"pricing" yaml:"pricing"`

	// AverageRating is the aggregate rating on a 0-5 scale.
	AverageRating float64 `json:"average_rating" yaml:"average_rating"`
	TotalReviews  int     `json:"total_reviews" yaml:"total_reviews"`

	Modules []Module `json:"modules,omitempty" yaml:"modules,omitempty"`

	// ReviewAnalysis is nil until the course's reviews have been aggregated.
	ReviewAnalysis *ReviewAnalysis `json:"review_analysis,omitempty" yaml:"review_analysis,omitempty"`
}

// CatalogQuery selects candidate courses from the catalog.
type CatalogQuery struct {
	// Keywords match course titles, categories and tags; any keyword matches.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Difficulty and Language narrow the result when set.
	Difficulty Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Language   string     `json:"language,omitempty" yaml:"language,omitempty"`

	// MaxResults limits the result count. Zero uses the store default.
	MaxResults int `json:"max_results,omitempty" yaml:"max_results,omitempty"`
}
