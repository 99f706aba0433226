// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SentimentLabel is the categorical sentiment of a review.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
	SentimentNegative SentimentLabel = "NEGATIVE"
)

// KeywordCount is one entry of a review's keyword frequency list.
type KeywordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// SentimentAnalysis is the heuristic analysis of one review's text.
type SentimentAnalysis struct {
	// Score is the signed sentiment in [-1,1].
	Score float64 `json:"score" yaml:"score"`

	Label SentimentLabel `json:"label" yaml:"label"`

	// Confidence is a fixed constant for the keyword heuristic.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// AspectSentiments maps content, instructor, value and difficulty to a score in [-1,1].
	AspectSentiments map[string]float64 `json:"aspect_sentiments" yaml:"aspect_sentiments"`

	// Keywords holds the ten most frequent words, most frequent first.
	Keywords []KeywordCount `json:"keywords" yaml:"keywords"`
}

// Review is a learner's review of one course.
type Review struct {
	ID       string `json:"id" yaml:"id"`
	CourseID string `json:"course_id" yaml:"course_id"`
	UserID   string `json:"user_id" yaml:"user_id"`

	// Rating is the overall 1-5 rating.
	Rating int    `json:"rating" yaml:"rating"`
	Text   string `json:"text" yaml:"text"`

	// AspectRatings maps an aspect name to a 1-5 rating.
	AspectRatings map[string]int `json:"aspect_ratings,omitempty" yaml:"aspect_ratings,omitempty"`

	ReviewDate time.Time `json:"review_date" yaml:"review_date"`

	// Sentiment is nil when the review has no text or has not been analyzed.
	Sentiment *SentimentAnalysis `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
}
