// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentiment

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// Trend describes how recent ratings compare to the overall average.
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

const (
	recentWindow     = 30 * 24 * time.Hour
	minRecentReviews = 5
	trendMargin      = 0.2

	// SuspicionThreshold is the score at which a review is flagged.
	SuspicionThreshold = 3
)

// Insights summarizes the reviews of one course.
type Insights struct {
	CourseID      string  `json:"course_id" yaml:"course_id"`
	TotalReviews  int     `json:"total_reviews" yaml:"total_reviews"`
	AverageRating float64 `json:"average_rating" yaml:"average_rating"`

	RatingDistribution    map[int]int                  `json:"rating_distribution" yaml:"rating_distribution"`
	SentimentDistribution map[types.SentimentLabel]int `json:"sentiment_distribution" yaml:"sentiment_distribution"`

	PositiveThemes []string           `json:"positive_themes" yaml:"positive_themes"`
	NegativeThemes []string           `json:"negative_themes" yaml:"negative_themes"`
	AspectAverages map[string]float64 `json:"aspect_averages" yaml:"aspect_averages"`

	RecentTrend Trend `json:"recent_trend" yaml:"recent_trend"`
}

// Insights computes review analytics for a course as of now. Reviews without
// a sentiment analysis count toward ratings but not sentiment.
func (a *Analyzer) Insights(courseID string, reviews []types.Review, now time.Time) Insights {
	ins := Insights{
		CourseID:              courseID,
		TotalReviews:          len(reviews),
		RatingDistribution:    make(map[int]int),
		SentimentDistribution: make(map[types.SentimentLabel]int),
		PositiveThemes:        a.Themes(reviews, types.SentimentPositive),
		NegativeThemes:        a.Themes(reviews, types.SentimentNegative),
		AspectAverages:        AspectAverages(reviews),
	}
	for _, r := range reviews {
		ins.RatingDistribution[r.Rating]++
		if r.Sentiment != nil {
			ins.SentimentDistribution[r.Sentiment.Label]++
		}
	}
	ins.AverageRating = averageRating(reviews)
	ins.RecentTrend = RecentTrend(reviews, now)
	return ins
}

// RecentTrend compares the average rating of reviews from the last 30 days
// with the overall average. Fewer than five recent reviews is not enough to
// call a trend.
func RecentTrend(reviews []types.Review, now time.Time) Trend {
	cutoff := now.Add(-recentWindow)
	var recent []types.Review
	for _, r := range reviews {
		if r.ReviewDate.After(cutoff) {
			recent = append(recent, r)
		}
	}
	if len(recent) < minRecentReviews {
		return TrendInsufficientData
	}

	recentAvg := averageRating(recent)
	overall := averageRating(reviews)
	switch {
	case recentAvg > overall+trendMargin:
		return TrendImproving
	case recentAvg < overall-trendMargin:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func averageRating(reviews []types.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// Suspicion is a review flagged as likely low quality or fake.
type Suspicion struct {
	ReviewID string   `json:"review_id" yaml:"review_id"`
	Score    int      `json:"score" yaml:"score"`
	Reasons  []string `json:"reasons" yaml:"reasons"`
}

// DetectSuspicious flags reviews whose suspicion score reaches
// SuspicionThreshold. Short or generic text scores 2, an extreme rating with
// little or no text scores 3, and a user reviewing more than once on the same
// calendar day scores 2. Results keep input order.
func (a *Analyzer) DetectSuspicious(reviews []types.Review) []Suspicion {
	perUserDay := make(map[string]int)
	for _, r := range reviews {
		perUserDay[userDayKey(r)]++
	}

	var out []Suspicion
	for _, r := range reviews {
		var s Suspicion
		textLen := utf8.RuneCountInString(r.Text)

		if textLen < 20 || a.isGeneric(r.Text) {
			s.Score += 2
			s.Reasons = append(s.Reasons, "short or generic text")
		}
		if (r.Rating == 5 || r.Rating == 1) && textLen < 30 {
			s.Score += 3
			s.Reasons = append(s.Reasons, "extreme rating without explanation")
		}
		if r.UserID != "" && perUserDay[userDayKey(r)] > 1 {
			s.Score += 2
			s.Reasons = append(s.Reasons, "multiple reviews by the same user on one day")
		}

		if s.Score >= SuspicionThreshold {
			s.ReviewID = r.ID
			out = append(out, s)
		}
	}
	return out
}

func (a *Analyzer) isGeneric(text string) bool {
	if utf8.RuneCountInString(text) >= 50 {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range a.lex.GenericPhrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func userDayKey(r types.Review) string {
	return r.UserID + "|" + r.ReviewDate.UTC().Format(time.DateOnly)
}

// PredictHelpfulness estimates in [0,1] how useful a review is to other
// learners. Long text and explicit aspect ratings raise the estimate, as does
// a 3 or 4 star rating.
func PredictHelpfulness(r types.Review) float64 {
	var score float64
	n := utf8.RuneCountInString(r.Text)
	if n > 100 {
		score += 0.3
	}
	if n > 300 {
		score += 0.2
	}
	if r.Rating == 3 || r.Rating == 4 {
		score += 0.2
	}
	if len(r.AspectRatings) > 0 {
		score += 0.3
	}
	return min(score, 1.0)
}
