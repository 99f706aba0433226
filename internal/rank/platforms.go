// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import "github.com/pdiddy/curriculum-engine/pkg/types"

// PlatformStats summarizes the courses one platform offers for a topic.
type PlatformStats struct {
	Platform    string `json:"platform" yaml:"platform"`
	CourseCount int    `json:"course_count" yaml:"course_count"`

	// AverageRating is taken over courses that have at least one review.
	AverageRating float64 `json:"average_rating" yaml:"average_rating"`

	// AveragePrice is taken over paid courses only.
	AveragePrice float64 `json:"average_price" yaml:"average_price"`

	FreeCount     int `json:"free_count" yaml:"free_count"`
	TotalDuration int `json:"total_duration" yaml:"total_duration"`
}

// ComparePlatforms groups courses by platform, in first-seen order.
func ComparePlatforms(courses []types.Course) []PlatformStats {
	idx := make(map[string]int)
	var out []PlatformStats
	ratingSum := make(map[string]float64)
	rated := make(map[string]int)
	priceSum := make(map[string]float64)
	paid := make(map[string]int)

	for _, c := range courses {
		i, ok := idx[c.Platform]
		if !ok {
			i = len(out)
			idx[c.Platform] = i
			out = append(out, PlatformStats{Platform: c.Platform})
		}
		s := &out[i]
		s.CourseCount++
		s.TotalDuration += c.TotalDuration
		if c.TotalReviews > 0 {
			ratingSum[c.Platform] += c.AverageRating
			rated[c.Platform]++
		}
		if c.Pricing.IsFree {
			s.FreeCount++
		} else {
			priceSum[c.Platform] += c.Pricing.Price
			paid[c.Platform]++
		}
	}

	for i := range out {
		p := out[i].Platform
		if rated[p] > 0 {
			out[i].AverageRating = ratingSum[p] / float64(rated[p])
		}
		if paid[p] > 0 {
			out[i].AveragePrice = priceSum[p] / float64(paid[p])
		}
	}
	return out
}
