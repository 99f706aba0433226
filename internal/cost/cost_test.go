// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

var catalog = []types.Course{
	{ID: "free-priced", Platform: "YouTube", Pricing: types.Pricing{IsFree: true, Price: 49.99}},
	{ID: "u1", Platform: "Udemy", Pricing: types.Pricing{Price: 19.99}},
	{ID: "c1", Platform: "Coursera", Pricing: types.Pricing{Price: 49}},
	{ID: "u2", Platform: "Udemy", Pricing: types.Pricing{Price: 10}},
}

func TestAnalyzeFreeWinsOverPrice(t *testing.T) {
	steps := []types.LearningPathStep{{CourseIDs: []string{"free-priced"}}}
	got := Analyze(steps, FromCourses(catalog), "USD")

	assert.Zero(t, got.TotalCost)
	assert.Zero(t, got.PaidCost)
	assert.Zero(t, got.FreeCost)
	assert.Empty(t, got.PlatformBreakdown)
	assert.True(t, got.HasAlternativeFreeOption)
	assert.Equal(t, "USD", got.Currency)
}

func TestAnalyzeBreakdown(t *testing.T) {
	steps := []types.LearningPathStep{
		{CourseIDs: []string{"u1", "c1"}},
		{CourseIDs: []string{"free-priced", "u2", "missing"}},
	}
	got := Analyze(steps, FromCourses(catalog), "EUR")

	assert.InDelta(t, 78.99, got.TotalCost, 1e-9)
	assert.InDelta(t, 78.99, got.PaidCost, 1e-9)
	assert.Equal(t, []string{"Udemy", "Coursera"}, []string{got.PlatformBreakdown[0].Platform, got.PlatformBreakdown[1].Platform})
	assert.InDelta(t, 29.99, got.PlatformBreakdown[0].Cost, 1e-9)
	assert.Equal(t, 2, got.PlatformBreakdown[0].CourseCount)
	assert.Equal(t, 1, got.PlatformBreakdown[1].CourseCount)
	assert.True(t, got.HasAlternativeFreeOption)

	var sum float64
	for _, p := range got.PlatformBreakdown {
		sum += p.Cost
	}
	assert.InDelta(t, got.PaidCost, sum, 1e-9)
}

func TestAnalyzeAllPaid(t *testing.T) {
	steps := []types.LearningPathStep{{CourseIDs: []string{"c1"}}}
	got := Analyze(steps, FromCourses(catalog), "USD")
	assert.False(t, got.HasAlternativeFreeOption)
	assert.Equal(t, 49.0, got.TotalCost)
}

func TestAnalyzeEmpty(t *testing.T) {
	got := Analyze(nil, FromCourses(nil), "USD")
	assert.Equal(t, types.CostAnalysis{Currency: "USD"}, got)
}
