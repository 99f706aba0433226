// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cost summarizes what a composed learning path costs.
package cost

import "github.com/pdiddy/curriculum-engine/pkg/types"

// Lookup resolves a course ID to its snapshot.
type Lookup func(id string) (types.Course, bool)

// FromCourses returns a Lookup over courses. The first course with a given ID wins.
func FromCourses(courses []types.Course) Lookup {
	byID := make(map[string]types.Course, len(courses))
	for _, c := range courses {
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = c
		}
	}
	return func(id string) (types.Course, bool) {
		c, ok := byID[id]
		return c, ok
	}
}

// Analyze totals the cost of the courses selected in steps. Free courses cost
// nothing even when a price is recorded. Paid courses are attributed to their
// platform in first-seen order. IDs the lookup cannot resolve are skipped.
func Analyze(steps []types.LearningPathStep, lookup Lookup, currency string) types.CostAnalysis {
	ca := types.CostAnalysis{Currency: currency}
	idx := make(map[string]int)

	for _, step := range steps {
		for _, id := range step.CourseIDs {
			c, ok := lookup(id)
			if !ok {
				continue
			}
			if c.Pricing.IsFree {
				ca.HasAlternativeFreeOption = true
				continue
			}

			price := c.Pricing.Price
			ca.TotalCost += price
			ca.PaidCost += price

			i, seen := idx[c.Platform]
			if !seen {
				i = len(ca.PlatformBreakdown)
				idx[c.Platform] = i
				ca.PlatformBreakdown = append(ca.PlatformBreakdown, types.PlatformCost{Platform: c.Platform})
			}
			ca.PlatformBreakdown[i].Cost += price
			ca.PlatformBreakdown[i].CourseCount++
		}
	}
	return ca
}
