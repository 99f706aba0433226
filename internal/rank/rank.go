// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank filters candidate courses and orders them by quality score,
// optionally boosted by a learner's topic affinity.
package rank

import (
	"context"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/curriculum-engine/internal/logger"
	"github.com/pdiddy/curriculum-engine/internal/quality"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// AffinityWeight scales the mean tag affinity added to a course's score.
const AffinityWeight = 0.2

// Filter selects which courses are eligible. Empty string fields match any
// value; only ACTIVE courses ever pass.
type Filter struct {
	Category   string
	Difficulty types.Difficulty
	Language   string

	// IncludeFree admits free courses; paid courses pass when their price
	// does not exceed MaxPrice.
	IncludeFree bool
	MaxPrice    float64

	// Platforms, when non-empty, restricts courses to these platforms.
	Platforms []string

	// ExcludeIDs drops courses the learner has already completed.
	ExcludeIDs []string
}

// Match reports whether c passes every filter.
func (f Filter) Match(c types.Course) bool {
	if c.Status != types.StatusActive {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, c.Category) {
		return false
	}
	if f.Difficulty != "" && f.Difficulty != c.Difficulty {
		return false
	}
	if f.Language != "" && !strings.EqualFold(f.Language, c.Language) {
		return false
	}
	if c.Pricing.IsFree {
		if !f.IncludeFree {
			return false
		}
	} else if c.Pricing.Price > f.MaxPrice {
		return false
	}
	if len(f.Platforms) > 0 && !slices.ContainsFunc(f.Platforms, func(p string) bool {
		return strings.EqualFold(p, c.Platform)
	}) {
		return false
	}
	return !slices.Contains(f.ExcludeIDs, c.ID)
}

// Affinity maps a tag to the learner's weight for it.
type Affinity map[string]float64

// BuildAffinity counts how many completed courses carry each tag.
func BuildAffinity(completed []types.Course) Affinity {
	aff := make(Affinity)
	for _, c := range completed {
		for _, tag := range c.Tags {
			aff[tag]++
		}
	}
	return aff
}

// Boost returns the affinity bonus for tags: the mean affinity over the
// course's tags times AffinityWeight. Courses without tags get no bonus.
func (a Affinity) Boost(tags []string) float64 {
	if len(a) == 0 || len(tags) == 0 {
		return 0
	}
	var sum float64
	for _, t := range tags {
		sum += a[t]
	}
	return sum / float64(len(tags)) * AffinityWeight
}

// Ranked is a course with its ranking score.
type Ranked struct {
	Course  types.Course `json:"course" yaml:"course"`
	Quality float64      `json:"quality" yaml:"quality"`
	Boost   float64      `json:"boost" yaml:"boost"`
	Score   float64      `json:"score" yaml:"score"`
}

// Options controls how ranking runs. The zero value scores sequentially
// without a cache and returns every eligible course.
type Options struct {
	// Workers bounds concurrent scoring. Zero or one scores sequentially.
	Workers int

	// Cache, when set, is consulted for quality scores.
	Cache quality.Cache

	// Reviews holds each course's review snapshot for cache keys.
	Reviews map[string][]types.Review

	// Limit truncates the result when positive.
	Limit int

	Log *logger.Logger
}

// Rank de-duplicates courses by ID (first occurrence wins), drops those that
// fail f, scores the rest and returns them by descending score with ties
// broken by ascending ID. The output is the same for the same input
// regardless of Workers.
func Rank(ctx context.Context, courses []types.Course, f Filter, aff Affinity, opts Options) ([]Ranked, error) {
	log := logger.OrNop(opts.Log)

	seen := make(map[string]bool, len(courses))
	var eligible []types.Course
	for _, c := range courses {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		if f.Match(c) {
			eligible = append(eligible, c)
		}
	}

	out := make([]Ranked, len(eligible))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, c := range eligible {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q, err := quality.Cached(gctx, opts.Cache, quality.SnapshotKey(c, opts.Reviews[c.ID]), c)
			if err != nil {
				log.Warn("quality cache unavailable", "course", c.ID, "error", err)
			}
			boost := aff.Boost(c.Tags)
			out[i] = Ranked{Course: c, Quality: q, Boost: boost, Score: q + boost}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Sort(out)
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	log.Debug("ranked courses", "candidates", len(courses), "eligible", len(out))
	return out, nil
}

// Sort orders ranked courses by descending score, then ascending ID.
func Sort(r []Ranked) {
	sort.SliceStable(r, func(i, j int) bool {
		if r[i].Score != r[j].Score {
			return r[i].Score > r[j].Score
		}
		return r[i].Course.ID < r[j].Course.ID
	})
}

// Courses returns the courses of r in rank order.
func Courses(r []Ranked) []types.Course {
	out := make([]types.Course, len(r))
	for i, x := range r {
		out[i] = x.Course
	}
	return out
}
