// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose assembles ranked courses into budget-constrained learning
// path steps.
//
// Composition is greedy and forward-only: each stage takes the best
// affordable courses of its bucket in rank order, and money spent in one
// step is never given back to a later one.
package compose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/curriculum-engine/internal/logger"
	"github.com/pdiddy/curriculum-engine/internal/stage"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// DefaultMaxPerStep is the number of courses a step holds when Options leaves it unset.
const DefaultMaxPerStep = 3

// spendTolerance absorbs floating-point drift when checking cumulative spend.
const spendTolerance = 1e-9

// ErrBudgetExceeded reports a composed result whose spend went over budget.
var ErrBudgetExceeded = errors.New("budget exceeded")

// plan is a stage the composer may emit, in emission order.
type plan struct {
	stage types.Stage
	title string
}

// ASSESSMENT is classified but not emitted.
var plans = []plan{
	{types.StageFoundation, "Foundation"},
	{types.StageCoreLearning, "Core Learning"},
	{types.StagePractice, "Practice & Projects"},
}

// Options bounds a composition.
type Options struct {
	// Budget is the most the learner will pay across the whole path.
	Budget float64

	// PreferFree admits only free courses.
	PreferFree bool

	// MaxPerStep caps courses per step; zero means DefaultMaxPerStep.
	MaxPerStep int
}

// Result is a composed sequence of steps.
type Result struct {
	Steps []types.LearningPathStep

	// StepCosts holds the paid cost of each step, parallel to Steps.
	StepCosts []float64

	// Selected lists every chosen course in selection order.
	Selected []types.Course

	TotalHours int
	Spend      float64
}

// Validate confirms that cumulative spend never passed budget after any step.
func (r Result) Validate(budget float64) error {
	var spend float64
	for i, c := range r.StepCosts {
		spend += c
		if spend > budget+spendTolerance {
			return fmt.Errorf("step %d: spend %.2f over budget %.2f: %w", i+1, spend, budget, ErrBudgetExceeded)
		}
	}
	return nil
}

// Composer builds steps from ranked courses.
type Composer struct {
	classifier *stage.Classifier
	log        *logger.Logger
}

// New returns a composer. A nil classifier uses the default stage rules.
func New(classifier *stage.Classifier, log *logger.Logger) *Composer {
	if classifier == nil {
		classifier = stage.Default()
	}
	return &Composer{classifier: classifier, log: logger.OrNop(log)}
}

// Compose partitions ranked (highest score first) by stage and fills the
// Foundation, Core Learning and Practice steps in that order. Every stage with
// candidates produces a step, which is left without courses when none is
// affordable; a stage without candidates produces none and step numbers stay
// contiguous. The Practice step is considered only while spend is still under
// budget.
func (c *Composer) Compose(ranked []types.Course, opts Options) Result {
	maxPerStep := opts.MaxPerStep
	if maxPerStep <= 0 {
		maxPerStep = DefaultMaxPerStep
	}

	buckets := c.classifier.Partition(ranked)
	used := make(map[string]bool)
	var res Result

	for _, p := range plans {
		if p.stage == types.StagePractice && res.Spend >= opts.Budget {
			c.log.Debug("skipping practice step", "spend", res.Spend, "budget", opts.Budget)
			continue
		}
		if len(buckets[p.stage]) == 0 {
			continue
		}

		var picked []types.Course
		var stepCost float64
		for _, course := range buckets[p.stage] {
			if len(picked) == maxPerStep {
				break
			}
			if used[course.ID] {
				continue
			}
			if opts.PreferFree && !course.Pricing.IsFree {
				continue
			}
			cost := course.Pricing.Cost()
			if res.Spend+stepCost+cost > opts.Budget {
				continue
			}
			picked = append(picked, course)
			stepCost += cost
			used[course.ID] = true
		}

		if len(picked) == 0 {
			c.log.Debug("no affordable course for stage", "stage", p.stage, "candidates", len(buckets[p.stage]))
		}

		step := buildStep(len(res.Steps)+1, p, picked)
		res.Steps = append(res.Steps, step)
		res.StepCosts = append(res.StepCosts, stepCost)
		res.Selected = append(res.Selected, picked...)
		res.TotalHours += step.EstimatedDurationHours
		res.Spend += stepCost
	}
	return res
}

func buildStep(number int, p plan, picked []types.Course) types.LearningPathStep {
	step := types.LearningPathStep{
		StepNumber:  number,
		Title:       p.title,
		Description: "Complete the selected courses to master " + strings.ToLower(p.title),
		Stage:       p.stage,
		CourseIDs:   []string{},
		Topics:      []string{},
	}
	var minutes int
	seen := make(map[string]bool)
	for _, c := range picked {
		step.CourseIDs = append(step.CourseIDs, c.ID)
		minutes += c.TotalDuration
		for _, tag := range c.Tags {
			if !seen[tag] {
				seen[tag] = true
				step.Topics = append(step.Topics, tag)
			}
		}
	}
	step.EstimatedDurationHours = minutes / 60
	return step
}

// PathType classifies a selection by how many courses and platforms it spans.
func PathType(selected []types.Course) types.PathType {
	if len(selected) <= 1 {
		return types.PathSingleCourse
	}
	platforms := make(map[string]bool)
	for _, c := range selected {
		platforms[c.Platform] = true
	}
	if len(platforms) == 1 {
		return types.PathMultiCourseSinglePlatform
	}
	return types.PathMultiCourseMultiPlatform
}
