// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Stage is the pedagogical bucket a course is placed in.
type Stage string

const (
	StageFoundation   Stage = "FOUNDATION"
	StageCoreLearning Stage = "CORE_LEARNING"
	StagePractice     Stage = "PRACTICE"
	StageAssessment   Stage = "ASSESSMENT"
)

// Stages lists every stage in classification priority order.
var Stages = []Stage{StageFoundation, StagePractice, StageAssessment, StageCoreLearning}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageFoundation, StageCoreLearning, StagePractice, StageAssessment:
		return true
	default:
		return false
	}
}

// PathType summarizes how many courses and platforms a path spans.
type PathType string

const (
	PathSingleCourse              PathType = "SINGLE_COURSE"
	PathMultiCourseSinglePlatform PathType = "MULTI_COURSE_SINGLE_PLATFORM"
	PathMultiCourseMultiPlatform  PathType = "MULTI_COURSE_MULTI_PLATFORM"
)

// PathStatus tracks a learning path's lifecycle.
type PathStatus string

const (
	PathDraft     PathStatus = "DRAFT"
	PathActive    PathStatus = "ACTIVE"
	PathCompleted PathStatus = "COMPLETED"
)

// LearningPathStep is one stage of a learning path.
type LearningPathStep struct {
	// StepNumber is 1-based and contiguous within a path.
	StepNumber  int    `json:"step_number" yaml:"step_number"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Stage       Stage  `json:"stage" yaml:"stage"`

	// CourseIDs lists the selected courses in rank order.
	CourseIDs []string `json:"course_ids" yaml:"course_ids"`

	// Topics is the order-preserving union of the selected courses' tags.
	Topics []string `json:"topics" yaml:"topics"`

	// EstimatedDurationHours is the summed course minutes divided by 60, truncated.
	EstimatedDurationHours int `json:"estimated_duration_hours" yaml:"estimated_duration_hours"`

	Completed bool `json:"completed" yaml:"completed"`
}

// PlatformCost is the paid cost attributed to one platform.
type PlatformCost struct {
	Platform    string  `json:"platform" yaml:"platform"`
	Cost        float64 `json:"cost" yaml:"cost"`
	CourseCount int     `json:"course_count" yaml:"course_count"`
}

// CostAnalysis is the cost breakdown of a composed path. PaidCost always
// equals the sum of PlatformBreakdown costs.
type CostAnalysis struct {
	TotalCost float64 `json:"total_cost" yaml:"total_cost"`

	// FreeCost is always zero; it is kept for symmetry with PaidCost.
	FreeCost float64 `json:"free_cost" yaml:"free_cost"`
	PaidCost float64 `json:"paid_cost" yaml:"paid_cost"`
	Currency string  `json:"currency" yaml:"currency"`

	// PlatformBreakdown is ordered by the first time each platform was seen.
	PlatformBreakdown []PlatformCost `json:"platform_breakdown" yaml:"platform_breakdown"`

	HasAlternativeFreeOption bool `json:"has_alternative_free_option" yaml:"has_alternative_free_option"`
}

// LearningProgress tracks step completion for a path.
type LearningProgress struct {
	TotalSteps           int     `json:"total_steps" yaml:"total_steps"`
	CompletedSteps       int     `json:"completed_steps" yaml:"completed_steps"`
	CompletionPercentage float64 `json:"completion_percentage" yaml:"completion_percentage"`
}

// GenerationMetadata describes how a path was produced. These fields are
// descriptive and do not influence composition.
type GenerationMetadata struct {
	Model            string            `json:"model" yaml:"model"`
	ConfidenceScore  float64           `json:"confidence_score" yaml:"confidence_score"`
	GeneratedAt      time.Time         `json:"generated_at" yaml:"generated_at"`
	GenerationParams map[string]string `json:"generation_params,omitempty" yaml:"generation_params,omitempty"`
}

// LearningPath is an ordered curriculum assembled for one learner.
type LearningPath struct {
	ID          string `json:"id" yaml:"id"`
	UserID      string `json:"user_id" yaml:"user_id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`

	SkillGoal          string     `json:"skill_goal" yaml:"skill_goal"`
	TargetLevel        Difficulty `json:"target_level" yaml:"target_level"`
	PreferredPlatforms []string   `json:"preferred_platforms,omitempty" yaml:"preferred_platforms,omitempty"`
	PreferredLanguage  string     `json:"preferred_language,omitempty" yaml:"preferred_language,omitempty"`

	Steps                  []LearningPathStep `json:"steps" yaml:"steps"`
	EstimatedDurationHours int                `json:"estimated_duration_hours" yaml:"estimated_duration_hours"`

	PathType PathType   `json:"path_type" yaml:"path_type"`
	Status   PathStatus `json:"status" yaml:"status"`

	Progress     LearningProgress   `json:"progress" yaml:"progress"`
	CostAnalysis CostAnalysis       `json:"cost_analysis" yaml:"cost_analysis"`
	Metadata     GenerationMetadata `json:"generation_metadata" yaml:"generation_metadata"`
}

// CourseCount returns the number of selected courses across all steps.
func (p *LearningPath) CourseCount() int {
	n := 0
	for _, s := range p.Steps {
		n += len(s.CourseIDs)
	}
	return n
}
