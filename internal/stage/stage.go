// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stage places courses into pedagogical stages by matching keywords
// in their titles.
package stage

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// Rule assigns Stage to any title containing one of Keywords.
type Rule struct {
	Stage    types.Stage `yaml:"stage"`
	Keywords []string    `yaml:"keywords"`
}

// Rules is a versioned, ordered rule set. The first matching rule wins;
// titles matching none fall into Default.
type Rules struct {
	Version string      `yaml:"version"`
	Rules   []Rule      `yaml:"rules"`
	Default types.Stage `yaml:"default"`
}

// DefaultRules returns the built-in rule set.
func DefaultRules() Rules {
	return Rules{
		Version: "2026.1",
		Rules: []Rule{
			{Stage: types.StageFoundation, Keywords: []string{"beginner", "introduction", "basics"}},
			{Stage: types.StagePractice, Keywords: []string{"project", "practice", "hands-on"}},
			{Stage: types.StageAssessment, Keywords: []string{"advanced", "mastery"}},
		},
		Default: types.StageCoreLearning,
	}
}

// LoadRules reads a YAML rule set from path. A missing default stage is
// filled with CORE_LEARNING.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading stage rules: %w", err)
	}
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parsing stage rules: %w", err)
	}
	if r.Default == "" {
		r.Default = types.StageCoreLearning
	}
	if err := r.Validate(); err != nil {
		return Rules{}, fmt.Errorf("stage rules %s: %w", path, err)
	}
	return r, nil
}

// Validate checks every stage is known and every rule has a keyword.
func (r Rules) Validate() error {
	if strings.TrimSpace(r.Version) == "" {
		return fmt.Errorf("version is required")
	}
	if !r.Default.Valid() {
		return fmt.Errorf("unknown default stage %q", r.Default)
	}
	for i, rule := range r.Rules {
		if !rule.Stage.Valid() {
			return fmt.Errorf("rule %d: unknown stage %q", i, rule.Stage)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("rule %d (%s): no keywords", i, rule.Stage)
		}
	}
	return nil
}

// Classifier maps course titles to stages.
type Classifier struct {
	rules Rules
}

// NewClassifier returns a classifier over r. Keywords are lowercased once here.
func NewClassifier(r Rules) *Classifier {
	c := Classifier{rules: Rules{Version: r.Version, Default: r.Default}}
	for _, rule := range r.Rules {
		kw := make([]string, len(rule.Keywords))
		for i, k := range rule.Keywords {
			kw[i] = strings.ToLower(k)
		}
		c.rules.Rules = append(c.rules.Rules, Rule{Stage: rule.Stage, Keywords: kw})
	}
	return &c
}

// Default returns a classifier over DefaultRules.
func Default() *Classifier {
	return NewClassifier(DefaultRules())
}

// Version returns the rule set version.
func (c *Classifier) Version() string { return c.rules.Version }

// Classify returns the stage of the first rule with a keyword contained in
// title, compared case-insensitively.
func (c *Classifier) Classify(title string) types.Stage {
	lower := strings.ToLower(title)
	for _, rule := range c.rules.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Stage
			}
		}
	}
	return c.rules.Default
}

// Partition groups courses by stage, preserving input order within each stage.
func (c *Classifier) Partition(courses []types.Course) map[types.Stage][]types.Course {
	out := make(map[types.Stage][]types.Course)
	for _, course := range courses {
		s := c.Classify(course.Title)
		out[s] = append(out[s], course)
	}
	return out
}
