// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		title string
		want  types.Stage
	}{
		{"Advanced Kubernetes Mastery", types.StageAssessment},
		{"Python for Beginners", types.StageFoundation},
		{"Introduction to Go", types.StageFoundation},
		{"Rust Basics", types.StageFoundation},
		{"Build a Web App: Hands-On Project", types.StagePractice},
		{"Go Concurrency Patterns", types.StageCoreLearning},
		{"", types.StageCoreLearning},
		// Foundation outranks the other stages.
		{"Advanced Project Basics", types.StageFoundation},
		// Practice outranks assessment.
		{"Advanced Practice Problems", types.StagePractice},
	}
	c := Default()
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.title))
		})
	}
}

func TestPartitionPreservesOrder(t *testing.T) {
	courses := []types.Course{
		{ID: "1", Title: "Go Basics"},
		{ID: "2", Title: "Go in Depth"},
		{ID: "3", Title: "Introduction to Testing"},
		{ID: "4", Title: "Go Project Lab"},
	}
	got := Default().Partition(courses)

	assert.Equal(t, []types.Course{courses[0], courses[2]}, got[types.StageFoundation])
	assert.Equal(t, []types.Course{courses[1]}, got[types.StageCoreLearning])
	assert.Equal(t, []types.Course{courses[3]}, got[types.StagePractice])
	assert.Empty(t, got[types.StageAssessment])
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `version: custom-2
rules:
  - stage: PRACTICE
    keywords: [Workshop]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, types.StageCoreLearning, rules.Default)

	c := NewClassifier(rules)
	assert.Equal(t, "custom-2", c.Version())
	assert.Equal(t, types.StagePractice, c.Classify("Terraform workshop"))
	assert.Equal(t, types.StageCoreLearning, c.Classify("Beginner Terraform"))
}

func TestLoadRulesErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "rules: [unclosed"},
		{"no version", "rules: []\n"},
		{"unknown stage", "version: v1\nrules:\n  - stage: WARMUP\n    keywords: [x]\n"},
		{"no keywords", "version: v1\nrules:\n  - stage: PRACTICE\n"},
		{"bad default", "version: v1\ndefault: LATER\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadRules(path)
			assert.Error(t, err)
		})
	}
}

func TestDefaultRulesValid(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())
}
