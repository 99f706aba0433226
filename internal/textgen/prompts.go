// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/curriculum-engine/internal/logger"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func keywordPrompt(skill string) string {
	return "Generate a list of 10-15 relevant keywords and topics for learning: " + skill +
		". Include related technologies, concepts, and subtopics. Return as comma-separated values."
}

func descriptionPrompt(skill string, level types.Difficulty, goals string) string {
	return fmt.Sprintf("Create a comprehensive learning path for someone who wants to learn %s. "+
		"Current level: %s. Goals: %s. "+
		"Provide a structured path with steps, estimated timeframes, and key topics to cover.",
		skill, level, goals)
}

// FallbackKeywords is the keyword list used when generation fails.
func FallbackKeywords(skill string) []string {
	return []string{skill, skill + " basics", skill + " tutorial", skill + " course", skill + " training"}
}

// FallbackDescription is the path description used when generation fails.
func FallbackDescription(skill string, level types.Difficulty) string {
	return fmt.Sprintf("A structured learning path to master %s, starting at the %s level.",
		skill, strings.ToLower(string(level)))
}

// SkillKeywords asks g for search keywords related to skill. A nil generator,
// a failed call or an empty answer yields FallbackKeywords; this never errors.
func SkillKeywords(ctx context.Context, g Generator, skill string, log *logger.Logger) []string {
	if g == nil {
		return FallbackKeywords(skill)
	}
	text, err := g.Generate(ctx, keywordPrompt(skill))
	if err != nil {
		logger.OrNop(log).Warn("keyword generation failed, using fallback", "skill", skill, "error", err)
		return FallbackKeywords(skill)
	}

	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(text, ",") {
		kw := strings.TrimSpace(part)
		key := strings.ToLower(kw)
		if kw == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kw)
	}
	if len(out) == 0 {
		return FallbackKeywords(skill)
	}
	return out
}

// PathDescription asks g to describe a learning path. Failures fall back to
// FallbackDescription.
func PathDescription(ctx context.Context, g Generator, skill string, level types.Difficulty, goals string, log *logger.Logger) string {
	if g == nil {
		return FallbackDescription(skill, level)
	}
	if goals == "" {
		goals = "become proficient in " + skill
	}
	text, err := g.Generate(ctx, descriptionPrompt(skill, level, goals))
	if err != nil || strings.TrimSpace(text) == "" {
		logger.OrNop(log).Warn("description generation failed, using fallback", "skill", skill, "error", err)
		return FallbackDescription(skill, level)
	}
	return strings.TrimSpace(text)
}
