// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriculum-engine/internal/curriculum"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Generate and inspect learning paths",
	Long: `Path composes learning paths from the catalog. A path has up to three
steps (Foundation, Core Learning, Practice & Projects), each with up to three
courses, and never spends more than the learner's budget.`,
}

// --- generate subcommand ---

var pathGenerateCmd = &cobra.Command{
	Use:   "generate <skill>",
	Short: "Generate a learning path for a skill",
	Long: `Generate builds a learning path for the skill, saves it to the catalog
database, and prints it. Use --budget 0 together with --prefer-free for a
path of free courses only.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPathGenerate,
}

func runPathGenerate(cmd *cobra.Command, args []string) error {
	req := pathRequestFromFlags(cmd, args)
	format, _ := cmd.Flags().GetString("format")

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	path, err := e.gen.Generate(cmd.Context(), req)
	if err != nil && path == nil {
		return err
	}
	if werr := writePath(cmd.Context(), e, path, format); werr != nil {
		return werr
	}
	return err
}

// --- alternatives subcommand ---

var pathAlternativesCmd = &cobra.Command{
	Use:   "alternatives <skill>",
	Short: "Generate free, premium and balanced paths for a skill",
	Long: `Alternatives generates three paths for the same skill and level: a free
path (YouTube, Coursera, no budget), a premium path (Udemy, Pluralsight,
Coursera, budget 500) and a balanced path (YouTube, Udemy, edX, budget 100).
The --budget, --prefer-free and --platforms flags are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPathAlternatives,
}

func runPathAlternatives(cmd *cobra.Command, args []string) error {
	req := pathRequestFromFlags(cmd, args)
	format, _ := cmd.Flags().GetString("format")

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	paths, genErr := e.gen.GenerateAlternatives(cmd.Context(), req)
	if format != "text" {
		if err := writeStructured(os.Stdout, paths, format); err != nil {
			return err
		}
		return genErr
	}
	for i, p := range paths {
		if i > 0 {
			fmt.Println()
		}
		printPath(cmd.Context(), e, p)
	}
	return genErr
}

// --- show subcommand ---

var pathShowCmd = &cobra.Command{
	Use:   "show <path-id>",
	Short: "Print a saved learning path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		e, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		path, err := e.store.Path(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writePath(cmd.Context(), e, path, format)
	},
}

// pathRequestFromFlags builds a Request from the skill arguments and flags.
// Flags a command does not define read as their zero value.
func pathRequestFromFlags(cmd *cobra.Command, args []string) curriculum.Request {
	level, _ := cmd.Flags().GetString("level")
	goals, _ := cmd.Flags().GetString("goals")
	user, _ := cmd.Flags().GetString("user")
	platforms, _ := cmd.Flags().GetString("platforms")
	language, _ := cmd.Flags().GetString("language")
	budget, _ := cmd.Flags().GetFloat64("budget")
	preferFree, _ := cmd.Flags().GetBool("prefer-free")
	completed, _ := cmd.Flags().GetString("completed")

	return curriculum.Request{
		UserID:             user,
		SkillGoal:          strings.Join(args, " "),
		TargetLevel:        types.Difficulty(strings.ToUpper(level)),
		Goals:              goals,
		PreferredPlatforms: splitList(platforms),
		PreferredLanguage:  language,
		MaxBudget:          budget,
		PreferFree:         preferFree,
		CompletedCourseIDs: splitList(completed),
	}
}

func writePath(ctx context.Context, e *engine, p *types.LearningPath, format string) error {
	if format != "text" {
		return writeStructured(os.Stdout, p, format)
	}
	printPath(ctx, e, p)
	return nil
}

func printPath(ctx context.Context, e *engine, p *types.LearningPath) {
	fmt.Printf("%s\n", p.Title)
	fmt.Printf("ID: %s  Type: %s  Status: %s\n", p.ID, p.PathType, p.Status)
	if p.Description != "" {
		fmt.Printf("\n%s\n", p.Description)
	}
	fmt.Println()

	if len(p.Steps) == 0 {
		fmt.Println("No courses matched the request.")
		return
	}

	var titles map[string]types.Course
	if ids := pathCourseIDs(p); len(ids) > 0 {
		courses, err := e.store.CoursesByID(ctx, ids)
		if err != nil {
			log.Warn("looking up course titles", "error", err)
		}
		titles = make(map[string]types.Course, len(courses))
		for _, c := range courses {
			titles[c.ID] = c
		}
	}

	for _, s := range p.Steps {
		fmt.Printf("Step %d: %s (%d h)\n", s.StepNumber, s.Title, s.EstimatedDurationHours)
		if len(s.CourseIDs) == 0 {
			fmt.Println("  (no course fits the budget)")
		}
		for _, id := range s.CourseIDs {
			c, ok := titles[id]
			if !ok {
				fmt.Printf("  - %s\n", id)
				continue
			}
			price := "free"
			if !c.Pricing.IsFree {
				price = fmt.Sprintf("%.2f", c.Pricing.Price)
			}
			fmt.Printf("  - %-12s  %-40s  %-12s  %8s\n", truncate(id, 12), truncate(c.Title, 40), truncate(c.Platform, 12), price)
		}
	}

	ca := p.CostAnalysis
	fmt.Printf("\nTotal: %d h, %.2f %s\n", p.EstimatedDurationHours, ca.TotalCost, ca.Currency)
	for _, pc := range ca.PlatformBreakdown {
		fmt.Printf("  %-16s  %8.2f  (%d course(s))\n", pc.Platform, pc.Cost, pc.CourseCount)
	}
	if ca.HasAlternativeFreeOption {
		fmt.Println("  includes free courses")
	}
}

func pathCourseIDs(p *types.LearningPath) []string {
	var ids []string
	for _, s := range p.Steps {
		ids = append(ids, s.CourseIDs...)
	}
	return ids
}

func init() {
	for _, c := range []*cobra.Command{pathGenerateCmd, pathAlternativesCmd} {
		c.Flags().String("level", "BEGINNER", "target level: BEGINNER, INTERMEDIATE, ADVANCED, EXPERT")
		c.Flags().String("goals", "", "learning goals passed to the description generator")
		c.Flags().String("user", "", "learner ID recorded on the path")
		c.Flags().String("language", "", "preferred course language")
		c.Flags().String("completed", "", "completed course IDs (comma-separated)")
		c.Flags().String("format", "text", "output format: text, json or yaml")
	}
	pathGenerateCmd.Flags().String("platforms", "", "preferred platforms (comma-separated)")
	pathGenerateCmd.Flags().Float64("budget", 100, "maximum total spend")
	pathGenerateCmd.Flags().Bool("prefer-free", false, "select free courses only")
	pathShowCmd.Flags().String("format", "text", "output format: text, json or yaml")

	pathCmd.AddCommand(pathGenerateCmd)
	pathCmd.AddCommand(pathAlternativesCmd)
	pathCmd.AddCommand(pathShowCmd)

	rootCmd.AddCommand(pathCmd)
}
