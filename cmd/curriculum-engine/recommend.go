// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriculum-engine/internal/curriculum"
	"github.com/pdiddy/curriculum-engine/internal/rank"
	"github.com/pdiddy/curriculum-engine/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <interest> [interest...]",
	Short: "Rank catalog courses for a set of interests",
	Long: `Recommend searches the catalog for the given interests, scores every
active course by rating, review sentiment and content depth, and prints the
best matches. Completed courses are excluded and boost courses sharing
their tags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("level")
	language, _ := cmd.Flags().GetString("language")
	platforms, _ := cmd.Flags().GetString("platforms")
	completed, _ := cmd.Flags().GetString("completed")
	maxPrice, _ := cmd.Flags().GetFloat64("max-price")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	results, err := e.gen.Recommend(cmd.Context(), curriculum.RecommendRequest{
		Interests:          args,
		Level:              types.Difficulty(strings.ToUpper(level)),
		Language:           language,
		Platforms:          splitList(platforms),
		CompletedCourseIDs: splitList(completed),
		MaxPrice:           maxPrice,
		Limit:              limit,
	})
	if err != nil {
		return err
	}
	if format != "text" {
		return writeStructured(os.Stdout, results, format)
	}
	printRanked(results)
	return nil
}

func printRanked(results []rank.Ranked) {
	if len(results) == 0 {
		fmt.Println("No courses found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-12s  %-40s  %-12s  %8s  %6s  %6s\n",
		"Rank", "ID", "Title", "Platform", "Price", "Rating", "Score")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		price := "free"
		if !r.Course.Pricing.IsFree {
			price = fmt.Sprintf("%.2f", r.Course.Pricing.Price)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-12s  %-40s  %-12s  %8s  %6.1f  %6.3f\n",
			i+1, truncate(r.Course.ID, 12), truncate(r.Course.Title, 40), truncate(r.Course.Platform, 12),
			price, r.Course.AverageRating, r.Score)
	}

	fmt.Fprintf(os.Stdout, "\n%d courses\n", len(results))
}

// --- platforms subcommand ---

var platformsCmd = &cobra.Command{
	Use:   "platforms <topic>",
	Short: "Compare platforms offering courses on a topic",
	Long: `Platforms summarizes, per platform, the catalog courses matching a topic:
course count, average rating, average price of paid courses, free courses
and total duration.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlatforms,
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("level")
	language, _ := cmd.Flags().GetString("language")
	format, _ := cmd.Flags().GetString("format")

	var d types.Difficulty
	if level != "" {
		parsed, err := types.ParseDifficulty(strings.ToUpper(level))
		if err != nil {
			return err
		}
		d = parsed
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	stats, err := e.gen.ComparePlatforms(cmd.Context(), args[0], d, language)
	if err != nil {
		return err
	}
	if format != "text" {
		return writeStructured(os.Stdout, stats, format)
	}

	if len(stats) == 0 {
		fmt.Println("No courses found.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-16s  %7s  %6s  %9s  %5s  %8s\n",
		"Platform", "Courses", "Rating", "Avg price", "Free", "Hours")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 64))
	for _, s := range stats {
		fmt.Fprintf(os.Stdout, "%-16s  %7d  %6.2f  %9.2f  %5d  %8d\n",
			truncate(s.Platform, 16), s.CourseCount, s.AverageRating, s.AveragePrice, s.FreeCount, s.TotalDuration/60)
	}
	return nil
}

func init() {
	recommendCmd.Flags().String("level", "", "filter by difficulty: BEGINNER, INTERMEDIATE, ADVANCED, EXPERT")
	recommendCmd.Flags().String("language", "", "filter by course language")
	recommendCmd.Flags().String("platforms", "", "allowed platforms (comma-separated)")
	recommendCmd.Flags().String("completed", "", "completed course IDs (comma-separated)")
	recommendCmd.Flags().Float64("max-price", 100, "maximum price of paid courses")
	recommendCmd.Flags().Int("limit", curriculum.DefaultRecommendations, "maximum number of courses")
	recommendCmd.Flags().String("format", "text", "output format: text, json or yaml")

	platformsCmd.Flags().String("level", "", "filter by difficulty")
	platformsCmd.Flags().String("language", "", "filter by course language")
	platformsCmd.Flags().String("format", "text", "output format: text, json or yaml")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(platformsCmd)
}
