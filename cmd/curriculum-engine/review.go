// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curriculum-engine/internal/curriculum"
	"github.com/pdiddy/curriculum-engine/internal/sentiment"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Analyze course reviews",
	Long: `Review runs keyword sentiment analysis over a course's reviews and reports
per-review scores, course-level aggregates, themes, trends and suspicious
reviews.`,
}

// --- analyze subcommand ---

var reviewAnalyzeCmd = &cobra.Command{
	Use:   "analyze <course-id>",
	Short: "Print the sentiment of each review of a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewAnalyze,
}

func runReviewAnalyze(cmd *cobra.Command, args []string) error {
	report, format, err := reviewReport(cmd, args[0])
	if err != nil {
		return err
	}
	if format != "text" {
		return writeStructured(os.Stdout, report, format)
	}

	if len(report.Reviews) == 0 {
		fmt.Println("No reviews found.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-12s  %6s  %-8s  %6s  %s\n", "Review", "Rating", "Label", "Score", "Text")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, r := range report.Reviews {
		label, score := "-", "-"
		if r.Sentiment != nil {
			label = string(r.Sentiment.Label)
			score = fmt.Sprintf("%.2f", r.Sentiment.Score)
		}
		fmt.Fprintf(os.Stdout, "%-12s  %6d  %-8s  %6s  %s\n",
			truncate(r.ID, 12), r.Rating, label, score, truncate(strings.Join(strings.Fields(r.Text), " "), 50))
	}
	if a := report.Aggregate; a != nil {
		fmt.Fprintf(os.Stdout, "\nMean sentiment %.2f over %d review(s)\n", a.SentimentScore, a.AnalyzedReviews)
	}
	return nil
}

// --- insights subcommand ---

var reviewInsightsCmd = &cobra.Command{
	Use:   "insights <course-id>",
	Short: "Summarize ratings, themes, trend and suspicious reviews of a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewInsights,
}

func runReviewInsights(cmd *cobra.Command, args []string) error {
	report, format, err := reviewReport(cmd, args[0])
	if err != nil {
		return err
	}
	if format != "text" {
		return writeStructured(os.Stdout, struct {
			Insights   sentiment.Insights    `json:"insights" yaml:"insights"`
			Suspicious []sentiment.Suspicion `json:"suspicious" yaml:"suspicious"`
		}{report.Insights, report.Suspicious}, format)
	}

	ins := report.Insights
	fmt.Printf("Course %s: %d review(s), average rating %.2f, trend %s\n",
		ins.CourseID, ins.TotalReviews, ins.AverageRating, ins.RecentTrend)

	ratings := make([]int, 0, len(ins.RatingDistribution))
	for r := range ins.RatingDistribution {
		ratings = append(ratings, r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ratings)))
	for _, r := range ratings {
		fmt.Printf("  %d stars: %d\n", r, ins.RatingDistribution[r])
	}

	if len(ins.PositiveThemes) > 0 {
		fmt.Printf("Praised: %s\n", strings.Join(ins.PositiveThemes, ", "))
	}
	if len(ins.NegativeThemes) > 0 {
		fmt.Printf("Criticized: %s\n", strings.Join(ins.NegativeThemes, ", "))
	}

	if len(report.Suspicious) > 0 {
		fmt.Printf("\n%d suspicious review(s):\n", len(report.Suspicious))
		for _, s := range report.Suspicious {
			fmt.Printf("  %-12s  score %d  %s\n", truncate(s.ReviewID, 12), s.Score, strings.Join(s.Reasons, "; "))
		}
	}
	return nil
}

func reviewReport(cmd *cobra.Command, courseID string) (*curriculum.ReviewReport, string, error) {
	format, _ := cmd.Flags().GetString("format")

	e, err := openEngine(cmd.Context())
	if err != nil {
		return nil, "", err
	}
	defer e.Close()

	report, err := e.gen.AnalyzeReviews(cmd.Context(), courseID)
	return report, format, err
}

func init() {
	reviewCmd.PersistentFlags().String("format", "text", "output format: text, json or yaml")

	reviewCmd.AddCommand(reviewAnalyzeCmd)
	reviewCmd.AddCommand(reviewInsightsCmd)

	rootCmd.AddCommand(reviewCmd)
}
