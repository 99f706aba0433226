// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentiment

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

func analyzed(t *testing.T, r types.Review) types.Review {
	t.Helper()
	r.Sentiment, _ = Default().Analyze(r.Text)
	return r
}

func TestAggregateNoAnalyzedReviews(t *testing.T) {
	a := Default()
	assert.Nil(t, a.Aggregate(nil))
	assert.Nil(t, a.Aggregate([]types.Review{{ID: "r1", Rating: 5}}))
}

func TestAggregate(t *testing.T) {
	reviews := []types.Review{
		analyzed(t, types.Review{ID: "r1", Text: "Great machine learning course, excellent examples", AspectRatings: map[string]int{"content": 5, "value": 4}}),
		analyzed(t, types.Review{ID: "r2", Text: "Terrible pacing in the machine learning module", AspectRatings: map[string]int{"content": 3}}),
		{ID: "r3", Text: "not analyzed, mentions databases"},
	}

	got := Default().Aggregate(reviews)
	require.NotNil(t, got)

	assert.Equal(t, 2, got.AnalyzedReviews)
	assert.InDelta(t, 0.0, got.SentimentScore, 1e-9)
	assert.Equal(t, map[string]int{"machine learning": 2, "databases": 1}, got.TopicMentions)
	assert.Equal(t, map[string]float64{"content": 4, "value": 4}, got.AspectRatings)
	assert.Contains(t, got.CommonPraises, "machine")
	assert.Contains(t, got.CommonComplaints, "terrible")
}

func TestThemesSkipStopWordsAndShortWords(t *testing.T) {
	reviews := []types.Review{
		analyzed(t, types.Review{Text: "great projects, great projects, clear slides"}),
		analyzed(t, types.Review{Text: "awful"}),
	}
	got := Default().Themes(reviews, types.SentimentPositive)
	assert.Equal(t, []string{"great", "projects", "clear", "slides"}, got)
}

func TestRecentTrend(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -3)
	old := now.AddDate(0, -6, 0)

	build := func(oldRatings, recentRatings []int) []types.Review {
		var out []types.Review
		for _, r := range oldRatings {
			out = append(out, types.Review{Rating: r, ReviewDate: old})
		}
		for _, r := range recentRatings {
			out = append(out, types.Review{Rating: r, ReviewDate: recent})
		}
		return out
	}

	tests := []struct {
		name    string
		reviews []types.Review
		want    Trend
	}{
		{"too few recent", build([]int{1, 1, 1}, []int{5, 5, 5, 5}), TrendInsufficientData},
		{"improving", build([]int{1, 1, 1, 1, 1}, []int{5, 5, 5, 5, 5}), TrendImproving},
		{"declining", build([]int{5, 5, 5, 5, 5}, []int{1, 1, 1, 1, 1}), TrendDeclining},
		{"stable", build([]int{4, 4}, []int{4, 4, 4, 4, 4}), TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecentTrend(tt.reviews, now))
		})
	}
}

func TestInsights(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	reviews := []types.Review{
		analyzed(t, types.Review{Rating: 5, Text: "excellent instructor", ReviewDate: now}),
		analyzed(t, types.Review{Rating: 4, Text: "good and clear", ReviewDate: now}),
		analyzed(t, types.Review{Rating: 1, Text: "useless", ReviewDate: now}),
		{Rating: 4},
	}

	got := Default().Insights("c1", reviews, now)
	assert.Equal(t, "c1", got.CourseID)
	assert.Equal(t, 4, got.TotalReviews)
	assert.InDelta(t, 3.5, got.AverageRating, 1e-9)
	assert.Equal(t, map[int]int{5: 1, 4: 2, 1: 1}, got.RatingDistribution)
	assert.Equal(t, map[types.SentimentLabel]int{
		types.SentimentPositive: 2,
		types.SentimentNegative: 1,
	}, got.SentimentDistribution)
	assert.Equal(t, TrendInsufficientData, got.RecentTrend)
	assert.Equal(t, []string{"useless"}, got.NegativeThemes)
}

func TestDetectSuspicious(t *testing.T) {
	day := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	long := "The pacing was uneven but the exercises made up for it in the second half."

	reviews := []types.Review{
		{ID: "short-five", UserID: "u1", Rating: 5, Text: "Great!", ReviewDate: day},
		{ID: "thoughtful", UserID: "u2", Rating: 4, Text: long, ReviewDate: day},
		{ID: "burst-a", UserID: "u3", Rating: 3, Text: long, ReviewDate: day},
		{ID: "burst-b", UserID: "u3", Rating: 3, Text: "meh", ReviewDate: day.Add(3 * time.Hour)},
		{ID: "generic", UserID: "u4", Rating: 1, Text: "Bad course, waste of time!!", ReviewDate: day},
	}

	got := Default().DetectSuspicious(reviews)

	var ids []string
	for _, s := range got {
		ids = append(ids, s.ReviewID)
		assert.GreaterOrEqual(t, s.Score, SuspicionThreshold)
		assert.NotEmpty(t, s.Reasons)
	}
	assert.Equal(t, []string{"short-five", "burst-b", "generic"}, ids)
	assert.Equal(t, 5, got[0].Score)
	assert.Equal(t, 4, got[1].Score)
	assert.Equal(t, 5, got[2].Score)
}

func TestPredictHelpfulness(t *testing.T) {
	assert.Equal(t, 0.0, PredictHelpfulness(types.Review{Rating: 5, Text: "ok"}))
	assert.InDelta(t, 0.2, PredictHelpfulness(types.Review{Rating: 3}), 1e-9)

	full := types.Review{
		Rating:        4,
		Text:          string(make([]byte, 301)),
		AspectRatings: map[string]int{"content": 4},
	}
	assert.InDelta(t, 1.0, PredictHelpfulness(full), 1e-9)
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `version: test-1
positive: [stellar]
negative: [dreadful]
aspects:
  - name: pacing
    synonyms: [pace, pacing]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, "test-1", lex.Version)

	got, ok := NewAnalyzer(lex).Analyze("Stellar pacing, dreadful audio, stellar labs")
	require.True(t, ok)
	assert.InDelta(t, 1.0/3.0, got.Score, 1e-9)
	assert.Equal(t, map[string]float64{"pacing": 1.0 / 3.0}, got.AspectSentiments)
}

func TestLoadLexiconErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "positive: [unclosed"},
		{"missing version", "positive: [a]\nnegative: [b]\n"},
		{"empty lists", "version: v1\n"},
		{"duplicate aspect", "version: v1\npositive: [a]\nnegative: [b]\naspects:\n  - {name: x, synonyms: [y]}\n  - {name: x, synonyms: [z]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadLexicon(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadLexicon(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
