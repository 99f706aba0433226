// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentiment

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

const (
	minThemeLen = 5
	maxThemes   = 5
)

// Aggregate folds analyzed reviews into a course-level ReviewAnalysis. It
// returns nil when no review carries a sentiment analysis, so a course with
// only unanalyzed reviews scores as if it had none.
func (a *Analyzer) Aggregate(reviews []types.Review) *types.ReviewAnalysis {
	var sum float64
	var analyzed int
	for _, r := range reviews {
		if r.Sentiment == nil {
			continue
		}
		sum += r.Sentiment.Score
		analyzed++
	}
	if analyzed == 0 {
		return nil
	}

	return &types.ReviewAnalysis{
		SentimentScore:   sum / float64(analyzed),
		TopicMentions:    a.topicMentions(reviews),
		AspectRatings:    AspectAverages(reviews),
		CommonPraises:    a.Themes(reviews, types.SentimentPositive),
		CommonComplaints: a.Themes(reviews, types.SentimentNegative),
		AnalyzedReviews:  analyzed,
	}
}

// topicMentions counts, per lexicon topic, the reviews whose text mentions it.
// Topics with no mentions are left out.
func (a *Analyzer) topicMentions(reviews []types.Review) map[string]int {
	out := make(map[string]int)
	for _, r := range reviews {
		lower := strings.ToLower(r.Text)
		for _, topic := range a.lex.Topics {
			if strings.Contains(lower, strings.ToLower(topic)) {
				out[topic]++
			}
		}
	}
	return out
}

// AspectAverages averages the explicit aspect ratings across reviews. An
// aspect no review rated is absent from the result.
func AspectAverages(reviews []types.Review) map[string]float64 {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range reviews {
		for name, rating := range r.AspectRatings {
			sums[name] += rating
			counts[name]++
		}
	}
	out := make(map[string]float64, len(sums))
	for name, s := range sums {
		out[name] = float64(s) / float64(counts[name])
	}
	return out
}

// Themes returns the most frequent words of at least five characters in
// reviews labelled label, skipping stop words. Ties keep first-seen order.
func (a *Analyzer) Themes(reviews []types.Review, label types.SentimentLabel) []string {
	stop := lowerSet(a.lex.StopWords)
	counts := make(map[string]int)
	var order []string
	for _, r := range reviews {
		if r.Sentiment == nil || r.Sentiment.Label != label {
			continue
		}
		for _, w := range tokenize(strings.ToLower(r.Text)) {
			if utf8.RuneCountInString(w) < minThemeLen || stop[w] {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxThemes {
		order = order[:maxThemes]
	}
	return order
}
