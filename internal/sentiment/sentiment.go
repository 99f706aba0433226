// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sentiment scores review text with a keyword-weighted heuristic.
// The analysis is deterministic: the same text and lexicon always yield the
// same score, label, aspect sentiments and keyword list.
package sentiment

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/curriculum-engine/pkg/types"
)

const (
	// HeuristicConfidence is the fixed confidence reported for every keyword analysis.
	HeuristicConfidence = 0.75

	// labelThreshold separates NEUTRAL from POSITIVE and NEGATIVE.
	labelThreshold = 0.1

	// aspectWindow is the number of characters kept on each side of an aspect match.
	aspectWindow = 50

	minKeywordLen = 4
	maxKeywords   = 10
)

// Analyzer scores review text against a lexicon. It is safe for concurrent use.
type Analyzer struct {
	lex      Lexicon
	positive map[string]bool
	negative map[string]bool
}

// NewAnalyzer builds an analyzer over lex.
func NewAnalyzer(lex Lexicon) *Analyzer {
	return &Analyzer{
		lex:      lex,
		positive: lowerSet(lex.Positive),
		negative: lowerSet(lex.Negative),
	}
}

// Default returns an analyzer over DefaultLexicon.
func Default() *Analyzer {
	return NewAnalyzer(DefaultLexicon())
}

// Lexicon returns the analyzer's configuration.
func (a *Analyzer) Lexicon() Lexicon { return a.lex }

// Analyze scores one review text. It returns false when the text is empty or
// whitespace: such a review is "not analyzed", which is different from a
// neutral score.
func (a *Analyzer) Analyze(text string) (*types.SentimentAnalysis, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	lower := strings.ToLower(text)
	score := a.score(lower)

	aspects := make(map[string]float64, len(a.lex.Aspects))
	for _, asp := range a.lex.Aspects {
		aspects[asp.Name] = a.aspectScore(lower, asp)
	}

	return &types.SentimentAnalysis{
		Score:            score,
		Label:            Label(score),
		Confidence:       HeuristicConfidence,
		AspectSentiments: aspects,
		Keywords:         Keywords(lower),
	}, true
}

// Label maps a score to its categorical sentiment.
func Label(score float64) types.SentimentLabel {
	switch {
	case score > labelThreshold:
		return types.SentimentPositive
	case score < -labelThreshold:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

// score returns (pos-neg)/(pos+neg) over whole-word matches, or 0 when
// neither list matches.
func (a *Analyzer) score(lower string) float64 {
	var pos, neg int
	for _, w := range tokenize(lower) {
		if a.positive[w] {
			pos++
		}
		if a.negative[w] {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// aspectScore scores the window around the first synonym found, trying
// synonyms in lexicon order.
func (a *Analyzer) aspectScore(lower string, asp Aspect) float64 {
	for _, syn := range asp.Synonyms {
		syn = strings.ToLower(syn)
		idx := strings.Index(lower, syn)
		if idx < 0 {
			continue
		}
		runes := []rune(lower)
		start := utf8.RuneCountInString(lower[:idx])
		end := start + utf8.RuneCountInString(syn) + aspectWindow
		start -= aspectWindow
		if start < 0 {
			start = 0
		}
		if end > len(runes) {
			end = len(runes)
		}
		return a.score(string(runes[start:end]))
	}
	return 0
}

// Keywords returns the most frequent words longer than three characters,
// most frequent first, ties in first-seen order.
func Keywords(text string) []types.KeywordCount {
	counts := make(map[string]int)
	var order []string
	for _, w := range tokenize(strings.ToLower(text)) {
		if utf8.RuneCountInString(w) < minKeywordLen {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	out := make([]types.KeywordCount, len(order))
	for i, w := range order {
		out[i] = types.KeywordCount{Word: w, Count: counts[w]}
	}
	return out
}

// AnalyzeAll returns copies of reviews with Sentiment filled in. Reviews with
// no text keep a nil Sentiment. At most workers reviews are analyzed at once.
func (a *Analyzer) AnalyzeAll(ctx context.Context, reviews []types.Review, workers int) ([]types.Review, error) {
	out := make([]types.Review, len(reviews))
	copy(out, reviews)

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range out {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i].Sentiment, _ = a.Analyze(out[i].Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// tokenize splits lowercased text on anything that is not a letter, digit
// or underscore.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
