// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentiment

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Aspect is a review aspect and the words that signal it.
type Aspect struct {
	Name     string   `yaml:"name"`
	Synonyms []string `yaml:"synonyms"`
}

// Lexicon is the versioned word list configuration behind the analyzer.
// All entries are matched case-insensitively.
type Lexicon struct {
	Version  string   `yaml:"version"`
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`

	// Aspects are evaluated in order; each produces one aspect sentiment.
	Aspects []Aspect `yaml:"aspects"`

	// Topics are the subjects counted across a course's reviews.
	Topics []string `yaml:"topics"`

	// GenericPhrases mark low-effort review text.
	GenericPhrases []string `yaml:"generic_phrases"`

	// StopWords are excluded from review themes.
	StopWords []string `yaml:"stop_words"`
}

// DefaultLexicon returns the built-in lexicon.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Version: "2026.1",
		Positive: []string{
			"excellent", "great", "good", "amazing", "love", "best",
			"helpful", "clear", "useful", "recommend", "perfect",
		},
		Negative: []string{
			"bad", "terrible", "awful", "hate", "worst", "useless",
			"boring", "confusing", "waste", "poor", "disappointing",
		},
		Aspects: []Aspect{
			{Name: "content", Synonyms: []string{"content", "material", "lesson", "topic"}},
			{Name: "instructor", Synonyms: []string{"instructor", "teacher", "professor", "lecturer"}},
			{Name: "value", Synonyms: []string{"price", "cost", "value", "money", "worth"}},
			{Name: "difficulty", Synonyms: []string{"difficult", "easy", "hard", "level"}},
		},
		Topics: []string{
			"programming", "web development", "data science", "machine learning",
			"algorithms", "databases", "frontend", "backend", "mobile",
		},
		GenericPhrases: []string{
			"good course", "great course", "excellent", "recommended",
			"waste of time", "bad course", "terrible", "not recommended",
		},
		StopWords: []string{"the", "and", "but", "for", "with", "this", "that", "very", "good", "bad"},
	}
}

// LoadLexicon reads a YAML lexicon from path and validates it.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("reading lexicon: %w", err)
	}
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parsing lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return Lexicon{}, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// Validate checks that the lexicon can drive the analyzer.
func (l Lexicon) Validate() error {
	if strings.TrimSpace(l.Version) == "" {
		return fmt.Errorf("version is required")
	}
	if len(l.Positive) == 0 || len(l.Negative) == 0 {
		return fmt.Errorf("positive and negative word lists must not be empty")
	}
	seen := make(map[string]bool)
	for _, a := range l.Aspects {
		if a.Name == "" || len(a.Synonyms) == 0 {
			return fmt.Errorf("aspect %q needs a name and at least one synonym", a.Name)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate aspect %q", a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

func lowerSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}
