package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/greenlie/internal/model"
)

// RelevanceClassifier decides whether a criterion the target group does not
// control is a real barrier for a given statement
type RelevanceClassifier struct {
	patterns          map[model.Criterion]*regexp.Regexp
	alwaysRelevant    map[model.Criterion]bool
	enforcementSource map[string]bool
}

// NewRelevanceClassifier compiles the keyword table. A nil config uses the defaults.
func NewRelevanceClassifier(config *model.RelevanceConfig) (*RelevanceClassifier, error) {
	if config == nil {
		def := model.DefaultRelevanceConfig()
		config = &def
	}

	classifier := &RelevanceClassifier{
		patterns:          make(map[model.Criterion]*regexp.Regexp),
		alwaysRelevant:    make(map[model.Criterion]bool),
		enforcementSource: make(map[string]bool),
	}

	for key, fragments := range config.Patterns {
		c, err := model.ParseCriterion(key)
		if err != nil {
			return nil, fmt.Errorf("relevance patterns: %w", err)
		}
		if len(fragments) == 0 {
			continue
		}
		re, err := regexp.Compile("(?i)" + strings.Join(fragments, "|"))
		if err != nil {
			return nil, fmt.Errorf("relevance pattern for %s: %w", c, err)
		}
		classifier.patterns[c] = re
	}

	for _, key := range config.AlwaysRelevant {
		c, err := model.ParseCriterion(key)
		if err != nil {
			return nil, fmt.Errorf("always relevant: %w", err)
		}
		classifier.alwaysRelevant[c] = true
	}

	for _, source := range config.EnforcementSourceTypes {
		classifier.enforcementSource[source] = true
	}

	return classifier, nil
}

// MustDefaultRelevance returns the classifier for the stock keyword sets
func MustDefaultRelevance() *RelevanceClassifier {
	c, err := NewRelevanceClassifier(nil)
	if err != nil {
		panic(err)
	}
	return c
}

// IsRelevant reports whether c should count as a gap for this statement
func (r *RelevanceClassifier) IsRelevant(c model.Criterion, text, sourceType string) bool {
	if r.alwaysRelevant[c] {
		return true
	}
	if c == model.EnforcementPower && r.enforcementSource[sourceType] {
		return true
	}
	if re, ok := r.patterns[c]; ok {
		return re.MatchString(text)
	}
	return false
}

// Keywords returns the compiled pattern for c, or "" when the criterion has no keyword gate
func (r *RelevanceClassifier) Keywords(c model.Criterion) string {
	if re, ok := r.patterns[c]; ok {
		return strings.TrimPrefix(re.String(), "(?i)")
	}
	return ""
}
