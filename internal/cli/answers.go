package cli

import (
	"fmt"
	"strings"

	"github.com/ppiankov/greenlie/internal/model"
)

// parseAnswers reads "criterion=status,..." as given to --answers
func parseAnswers(s string) (map[model.Criterion]model.ConditionStatus, error) {
	out := make(map[model.Criterion]model.ConditionStatus)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: want criterion=status", pair)
		}
		c, err := model.ParseCriterion(key)
		if err != nil {
			return nil, err
		}
		status, err := model.ParseConditionStatus(value)
		if err != nil {
			return nil, fmt.Errorf("answer for %s: %w", c, err)
		}
		if _, dup := out[c]; dup {
			return nil, fmt.Errorf("duplicate answer for %s", c)
		}
		out[c] = status
	}
	return out, nil
}

// parseCriteria reads a comma separated list of criteria
func parseCriteria(s string) ([]model.Criterion, error) {
	out := []model.Criterion{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := model.ParseCriterion(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
