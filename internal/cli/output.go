package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/greenlie/internal/engine"
	"github.com/ppiankov/greenlie/internal/model"
)

const rule = "═══════════════════════════════════════════════════════════"

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func verdictMark(v model.Verdict) string {
	switch v {
	case model.VerdictDishonest:
		return "✗"
	case model.VerdictPartiallyValid:
		return "~"
	default:
		return "✓"
	}
}

func statusMark(s model.ConditionStatus) string {
	switch s {
	case model.StatusAvailable:
		return "✓"
	case model.StatusPartiallyAvailable:
		return "~"
	default:
		return "✗"
	}
}

func criteriaLabels(criteria []model.Criterion) string {
	if len(criteria) == 0 {
		return "none"
	}
	labels := make([]string, len(criteria))
	for i, c := range criteria {
		labels[i] = c.Label()
	}
	return strings.Join(labels, ", ")
}

func printSuggestions(w io.Writer, text, group string, missing []model.Criterion) {
	if len(missing) == 0 {
		return
	}
	fmt.Fprintln(w, "\nTo make this honest:")
	for _, s := range engine.HonestMakeoverSuggestions(text, group, missing) {
		fmt.Fprintf(w, "  • %s\n", strings.TrimPrefix(s, "To make this honest: "))
	}
	fmt.Fprintln(w, "\nWhat needs to change:")
	for _, s := range engine.OrderedRemediations(missing) {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}

func printUserVerdict(w io.Writer, v engine.UserVerdict) {
	fmt.Fprintf(w, "%s %s (honesty score %d/100)\n\n", verdictMark(v.Verdict), v.Verdict.Label(), v.Statistics.HonestyScore)
	fmt.Fprintf(w, "  Missing:   %s\n", criteriaLabels(v.MissingConditions))
	fmt.Fprintf(w, "  Partial:   %s\n", criteriaLabels(v.PartialConditions))
	fmt.Fprintf(w, "  Available: %s\n\n", criteriaLabels(v.AvailableConditions))
	fmt.Fprintln(w, v.Reasoning)
}
