package engine

import (
	"fmt"
	"regexp"

	"github.com/ppiankov/greenlie/internal/model"
)

var remediations = map[model.Criterion]string{
	model.DecisionAuthority:          "Transfer decision-making power to the target group or create participatory processes where they can influence policy",
	model.AccessToAlternatives:       "Ensure sustainable alternatives are widely accessible, convenient, and available at point of need",
	model.Affordability:              "Provide subsidies, free alternatives, or implement price controls to eliminate cost barriers for the target group",
	model.InfrastructureAvailability: "Install necessary infrastructure (e.g., water refill stations, bike lanes, recycling bins, composting facilities)",
	model.EnforcementPower:           "Grant institutional authority to enforce sustainability measures or create binding policies with accountability mechanisms",
}

// recyclePattern must be tried before cyclePattern: "recycle" contains "cycle"
var (
	refillPattern  = regexp.MustCompile(`(?i)reusable|refill`)
	recyclePattern = regexp.MustCompile(`(?i)recycl`)
	cyclePattern   = regexp.MustCompile(`(?i)bike|cycl`)
)

const makeoverPrefix = "To make this honest: "

// Remediation returns the generic remediation text for c
func Remediation(c model.Criterion) string {
	return remediations[c]
}

// RemediationSuggestions returns the generic remediation for each missing criterion
func RemediationSuggestions(missing []model.Criterion) map[model.Criterion]string {
	out := make(map[model.Criterion]string, len(missing))
	for _, c := range missing {
		if text, ok := remediations[c]; ok {
			out[c] = text
		}
	}
	return out
}

// OrderedRemediations lists the remediations in first-seen order of missing, once each
func OrderedRemediations(missing []model.Criterion) []string {
	seen := make(map[model.Criterion]bool, len(missing))
	out := []string{}
	for _, c := range missing {
		text, ok := remediations[c]
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, text)
	}
	return out
}

// HonestMakeoverSuggestions produces one statement-specific suggestion per
// entry of missing, duplicates included
func HonestMakeoverSuggestions(text, group string, missing []model.Criterion) []string {
	out := make([]string, 0, len(missing))
	for _, c := range missing {
		var s string
		switch c {
		case model.InfrastructureAvailability:
			switch {
			case refillPattern.MatchString(text):
				s = "Install water refill stations across all campus buildings by next semester"
			case recyclePattern.MatchString(text):
				s = "Place clearly-labeled recycling bins within 50 meters of all common areas"
			case cyclePattern.MatchString(text):
				s = fmt.Sprintf("Build protected bike lanes and secure parking before asking %s to cycle", group)
			default:
				s = fmt.Sprintf("Provide the necessary infrastructure before placing responsibility on %s", group)
			}
		case model.Affordability:
			s = fmt.Sprintf("Subsidize sustainable alternatives or provide them free to %s", group)
		case model.DecisionAuthority:
			s = fmt.Sprintf("Give %s a seat at the decision-making table through participatory governance", group)
		case model.AccessToAlternatives:
			s = "Ensure sustainable options are as convenient as unsustainable ones"
		case model.EnforcementPower:
			s = "Create institutional policies that hold corporations accountable, not individuals"
		default:
			continue
		}
		out = append(out, makeoverPrefix+s)
	}
	return out
}
