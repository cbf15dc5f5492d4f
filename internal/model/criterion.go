package model

import (
	"fmt"
	"strings"
)

// Criterion is one of the five structural-power dimensions a statement is judged on
type Criterion int

const (
	CriterionUnknown Criterion = iota
	DecisionAuthority
	AccessToAlternatives
	Affordability
	InfrastructureAvailability
	EnforcementPower
)

// CriteriaCount is the size of the closed criterion set
const CriteriaCount = 5

var criterionIDs = map[Criterion]string{
	DecisionAuthority:          "decision_authority",
	AccessToAlternatives:       "access_to_alternatives",
	Affordability:              "affordability",
	InfrastructureAvailability: "infrastructure_availability",
	EnforcementPower:           "enforcement_power",
}

var criterionLabels = map[Criterion]string{
	DecisionAuthority:          "Decision Authority",
	AccessToAlternatives:       "Access to Alternatives",
	Affordability:              "Affordability",
	InfrastructureAvailability: "Infrastructure Availability",
	EnforcementPower:           "Enforcement Power",
}

var criterionQuestions = map[Criterion]string{
	DecisionAuthority:          "Does the target group have the power to make this decision?",
	AccessToAlternatives:       "Are sustainable alternatives available to the target group?",
	Affordability:              "Can the target group afford to take this action?",
	InfrastructureAvailability: "Does the necessary infrastructure exist?",
	EnforcementPower:           "Can the target group enforce systemic change?",
}

// AllCriteria returns the criteria in display order
func AllCriteria() []Criterion {
	return []Criterion{
		DecisionAuthority,
		AccessToAlternatives,
		Affordability,
		InfrastructureAvailability,
		EnforcementPower,
	}
}

// String returns the snake_case identifier used at the JSON boundary
func (c Criterion) String() string {
	if id, ok := criterionIDs[c]; ok {
		return id
	}
	return "unknown"
}

// Label returns the title-cased display name
func (c Criterion) Label() string {
	if label, ok := criterionLabels[c]; ok {
		return label
	}
	return "Unknown"
}

// Question returns the questionnaire prompt for the criterion
func (c Criterion) Question() string {
	return criterionQuestions[c]
}

// Phrase renders the identifier with underscores replaced by spaces
func (c Criterion) Phrase() string {
	return strings.ReplaceAll(c.String(), "_", " ")
}

// Valid reports whether c is one of the five known criteria
func (c Criterion) Valid() bool {
	_, ok := criterionIDs[c]
	return ok
}

// ParseCriterion converts an identifier such as "decision_authority" into a Criterion
func ParseCriterion(s string) (Criterion, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	needle = strings.ReplaceAll(needle, " ", "_")
	needle = strings.ReplaceAll(needle, "-", "_")
	for c, id := range criterionIDs {
		if id == needle {
			return c, nil
		}
	}
	return CriterionUnknown, fmt.Errorf("unknown criterion %q", s)
}

// MarshalText implements encoding.TextMarshaler (also used for map keys)
func (c Criterion) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid criterion %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Criterion) UnmarshalText(text []byte) error {
	parsed, err := ParseCriterion(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// JoinPhrases renders criteria as a human-readable list joined by sep
func JoinPhrases(criteria []Criterion, sep string) string {
	parts := make([]string, len(criteria))
	for i, c := range criteria {
		parts[i] = c.Phrase()
	}
	return strings.Join(parts, sep)
}

// ConditionStatus is the degree to which a criterion holds for the target group
type ConditionStatus string

const (
	StatusAvailable          ConditionStatus = "available"
	StatusPartiallyAvailable ConditionStatus = "partially_available"
	StatusNotAvailable       ConditionStatus = "not_available"
)

// Valid reports whether s is a known status
func (s ConditionStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusPartiallyAvailable, StatusNotAvailable:
		return true
	}
	return false
}

// Weight returns the contribution of the status to the honesty score
func (s ConditionStatus) Weight() float64 {
	switch s {
	case StatusAvailable:
		return 1
	case StatusPartiallyAvailable:
		return 0.5
	default:
		return 0
	}
}

// Label returns a short display name
func (s ConditionStatus) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusPartiallyAvailable:
		return "Partially Available"
	case StatusNotAvailable:
		return "Not Available"
	default:
		return "Unanswered"
	}
}

// ParseConditionStatus accepts the canonical identifiers and a few shorthands
// ("yes"/"partial"/"no", "1"/"2"/"3")
func ParseConditionStatus(s string) (ConditionStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available", "yes", "y", "1":
		return StatusAvailable, nil
	case "partially_available", "partially available", "partial", "p", "2":
		return StatusPartiallyAvailable, nil
	case "not_available", "not available", "no", "n", "missing", "3":
		return StatusNotAvailable, nil
	}
	return "", fmt.Errorf("unknown condition status %q", s)
}

// AllStatuses returns the three statuses from most to least structural power
func AllStatuses() []ConditionStatus {
	return []ConditionStatus{StatusAvailable, StatusPartiallyAvailable, StatusNotAvailable}
}
