package model

import (
	"errors"
	"fmt"
)

// ConditionExamples lists scenarios where a condition holds (positive) and
// where it typically does not (negative)
type ConditionExamples struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// CriterionAssessment is the curated judgement for a single criterion
type CriterionAssessment struct {
	Status      ConditionStatus   `json:"status"`
	Explanation string            `json:"explanation"`
	Examples    ConditionExamples `json:"examples"`
}

// CriteriaAssessment maps every criterion to its assessment
type CriteriaAssessment map[Criterion]CriterionAssessment

// Validate checks that exactly the five criteria are present with known statuses
func (ca CriteriaAssessment) Validate() error {
	if len(ca) != CriteriaCount {
		return fmt.Errorf("criteria assessment has %d entries, want %d", len(ca), CriteriaCount)
	}
	for _, c := range AllCriteria() {
		a, ok := ca[c]
		if !ok {
			return fmt.Errorf("criteria assessment missing %s", c)
		}
		if !a.Status.Valid() {
			return fmt.Errorf("criterion %s has invalid status %q", c, a.Status)
		}
	}
	return nil
}

// Missing returns the criteria whose status is not_available, in display order
func (ca CriteriaAssessment) Missing() []Criterion {
	return ca.withStatus(StatusNotAvailable)
}

// Partial returns the criteria whose status is partially_available, in display order
func (ca CriteriaAssessment) Partial() []Criterion {
	return ca.withStatus(StatusPartiallyAvailable)
}

func (ca CriteriaAssessment) withStatus(status ConditionStatus) []Criterion {
	out := []Criterion{}
	for _, c := range AllCriteria() {
		if a, ok := ca[c]; ok && a.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// Statement is an editor-curated sustainability statement
type Statement struct {
	ID                    string             `json:"id"`
	Statement             string             `json:"statement"`
	TargetGroup           string             `json:"target_group"`
	SourceType            string             `json:"source_type"`
	Action                string             `json:"action"`
	CriteriaAssessment    CriteriaAssessment `json:"criteria_assessment"`
	Verdict               string             `json:"verdict"`
	Reasoning             string             `json:"reasoning"`
	ActionableSuggestions []string           `json:"actionable_suggestions"`
}

// Validate checks the invariants of a reference record
func (s Statement) Validate() error {
	if s.ID == "" {
		return errors.New("statement id is empty")
	}
	if err := s.CriteriaAssessment.Validate(); err != nil {
		return fmt.Errorf("statement %s: %w", s.ID, err)
	}
	return nil
}

// VerdictFamily classifies the curated verdict label
func (s Statement) VerdictFamily() Verdict {
	return VerdictFamily(s.Verdict)
}

// UserSelection is one questionnaire answer and whether it matched ground truth
type UserSelection struct {
	Criterion  Criterion       `json:"criterion"`
	UserChoice ConditionStatus `json:"userChoice"`
	IsCorrect  bool            `json:"isCorrect"`
}

// AnalysisResult is the outcome of a fact-based evaluation
type AnalysisResult struct {
	Statement         Statement       `json:"statement"`
	UserSelections    []UserSelection `json:"userSelections"`
	MissingConditions []Criterion     `json:"missingConditions"`
	Verdict           Verdict         `json:"verdict"`
}

// CorrectCount returns how many selections matched the curated status
func (r AnalysisResult) CorrectCount() int {
	n := 0
	for _, sel := range r.UserSelections {
		if sel.IsCorrect {
			n++
		}
	}
	return n
}
