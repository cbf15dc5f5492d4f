// Package engine scores sustainability statements for structural honesty.
//
// Everything here is a pure function of its inputs and the static tables.
// The Engine only bundles the reference catalog and the relevance classifier
// that the catalog-backed and heuristic operations need.
package engine

import (
	"github.com/ppiankov/greenlie/internal/facts"
	"github.com/ppiankov/greenlie/internal/model"
)

// Engine exposes the evaluation operations to the service and API layers
type Engine struct {
	catalog   *facts.Catalog
	relevance *RelevanceClassifier
}

// New creates an engine. A nil relevance classifier uses the default keyword sets.
func New(catalog *facts.Catalog, relevance *RelevanceClassifier) *Engine {
	if relevance == nil {
		relevance = MustDefaultRelevance()
	}
	return &Engine{
		catalog:   catalog,
		relevance: relevance,
	}
}

// LookupStatement returns the curated statement with the given id
func (e *Engine) LookupStatement(id string) (model.Statement, bool) {
	if e.catalog == nil {
		return model.Statement{}, false
	}
	return e.catalog.Lookup(id)
}

// ListStatements returns all curated statements
func (e *Engine) ListStatements() []model.Statement {
	if e.catalog == nil {
		return []model.Statement{}
	}
	return e.catalog.All()
}

// EvaluateAgainstFacts computes the fact-based verdict
func (e *Engine) EvaluateAgainstFacts(stmt model.Statement, selections []model.UserSelection) model.AnalysisResult {
	return EvaluateAgainstFacts(stmt, selections)
}

// EvaluateFromUserSelections computes the user-based verdict
func (e *Engine) EvaluateFromUserSelections(selections map[model.Criterion]model.ConditionStatus) UserVerdict {
	return EvaluateFromUserSelections(selections)
}

// CorrectiveFeedback returns per-step feedback for a curated statement
func (e *Engine) CorrectiveFeedback(stmt model.Statement, c model.Criterion, choice model.ConditionStatus) Feedback {
	return CorrectiveFeedback(stmt, c, choice)
}

// PowerProfile returns the criteria the group controls
func (e *Engine) PowerProfile(group string) []model.Criterion {
	return PowerProfile(group)
}

// TypicalPowerContext returns the advisory power context for the group
func (e *Engine) TypicalPowerContext(group string) PowerContext {
	return TypicalPowerContext(group)
}

// RemediationSuggestions returns the generic remediation per missing criterion
func (e *Engine) RemediationSuggestions(missing []model.Criterion) map[model.Criterion]string {
	return RemediationSuggestions(missing)
}

// HonestMakeoverSuggestions returns statement-specific suggestions
func (e *Engine) HonestMakeoverSuggestions(text, group string, missing []model.Criterion) []string {
	return HonestMakeoverSuggestions(text, group, missing)
}
