package engine

import (
	"fmt"

	"github.com/ppiankov/greenlie/internal/model"
)

// DynamicCriterion is the heuristic judgement for one criterion
type DynamicCriterion struct {
	Status      model.ConditionStatus `json:"status"`
	Explanation string                `json:"explanation"`
}

// DynamicAssessment is the per-criterion outcome of the heuristic path
type DynamicAssessment struct {
	Assessment        map[model.Criterion]DynamicCriterion `json:"assessment"`
	MissingConditions []model.Criterion                    `json:"missingConditions"`
}

// DynamicResult adds the verdict and suggestions to a DynamicAssessment
type DynamicResult struct {
	Verdict           model.Verdict                        `json:"verdict"`
	MissingConditions []model.Criterion                    `json:"missingConditions"`
	Assessment        map[model.Criterion]DynamicCriterion `json:"assessment"`
	Suggestions       []string                             `json:"suggestions"`
}

// DynamicEvaluate infers criterion statuses from the group's power profile and
// the keyword heuristic, without curated ground truth
func (e *Engine) DynamicEvaluate(text, group, sourceType string) DynamicAssessment {
	assessment := make(map[model.Criterion]DynamicCriterion, model.CriteriaCount)
	missing := []model.Criterion{}

	for _, c := range model.AllCriteria() {
		switch {
		case Controls(group, c):
			assessment[c] = DynamicCriterion{
				Status:      model.StatusAvailable,
				Explanation: fmt.Sprintf("%s has structural control over %s.", group, c.Phrase()),
			}
		case e.relevance.IsRelevant(c, text, sourceType):
			assessment[c] = DynamicCriterion{
				Status:      model.StatusNotAvailable,
				Explanation: fmt.Sprintf("%s lacks structural control over %s. This power typically lies with institutions, not individuals.", group, c.Phrase()),
			}
			missing = append(missing, c)
		default:
			assessment[c] = DynamicCriterion{
				Status:      model.StatusAvailable,
				Explanation: "This criterion is not a barrier for this specific statement.",
			}
		}
	}

	return DynamicAssessment{Assessment: assessment, MissingConditions: missing}
}

// DynamicVerdict runs DynamicEvaluate and applies the missing-count thresholds
func (e *Engine) DynamicVerdict(text, group, sourceType string) DynamicResult {
	da := e.DynamicEvaluate(text, group, sourceType)
	return DynamicResult{
		Verdict:           VerdictForMissing(len(da.MissingConditions)),
		MissingConditions: da.MissingConditions,
		Assessment:        da.Assessment,
		Suggestions:       OrderedRemediations(da.MissingConditions),
	}
}
