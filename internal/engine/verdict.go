package engine

import (
	"fmt"
	"math"

	"github.com/ppiankov/greenlie/internal/model"
)

// VerdictForMissing maps a missing-condition count to a verdict:
// three or more is a green lie, one or two is partially valid, none is honest
func VerdictForMissing(missing int) model.Verdict {
	switch {
	case missing >= 3:
		return model.VerdictDishonest
	case missing >= 1:
		return model.VerdictPartiallyValid
	default:
		return model.VerdictHonest
	}
}

// EvaluateAgainstFacts computes the verdict from the statement's curated
// assessment. The user's selections are carried along for feedback only.
func EvaluateAgainstFacts(stmt model.Statement, selections []model.UserSelection) model.AnalysisResult {
	missing := stmt.CriteriaAssessment.Missing()
	if selections == nil {
		selections = []model.UserSelection{}
	}
	return model.AnalysisResult{
		Statement:         stmt,
		UserSelections:    selections,
		MissingConditions: missing,
		Verdict:           VerdictForMissing(len(missing)),
	}
}

// Statistics is the tally block displayed with a user-based verdict
type Statistics struct {
	TotalConditions int `json:"totalConditions"`
	MissingCount    int `json:"missingCount"`
	PartialCount    int `json:"partialCount"`
	AvailableCount  int `json:"availableCount"`
	HonestyScore    int `json:"honestyScore"`
}

// UserVerdict is the outcome of a custom-statement questionnaire
type UserVerdict struct {
	Verdict             model.Verdict     `json:"verdict"`
	MissingConditions   []model.Criterion `json:"missingConditions"`
	PartialConditions   []model.Criterion `json:"partialConditions"`
	AvailableConditions []model.Criterion `json:"availableConditions"`
	Probability         int               `json:"probability"` // same figure as HonestyScore
	Reasoning           string            `json:"reasoning"`
	Statistics          Statistics        `json:"statistics"`
}

// EvaluateFromUserSelections scores the user's own judgements. An absent or
// invalid entry counts as not_available.
func EvaluateFromUserSelections(selections map[model.Criterion]model.ConditionStatus) UserVerdict {
	missing := []model.Criterion{}
	partial := []model.Criterion{}
	available := []model.Criterion{}

	for _, c := range model.AllCriteria() {
		switch selections[c] {
		case model.StatusAvailable:
			available = append(available, c)
		case model.StatusPartiallyAvailable:
			partial = append(partial, c)
		default:
			missing = append(missing, c)
		}
	}

	total := model.CriteriaCount
	missingCount := len(missing)
	partialCount := len(partial)
	availableCount := len(available)

	// available=1, partial=0.5, missing=0
	score := int(math.Round((float64(availableCount) + float64(partialCount)*0.5) / float64(total) * 100))

	var verdict model.Verdict
	var reasoning string

	switch {
	case missingCount >= 3:
		verdict = model.VerdictDishonest
		reasoning = fmt.Sprintf("With %d out of %d conditions missing, this statement places responsibility on a group without providing the structural support needed. The target group lacks control over %s.",
			missingCount, total, model.JoinPhrases(missing, ", "))
	case missingCount == 0 && partialCount == 0:
		verdict = model.VerdictHonest
		reasoning = fmt.Sprintf("All %d conditions are available. The target group has full structural power to implement this action.", total)
	case missingCount == 0:
		if partialCount >= 3 {
			verdict = model.VerdictPartiallyValid
			reasoning = fmt.Sprintf("While no conditions are completely missing, %d conditions are only partially available. This creates significant barriers to action.", partialCount)
		} else {
			verdict = model.VerdictHonest
			reasoning = fmt.Sprintf("While no conditions are completely missing, %d conditions are only partially available. Minor improvements could make this fully actionable.", partialCount)
		}
	case missingCount == 1:
		verdict = model.VerdictPartiallyValid
		reasoning = fmt.Sprintf("Only 1 condition is missing (%s), making this statement partially valid. Addressing this gap would make it structurally honest.", missing[0].Phrase())
	default:
		verdict = model.VerdictPartiallyValid
		reasoning = fmt.Sprintf("%d conditions are missing: %s. This creates meaningful barriers but is not fully dishonest.", missingCount, model.JoinPhrases(missing, " and "))
	}

	return UserVerdict{
		Verdict:             verdict,
		MissingConditions:   missing,
		PartialConditions:   partial,
		AvailableConditions: available,
		Probability:         score,
		Reasoning:           reasoning,
		Statistics: Statistics{
			TotalConditions: total,
			MissingCount:    missingCount,
			PartialCount:    partialCount,
			AvailableCount:  availableCount,
			HonestyScore:    score,
		},
	}
}
