package engine

import "github.com/ppiankov/greenlie/internal/model"

// Feedback is the corrective message shown after each questionnaire answer
type Feedback struct {
	Criterion     model.Criterion         `json:"criterion"`
	IsCorrect     bool                    `json:"isCorrect"`
	CorrectStatus model.ConditionStatus   `json:"correctStatus"`
	Explanation   string                  `json:"explanation"`
	Examples      model.ConditionExamples `json:"examples"`
}

// JudgeSelection compares a user's choice with the curated status using strict equality
func JudgeSelection(stmt model.Statement, c model.Criterion, choice model.ConditionStatus) model.UserSelection {
	return model.UserSelection{
		Criterion:  c,
		UserChoice: choice,
		IsCorrect:  stmt.CriteriaAssessment[c].Status == choice,
	}
}

// CorrectiveFeedback returns the curated explanation and examples for c
// along with whether the user's choice matched
func CorrectiveFeedback(stmt model.Statement, c model.Criterion, choice model.ConditionStatus) Feedback {
	assessment := stmt.CriteriaAssessment[c]
	return Feedback{
		Criterion:     c,
		IsCorrect:     choice == assessment.Status,
		CorrectStatus: assessment.Status,
		Explanation:   assessment.Explanation,
		Examples:      assessment.Examples,
	}
}

// JudgeAll judges every answer in display order, skipping unanswered criteria
func JudgeAll(stmt model.Statement, answers map[model.Criterion]model.ConditionStatus) []model.UserSelection {
	out := make([]model.UserSelection, 0, len(answers))
	for _, c := range model.AllCriteria() {
		choice, ok := answers[c]
		if !ok {
			continue
		}
		out = append(out, JudgeSelection(stmt, c, choice))
	}
	return out
}
