package model

// CustomAnalysis is attached to a custom statement once its questionnaire completes
type CustomAnalysis struct {
	MissingConditions  []Criterion        `json:"missingConditions"`
	Verdict            Verdict            `json:"verdict"`
	CriteriaAssessment CriteriaAssessment `json:"criteriaAssessment,omitempty"`
}

// CustomStatementInput is the user-submitted part of a custom statement
type CustomStatementInput struct {
	Statement   string `json:"statement"`
	SourceType  string `json:"sourceType"`
	TargetGroup string `json:"targetGroup"`
}

// MinStatementLength is the minimum trimmed length of a custom statement text
const MinStatementLength = 10

// CustomStatement is a free-text statement owned by the local session
type CustomStatement struct {
	ID             string          `json:"id"`
	Statement      string          `json:"statement"`
	SourceType     string          `json:"sourceType"`
	TargetGroup    string          `json:"targetGroup"`
	Timestamp      int64           `json:"timestamp"` // unix milliseconds
	Analyzed       bool            `json:"analyzed"`
	AnalysisResult *CustomAnalysis `json:"analysisResult,omitempty"`
}

// MarkAnalyzed attaches the analysis result
func (cs *CustomStatement) MarkAnalyzed(result CustomAnalysis) {
	cs.Analyzed = true
	cs.AnalysisResult = &result
}

// StoredAnalysis is one completed evaluation session in the append-only log.
// Verdict is the computed verdict; records holding a curated label such as
// "GREEN LIE" still decode through Verdict.UnmarshalText.
type StoredAnalysis struct {
	ID                string          `json:"id"`
	StatementID       string          `json:"statementId"`
	Statement         string          `json:"statement"`
	TargetGroup       string          `json:"targetGroup"`
	SourceType        string          `json:"sourceType"`
	UserSelections    []UserSelection `json:"userSelections"`
	MissingConditions []Criterion     `json:"missingConditions"`
	Verdict           Verdict         `json:"verdict"`
	Timestamp         int64           `json:"timestamp"`
}

// VoteType is a community confirmation of a condition
type VoteType string

const (
	// Fact-based path, cast per criterion
	VoteMissing   VoteType = "missing"
	VoteAvailable VoteType = "available"

	// Custom-statement path, cast for the statement as a whole
	VoteConfirmMissing   VoteType = "confirmMissing"
	VoteConfirmAvailable VoteType = "confirmAvailable"
)

// Valid reports whether t is a known vote type
func (t VoteType) Valid() bool {
	switch t {
	case VoteMissing, VoteAvailable, VoteConfirmMissing, VoteConfirmAvailable:
		return true
	}
	return false
}

// ForCustom reports whether t belongs to the custom-statement path
func (t VoteType) ForCustom() bool {
	return t == VoteConfirmMissing || t == VoteConfirmAvailable
}

// Vote is a lightweight community vote. Criterion is unset for custom votes.
type Vote struct {
	StatementID string    `json:"statementId"`
	Criterion   Criterion `json:"criterion,omitempty"`
	VoteType    VoteType  `json:"voteType"`
	Timestamp   int64     `json:"timestamp"`
}
