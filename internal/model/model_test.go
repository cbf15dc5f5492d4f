package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func fullAssessment(status ConditionStatus) CriteriaAssessment {
	ca := CriteriaAssessment{}
	for _, c := range AllCriteria() {
		ca[c] = CriterionAssessment{Status: status, Explanation: "test"}
	}
	return ca
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		label      string
		expected   Verdict
		recognised bool
	}{
		{"GREEN LIE", VerdictDishonest, true},
		{"structurally_dishonest", VerdictDishonest, true},
		{"PARTIALLY VALID", VerdictPartiallyValid, true},
		{"partially_valid", VerdictPartiallyValid, true},
		{"MISLEADING", VerdictPartiallyValid, true},
		{"MISLEADING / PARTIALLY HONEST", VerdictPartiallyValid, true},
		{"STRUCTURALLY HONEST", VerdictHonest, true},
		{"structurally_honest", VerdictHonest, true},
		{"DEPENDS", VerdictHonest, false},
		{"", VerdictHonest, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseVerdict(tt.label)
			if got != tt.expected {
				t.Errorf("ParseVerdict(%q) = %v, want %v", tt.label, got, tt.expected)
			}
			if ok != tt.recognised {
				t.Errorf("ParseVerdict(%q) recognised = %v, want %v", tt.label, ok, tt.recognised)
			}
		})
	}
}

func TestVerdict_LabelParsesBack(t *testing.T) {
	for _, v := range []Verdict{VerdictHonest, VerdictPartiallyValid, VerdictDishonest} {
		if got := VerdictFamily(v.Label()); got != v {
			t.Errorf("label %q parsed to %v, want %v", v.Label(), got, v)
		}
		if got := VerdictFamily(v.String()); got != v {
			t.Errorf("identifier %q parsed to %v, want %v", v.String(), got, v)
		}
	}
}

func TestParseCriterion(t *testing.T) {
	for _, c := range AllCriteria() {
		got, err := ParseCriterion(strings.ToUpper(c.String()))
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", c, err)
		}
		if got != c {
			t.Errorf("expected %v, got %v", c, got)
		}
	}

	if _, err := ParseCriterion("courage"); err == nil {
		t.Error("expected error for unknown criterion")
	}
}

func TestCriterion_Phrase(t *testing.T) {
	if got := InfrastructureAvailability.Phrase(); got != "infrastructure availability" {
		t.Errorf("unexpected phrase %q", got)
	}
}

func TestParseConditionStatus(t *testing.T) {
	tests := map[string]ConditionStatus{
		"available":           StatusAvailable,
		"YES":                 StatusAvailable,
		"partially_available": StatusPartiallyAvailable,
		"2":                   StatusPartiallyAvailable,
		"not_available":       StatusNotAvailable,
		"no":                  StatusNotAvailable,
	}
	for in, want := range tests {
		got, err := ParseConditionStatus(in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseConditionStatus(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseConditionStatus("maybe"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestCriteriaAssessment_Validate(t *testing.T) {
	ca := fullAssessment(StatusAvailable)
	if err := ca.Validate(); err != nil {
		t.Fatalf("expected valid assessment, got %v", err)
	}

	delete(ca, EnforcementPower)
	if err := ca.Validate(); err == nil {
		t.Error("expected error for four criteria")
	}

	ca = fullAssessment(StatusAvailable)
	ca[Affordability] = CriterionAssessment{Status: "sometimes"}
	if err := ca.Validate(); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestCriteriaAssessment_JSONKeys(t *testing.T) {
	ca := fullAssessment(StatusPartiallyAvailable)
	ca[EnforcementPower] = CriterionAssessment{Status: StatusNotAvailable}

	data, err := json.Marshal(ca)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"enforcement_power":{"status":"not_available"`) {
		t.Errorf("expected snake_case criterion keys, got %s", data)
	}

	var decoded CriteriaAssessment
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	missing := decoded.Missing()
	if len(missing) != 1 || missing[0] != EnforcementPower {
		t.Errorf("expected enforcement_power missing, got %v", missing)
	}
	if len(decoded.Partial()) != 4 {
		t.Errorf("expected 4 partial criteria, got %d", len(decoded.Partial()))
	}
}

func TestCriteriaAssessment_RejectsUnknownKey(t *testing.T) {
	var ca CriteriaAssessment
	err := json.Unmarshal([]byte(`{"willpower":{"status":"available"}}`), &ca)
	if err == nil {
		t.Error("expected error decoding unknown criterion key")
	}
}

func TestStoredAnalysis_LegacyVerdictLabel(t *testing.T) {
	raw := `{"id":"analysis_1","statementId":"s1","verdict":"GREEN LIE","missingConditions":["affordability"]}`
	var a StoredAnalysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Verdict != VerdictDishonest {
		t.Errorf("expected dishonest verdict, got %v", a.Verdict)
	}
	if len(a.MissingConditions) != 1 || a.MissingConditions[0] != Affordability {
		t.Errorf("unexpected missing conditions %v", a.MissingConditions)
	}
}

func TestVote_CustomOmitsCriterion(t *testing.T) {
	data, err := json.Marshal(Vote{StatementID: "custom_1", VoteType: VoteConfirmMissing, Timestamp: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "criterion") {
		t.Errorf("expected criterion to be omitted, got %s", data)
	}
	if !VoteConfirmMissing.ForCustom() || VoteMissing.ForCustom() {
		t.Error("ForCustom misclassified vote types")
	}
}
