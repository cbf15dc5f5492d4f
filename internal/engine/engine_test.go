package engine

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/greenlie/internal/facts"
	"github.com/ppiankov/greenlie/internal/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	catalog, err := facts.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return New(catalog, nil)
}

func assessmentWith(statuses map[model.Criterion]model.ConditionStatus) model.CriteriaAssessment {
	ca := model.CriteriaAssessment{}
	for _, c := range model.AllCriteria() {
		status, ok := statuses[c]
		if !ok {
			status = model.StatusAvailable
		}
		ca[c] = model.CriterionAssessment{
			Status:      status,
			Explanation: "curated " + c.String(),
			Examples: model.ConditionExamples{
				Positive: []string{"positive " + c.String()},
				Negative: []string{"negative " + c.String()},
			},
		}
	}
	return ca
}

// selectionsFromCode decodes a base-3 number in [0, 243) into five answers
func selectionsFromCode(code int) map[model.Criterion]model.ConditionStatus {
	statuses := model.AllStatuses()
	out := make(map[model.Criterion]model.ConditionStatus, model.CriteriaCount)
	for _, c := range model.AllCriteria() {
		out[c] = statuses[code%3]
		code /= 3
	}
	return out
}

func expectedUserVerdict(missing, partial int) model.Verdict {
	if missing >= 3 {
		return model.VerdictDishonest
	}
	if missing == 0 && partial == 0 {
		return model.VerdictHonest
	}
	if missing == 0 {
		if partial >= 3 {
			return model.VerdictPartiallyValid
		}
		return model.VerdictHonest
	}
	return model.VerdictPartiallyValid
}

func TestPowerProfile(t *testing.T) {
	tests := []struct {
		group    string
		expected []model.Criterion
	}{
		{"Government", model.AllCriteria()},
		{"City Government", model.AllCriteria()},
		{"Students", []model.Criterion{}},
		{"Consumers", []model.Criterion{model.AccessToAlternatives}},
		{"Corporations", []model.Criterion{model.DecisionAuthority, model.AccessToAlternatives, model.Affordability, model.InfrastructureAvailability}},
		{"UnknownGroup", []model.Criterion{}},
		{"General Public", []model.Criterion{}},
	}

	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			got := PowerProfile(tt.group)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("PowerProfile(%q) = %v, want %v", tt.group, got, tt.expected)
			}
		})
	}
}

func TestPowerProfile_ReturnsCopy(t *testing.T) {
	p := PowerProfile("Government")
	p[0] = model.EnforcementPower
	if PowerProfile("Government")[0] != model.DecisionAuthority {
		t.Error("mutating the returned profile changed the table")
	}
}

func TestTypicalPowerContext(t *testing.T) {
	tests := []struct {
		group string
		level PowerLevel
		has   int
	}{
		{"Government", PowerHigh, 5},
		{"Corporations", PowerHigh, 4},
		{"Institutions", PowerMedium, 3},
		{"Consumers", PowerLow, 1},
		{"Youth", PowerLow, 0},
		{"Aliens", PowerLow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			ctx := TypicalPowerContext(tt.group)
			if ctx.PowerLevel != tt.level {
				t.Errorf("expected %s power, got %s", tt.level, ctx.PowerLevel)
			}
			if len(ctx.TypicallyHas) != tt.has {
				t.Errorf("expected %d typically held criteria, got %d", tt.has, len(ctx.TypicallyHas))
			}
			if !strings.HasPrefix(ctx.ContextNote, tt.group) {
				t.Errorf("expected note to name %s, got %q", tt.group, ctx.ContextNote)
			}
		})
	}
}

func TestTargetGroups_AllHaveProfiles(t *testing.T) {
	for _, g := range TargetGroups() {
		if !KnownTargetGroup(g) {
			t.Errorf("listed group %q has no power profile", g)
		}
		if _, ok := typicalPowers[g]; !ok {
			t.Errorf("listed group %q has no typical power entry", g)
		}
	}
	if len(TargetGroups()) != len(powerProfiles) {
		t.Errorf("expected %d listed groups, got %d", len(powerProfiles), len(TargetGroups()))
	}
}

func TestRelevanceClassifier_Defaults(t *testing.T) {
	r := MustDefaultRelevance()

	tests := []struct {
		criterion model.Criterion
		text      string
		source    string
		expected  bool
	}{
		{model.InfrastructureAvailability, "Bring a REUSABLE cup", "Campaign", true},
		{model.InfrastructureAvailability, "Take public transport", "Campaign", true},
		{model.InfrastructureAvailability, "Eat less meat", "Campaign", false},
		{model.Affordability, "Switch to green energy", "Campaign", true},
		{model.Affordability, "Eat less meat", "Campaign", false},
		{model.DecisionAuthority, "You must act now", "Campaign", true},
		{model.DecisionAuthority, "Green is good", "Campaign", false},
		{model.AccessToAlternatives, "anything at all", "Campaign", true},
		{model.EnforcementPower, "You must act now", "Government Policy", true},
		{model.EnforcementPower, "You must act now", "Campaign", false},
	}

	for _, tt := range tests {
		t.Run(tt.criterion.String()+"/"+tt.text, func(t *testing.T) {
			if got := r.IsRelevant(tt.criterion, tt.text, tt.source); got != tt.expected {
				t.Errorf("IsRelevant(%s, %q, %q) = %v, want %v", tt.criterion, tt.text, tt.source, got, tt.expected)
			}
		})
	}
}

func TestRelevanceClassifier_CustomPatterns(t *testing.T) {
	cfg := model.RelevanceConfig{
		Patterns: map[string][]string{
			"affordability": {"spend", "pay"},
		},
		EnforcementSourceTypes: []string{"Regulation"},
	}
	r, err := NewRelevanceClassifier(&cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !r.IsRelevant(model.Affordability, "Pay a little more", "Campaign") {
		t.Error("expected custom affordability keyword to match")
	}
	if r.IsRelevant(model.Affordability, "Buy local", "Campaign") {
		t.Error("expected default affordability keywords to be replaced")
	}
	if r.IsRelevant(model.AccessToAlternatives, "anything", "Campaign") {
		t.Error("expected access_to_alternatives to be gated when not configured always relevant")
	}
	if !r.IsRelevant(model.EnforcementPower, "anything", "Regulation") {
		t.Error("expected custom enforcement source type")
	}
	if r.Keywords(model.Affordability) != "spend|pay" {
		t.Errorf("unexpected keywords %q", r.Keywords(model.Affordability))
	}
}

func TestRelevanceClassifier_RejectsBadConfig(t *testing.T) {
	bad := []model.RelevanceConfig{
		{Patterns: map[string][]string{"willpower": {"x"}}},
		{Patterns: map[string][]string{"affordability": {"("}}},
		{AlwaysRelevant: []string{"luck"}},
	}
	for i, cfg := range bad {
		cfg := cfg
		if _, err := NewRelevanceClassifier(&cfg); err == nil {
			t.Errorf("config %d: expected error", i)
		}
	}
}

func TestEvaluateAgainstFacts_Thresholds(t *testing.T) {
	order := model.AllCriteria()
	for missing := 0; missing <= model.CriteriaCount; missing++ {
		statuses := map[model.Criterion]model.ConditionStatus{}
		for i := 0; i < missing; i++ {
			statuses[order[i]] = model.StatusNotAvailable
		}
		// partial entries never count toward the fact-based verdict
		for i := missing; i < model.CriteriaCount; i++ {
			statuses[order[i]] = model.StatusPartiallyAvailable
		}
		stmt := model.Statement{ID: "t", CriteriaAssessment: assessmentWith(statuses)}

		result := EvaluateAgainstFacts(stmt, nil)

		if len(result.MissingConditions) != missing {
			t.Errorf("expected %d missing, got %d", missing, len(result.MissingConditions))
		}
		var want model.Verdict
		switch {
		case missing >= 3:
			want = model.VerdictDishonest
		case missing == 0:
			want = model.VerdictHonest
		default:
			want = model.VerdictPartiallyValid
		}
		if result.Verdict != want {
			t.Errorf("missing=%d: expected %v, got %v", missing, want, result.Verdict)
		}
		if result.UserSelections == nil {
			t.Error("expected non-nil selections slice")
		}
	}
}

func TestEvaluateAgainstFacts_IgnoresUserInput(t *testing.T) {
	stmt := model.Statement{ID: "t", CriteriaAssessment: assessmentWith(nil)}
	selections := []model.UserSelection{
		{Criterion: model.DecisionAuthority, UserChoice: model.StatusNotAvailable},
		{Criterion: model.Affordability, UserChoice: model.StatusNotAvailable},
		{Criterion: model.EnforcementPower, UserChoice: model.StatusNotAvailable},
	}
	result := EvaluateAgainstFacts(stmt, selections)
	if result.Verdict != model.VerdictHonest {
		t.Errorf("expected honest verdict, got %v", result.Verdict)
	}
	if len(result.UserSelections) != 3 {
		t.Errorf("expected selections to be echoed, got %d", len(result.UserSelections))
	}
}

func TestEvaluateAgainstFacts_CatalogMatchesCuratedFamily(t *testing.T) {
	e := newTestEngine(t)
	for _, stmt := range e.ListStatements() {
		result := e.EvaluateAgainstFacts(stmt, nil)
		if result.Verdict != stmt.VerdictFamily() {
			t.Errorf("%s: computed %v but curated label %q", stmt.ID, result.Verdict, stmt.Verdict)
		}
	}
}

func TestEvaluateFromUserSelections_Exhaustive(t *testing.T) {
	seen := map[model.Verdict]int{}

	for code := 0; code < 243; code++ {
		selections := selectionsFromCode(code)

		available, partial, missing := 0, 0, 0
		for _, s := range selections {
			switch s {
			case model.StatusAvailable:
				available++
			case model.StatusPartiallyAvailable:
				partial++
			default:
				missing++
			}
		}

		result := EvaluateFromUserSelections(selections)
		stats := result.Statistics

		wantScore := int(math.Round((float64(available) + 0.5*float64(partial)) / 5 * 100))
		if stats.HonestyScore != wantScore || result.Probability != wantScore {
			t.Errorf("code %d: expected score %d, got %d/%d", code, wantScore, stats.HonestyScore, result.Probability)
		}
		if stats.HonestyScore < 0 || stats.HonestyScore > 100 {
			t.Errorf("code %d: score %d out of range", code, stats.HonestyScore)
		}
		if stats.MissingCount+stats.PartialCount+stats.AvailableCount != stats.TotalConditions || stats.TotalConditions != 5 {
			t.Errorf("code %d: tallies do not sum to 5: %+v", code, stats)
		}
		if stats.MissingCount != missing || stats.PartialCount != partial || stats.AvailableCount != available {
			t.Errorf("code %d: unexpected tallies %+v", code, stats)
		}
		if len(result.MissingConditions) != missing || len(result.PartialConditions) != partial || len(result.AvailableConditions) != available {
			t.Errorf("code %d: condition lists disagree with tallies", code)
		}
		if want := expectedUserVerdict(missing, partial); result.Verdict != want {
			t.Errorf("code %d (missing=%d partial=%d): expected %v, got %v", code, missing, partial, want, result.Verdict)
		}
		if result.Reasoning == "" {
			t.Errorf("code %d: empty reasoning", code)
		}
		seen[result.Verdict]++
	}

	if len(seen) != 3 {
		t.Errorf("expected all three verdicts to occur, got %v", seen)
	}
}

func TestEvaluateFromUserSelections_RuleOrder(t *testing.T) {
	all := func(s model.ConditionStatus) map[model.Criterion]model.ConditionStatus {
		out := map[model.Criterion]model.ConditionStatus{}
		for _, c := range model.AllCriteria() {
			out[c] = s
		}
		return out
	}

	allPartial := EvaluateFromUserSelections(all(model.StatusPartiallyAvailable))
	if allPartial.Verdict != model.VerdictPartiallyValid {
		t.Errorf("0 missing / 5 partial: expected partially valid, got %v", allPartial.Verdict)
	}
	if allPartial.Statistics.HonestyScore != 50 {
		t.Errorf("expected score 50, got %d", allPartial.Statistics.HonestyScore)
	}

	twoPartial := all(model.StatusAvailable)
	twoPartial[model.Affordability] = model.StatusPartiallyAvailable
	twoPartial[model.EnforcementPower] = model.StatusPartiallyAvailable
	if got := EvaluateFromUserSelections(twoPartial).Verdict; got != model.VerdictHonest {
		t.Errorf("0 missing / 2 partial: expected honest, got %v", got)
	}

	allAvailable := EvaluateFromUserSelections(all(model.StatusAvailable))
	if allAvailable.Verdict != model.VerdictHonest || allAvailable.Statistics.HonestyScore != 100 || len(allAvailable.MissingConditions) != 0 {
		t.Errorf("all available: unexpected result %+v", allAvailable)
	}

	threeMissing := map[model.Criterion]model.ConditionStatus{
		model.DecisionAuthority:          model.StatusNotAvailable,
		model.AccessToAlternatives:       model.StatusNotAvailable,
		model.Affordability:              model.StatusNotAvailable,
		model.InfrastructureAvailability: model.StatusPartiallyAvailable,
		model.EnforcementPower:           model.StatusPartiallyAvailable,
	}
	result := EvaluateFromUserSelections(threeMissing)
	if result.Verdict != model.VerdictDishonest {
		t.Errorf("3 missing: expected dishonest, got %v", result.Verdict)
	}
	if result.Statistics.HonestyScore != 20 {
		t.Errorf("expected score 20, got %d", result.Statistics.HonestyScore)
	}
	if !strings.Contains(result.Reasoning, "decision authority") {
		t.Errorf("expected reasoning to name missing criteria, got %q", result.Reasoning)
	}
}

func TestEvaluateFromUserSelections_MissingEntriesCountAsNotAvailable(t *testing.T) {
	result := EvaluateFromUserSelections(map[model.Criterion]model.ConditionStatus{
		model.DecisionAuthority: model.StatusAvailable,
	})
	if result.Statistics.MissingCount != 4 {
		t.Errorf("expected 4 missing, got %d", result.Statistics.MissingCount)
	}
	if result.Verdict != model.VerdictDishonest {
		t.Errorf("expected dishonest, got %v", result.Verdict)
	}
}

func TestEvaluateFromUserSelections_ReasoningNamesCriteria(t *testing.T) {
	one := selectionsFromCode(0) // all available
	one[model.InfrastructureAvailability] = model.StatusNotAvailable
	r := EvaluateFromUserSelections(one)
	if !strings.Contains(r.Reasoning, "(infrastructure availability)") {
		t.Errorf("unexpected reasoning %q", r.Reasoning)
	}

	two := selectionsFromCode(0)
	two[model.Affordability] = model.StatusNotAvailable
	two[model.EnforcementPower] = model.StatusNotAvailable
	r = EvaluateFromUserSelections(two)
	if !strings.Contains(r.Reasoning, "affordability and enforcement power") {
		t.Errorf("unexpected reasoning %q", r.Reasoning)
	}
}

func TestCorrectiveFeedback(t *testing.T) {
	stmt := model.Statement{ID: "t", CriteriaAssessment: assessmentWith(map[model.Criterion]model.ConditionStatus{
		model.Affordability: model.StatusPartiallyAvailable,
	})}

	fb := CorrectiveFeedback(stmt, model.Affordability, model.StatusPartiallyAvailable)
	if !fb.IsCorrect {
		t.Error("expected partial choice to match partial ground truth")
	}
	if fb.Explanation != "curated affordability" {
		t.Errorf("unexpected explanation %q", fb.Explanation)
	}
	if len(fb.Examples.Positive) != 1 || len(fb.Examples.Negative) != 1 {
		t.Errorf("expected curated examples, got %+v", fb.Examples)
	}

	for _, choice := range []model.ConditionStatus{model.StatusAvailable, model.StatusNotAvailable} {
		if CorrectiveFeedback(stmt, model.Affordability, choice).IsCorrect {
			t.Errorf("expected %s to be incorrect against partial ground truth", choice)
		}
		if JudgeSelection(stmt, model.Affordability, choice).IsCorrect {
			t.Errorf("JudgeSelection disagrees with CorrectiveFeedback for %s", choice)
		}
	}
}

func TestJudgeAll_DisplayOrder(t *testing.T) {
	stmt := model.Statement{ID: "t", CriteriaAssessment: assessmentWith(nil)}
	got := JudgeAll(stmt, map[model.Criterion]model.ConditionStatus{
		model.EnforcementPower:  model.StatusAvailable,
		model.DecisionAuthority: model.StatusNotAvailable,
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(got))
	}
	if got[0].Criterion != model.DecisionAuthority || got[0].IsCorrect {
		t.Errorf("unexpected first selection %+v", got[0])
	}
	if got[1].Criterion != model.EnforcementPower || !got[1].IsCorrect {
		t.Errorf("unexpected second selection %+v", got[1])
	}
}

func TestRemediationSuggestions(t *testing.T) {
	if got := RemediationSuggestions(nil); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
	if got := RemediationSuggestions([]model.Criterion{}); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}

	got := RemediationSuggestions([]model.Criterion{model.Affordability})
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[model.Affordability] != remediations[model.Affordability] {
		t.Errorf("unexpected affordability text %q", got[model.Affordability])
	}
}

func TestOrderedRemediations_Dedupes(t *testing.T) {
	got := OrderedRemediations([]model.Criterion{model.EnforcementPower, model.Affordability, model.EnforcementPower})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0] != Remediation(model.EnforcementPower) || got[1] != Remediation(model.Affordability) {
		t.Errorf("unexpected order %v", got)
	}
}

func TestHonestMakeoverSuggestions(t *testing.T) {
	infra := []model.Criterion{model.InfrastructureAvailability}

	tests := []struct {
		text     string
		contains string
	}{
		{"Bring a reusable bottle", "water refill stations"},
		{"Cycle to school", "protected bike lanes"},
		{"Recycle your cans", "recycling bins"},
		{"Youth should recycle more to save the planet", "recycling bins"},
		{"Recycling starts at home", "recycling bins"},
		{"Bike to the lecture hall", "protected bike lanes"},
		{"Start cycling to work", "protected bike lanes"},
		{"Plant a tree", "necessary infrastructure before placing responsibility on Students"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := HonestMakeoverSuggestions(tt.text, "Students", infra)
			if len(got) != 1 {
				t.Fatalf("expected 1 suggestion, got %d", len(got))
			}
			if !strings.HasPrefix(got[0], "To make this honest: ") {
				t.Errorf("missing prefix: %q", got[0])
			}
			if !strings.Contains(got[0], tt.contains) {
				t.Errorf("expected %q in %q", tt.contains, got[0])
			}
		})
	}
}

func TestHonestMakeoverSuggestions_KeepsDuplicatesAndOrder(t *testing.T) {
	missing := []model.Criterion{model.Affordability, model.DecisionAuthority, model.Affordability}
	got := HonestMakeoverSuggestions("text", "Youth", missing)
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}
	if got[0] != got[2] {
		t.Error("expected duplicate input to produce duplicate output")
	}
	if !strings.Contains(got[1], "Give Youth a seat") {
		t.Errorf("unexpected decision authority suggestion %q", got[1])
	}
}

func TestDynamicVerdict_YouthRecycleScenario(t *testing.T) {
	e := newTestEngine(t)

	result := e.DynamicVerdict("Youth should recycle more to save the planet", "Youth", "Campaign")

	want := []model.Criterion{model.DecisionAuthority, model.AccessToAlternatives, model.InfrastructureAvailability}
	if !reflect.DeepEqual(result.MissingConditions, want) {
		t.Errorf("expected missing %v, got %v", want, result.MissingConditions)
	}
	if result.Assessment[model.Affordability].Status != model.StatusAvailable {
		t.Error("expected affordability available")
	}
	if result.Assessment[model.EnforcementPower].Status != model.StatusAvailable {
		t.Error("expected enforcement power available")
	}
	if result.Verdict != model.VerdictDishonest {
		t.Errorf("expected dishonest, got %v", result.Verdict)
	}
	if len(result.Suggestions) != 3 {
		t.Errorf("expected 3 suggestions, got %d", len(result.Suggestions))
	}
	if len(result.Assessment) != model.CriteriaCount {
		t.Errorf("expected %d assessed criteria, got %d", model.CriteriaCount, len(result.Assessment))
	}
}

func TestDynamicEvaluate_PowerfulGroup(t *testing.T) {
	e := newTestEngine(t)

	result := e.DynamicEvaluate("We must build solar farms", "Government", "Government Policy")
	if len(result.MissingConditions) != 0 {
		t.Errorf("expected no missing conditions for Government, got %v", result.MissingConditions)
	}
	if !strings.Contains(result.Assessment[model.EnforcementPower].Explanation, "has structural control") {
		t.Errorf("unexpected explanation %q", result.Assessment[model.EnforcementPower].Explanation)
	}
}

func TestDynamicEvaluate_EnforcementNeedsGovernmentPolicy(t *testing.T) {
	e := newTestEngine(t)

	policy := e.DynamicEvaluate("Plant trees", "Students", "Government Policy")
	if policy.Assessment[model.EnforcementPower].Status != model.StatusNotAvailable {
		t.Error("expected enforcement power missing under Government Policy")
	}

	campaign := e.DynamicEvaluate("Plant trees", "Students", "Campaign")
	if campaign.Assessment[model.EnforcementPower].Status != model.StatusAvailable {
		t.Error("expected enforcement power not to be a barrier for a campaign")
	}
	if !reflect.DeepEqual(campaign.MissingConditions, []model.Criterion{model.AccessToAlternatives}) {
		t.Errorf("expected only access_to_alternatives missing, got %v", campaign.MissingConditions)
	}
}

func TestEngine_LookupStatement(t *testing.T) {
	e := newTestEngine(t)
	if _, ok := e.LookupStatement("stmt_004"); !ok {
		t.Error("expected stmt_004")
	}
	if _, ok := e.LookupStatement("nope"); ok {
		t.Error("expected miss")
	}

	empty := New(nil, nil)
	if _, ok := empty.LookupStatement("stmt_004"); ok {
		t.Error("expected miss without catalog")
	}
	if len(empty.ListStatements()) != 0 {
		t.Error("expected no statements without catalog")
	}
}
