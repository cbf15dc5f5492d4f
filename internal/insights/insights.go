// Package insights aggregates stored analyses and curated statements into
// dashboard figures.
package insights

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/ppiankov/greenlie/internal/model"
)

// SourceFrequency counts analyses per source type
type SourceFrequency struct {
	Total     int `json:"total"`
	Dishonest int `json:"dishonest"`
}

// AggregatedStats summarises the analysis log
type AggregatedStats struct {
	TotalAnalyses      int                        `json:"totalAnalyses"`
	DishonestCount     int                        `json:"dishonestCount"`
	HonestCount        int                        `json:"honestCount"`
	ConditionFrequency map[model.Criterion]int    `json:"conditionFrequency"`
	SourceFrequency    map[string]SourceFrequency `json:"sourceFrequency"`
}

// AnalyzedStatement is a custom statement whose questionnaire has completed
type AnalyzedStatement struct {
	ID                string            `json:"id"`
	Statement         string            `json:"statement"`
	SourceType        string            `json:"sourceType"`
	TargetGroup       string            `json:"targetGroup"`
	Verdict           model.Verdict     `json:"verdict"`
	MissingConditions []model.Criterion `json:"missingConditions"`
	IsCustom          bool              `json:"isCustom"`
}

// SourceBreakdown counts statements per source type. Dishonest follows
// CuratedDishonest for curated labels.
type SourceBreakdown struct {
	Total     int `json:"total"`
	Dishonest int `json:"dishonest"`
	Honest    int `json:"honest"`
}

// ConditionCount is one row of the ranked missing-condition chart
type ConditionCount struct {
	Criterion model.Criterion `json:"criterion"`
	Count     int             `json:"count"`
}

// MissingStats describes missing conditions per stored analysis
type MissingStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// Dashboard is the insights page
type Dashboard struct {
	TotalStatements    int                        `json:"totalStatements"`
	GreenLies          int                        `json:"greenLies"`
	PartiallyValid     int                        `json:"partiallyValid"`
	Honest             int                        `json:"honest"`
	ConditionFrequency map[model.Criterion]int    `json:"conditionFrequency"`
	RankedConditions   []ConditionCount           `json:"rankedConditions"`
	SourceBreakdown    map[string]SourceBreakdown `json:"sourceBreakdown"`
	TotalAnalyses      int                        `json:"totalAnalyses"`
	TotalVotes         int                        `json:"totalVotes"`
	MissingStats       MissingStats               `json:"missingStats"`
}

func emptyFrequency() map[model.Criterion]int {
	freq := make(map[model.Criterion]int, model.CriteriaCount)
	for _, c := range model.AllCriteria() {
		freq[c] = 0
	}
	return freq
}

// AggregateAnalyses tallies the analysis log
func AggregateAnalyses(analyses []model.StoredAnalysis) AggregatedStats {
	out := AggregatedStats{
		TotalAnalyses:      len(analyses),
		ConditionFrequency: emptyFrequency(),
		SourceFrequency:    make(map[string]SourceFrequency),
	}

	for _, a := range analyses {
		dishonest := a.Verdict == model.VerdictDishonest
		if dishonest {
			out.DishonestCount++
		}
		for _, c := range a.MissingConditions {
			if c.Valid() {
				out.ConditionFrequency[c]++
			}
		}
		sf := out.SourceFrequency[a.SourceType]
		sf.Total++
		if dishonest {
			sf.Dishonest++
		}
		out.SourceFrequency[a.SourceType] = sf
	}

	out.HonestCount = out.TotalAnalyses - out.DishonestCount
	return out
}

// AnalyzedStatements keeps the custom statements that have a result
func AnalyzedStatements(customs []model.CustomStatement) []AnalyzedStatement {
	out := []AnalyzedStatement{}
	for _, cs := range customs {
		if !cs.Analyzed || cs.AnalysisResult == nil {
			continue
		}
		out = append(out, AnalyzedStatement{
			ID:                cs.ID,
			Statement:         cs.Statement,
			SourceType:        cs.SourceType,
			TargetGroup:       cs.TargetGroup,
			Verdict:           cs.AnalysisResult.Verdict,
			MissingConditions: cs.AnalysisResult.MissingConditions,
			IsCustom:          true,
		})
	}
	return out
}

// BuildDashboard combines the curated catalog, analysed custom statements
// and the analysis log
func BuildDashboard(statements []model.Statement, customAnalyzed []AnalyzedStatement, analyses []model.StoredAnalysis) Dashboard {
	d := Dashboard{
		TotalStatements:    len(statements) + len(customAnalyzed),
		ConditionFrequency: emptyFrequency(),
		SourceBreakdown:    make(map[string]SourceBreakdown),
		TotalAnalyses:      len(analyses) + len(customAnalyzed),
	}

	tally := func(v model.Verdict) {
		switch v {
		case model.VerdictDishonest:
			d.GreenLies++
		case model.VerdictPartiallyValid:
			d.PartiallyValid++
		default:
			d.Honest++
		}
	}
	breakdown := func(source string, dishonest bool) {
		sb := d.SourceBreakdown[source]
		sb.Total++
		if dishonest {
			sb.Dishonest++
		} else {
			sb.Honest++
		}
		d.SourceBreakdown[source] = sb
	}

	for _, s := range statements {
		tally(s.VerdictFamily())
		breakdown(s.SourceType, CuratedDishonest(s.Verdict))
		for _, c := range s.CriteriaAssessment.Missing() {
			d.ConditionFrequency[c]++
		}
	}
	for _, s := range customAnalyzed {
		tally(s.Verdict)
		breakdown(s.SourceType, s.Verdict == model.VerdictDishonest)
		for _, c := range s.MissingConditions {
			if c.Valid() {
				d.ConditionFrequency[c]++
			}
		}
	}

	d.RankedConditions = RankConditions(d.ConditionFrequency)
	d.MissingStats = missingStats(analyses)
	return d
}

// CuratedDishonest reports whether a curated label counts as dishonest in the
// source breakdown. MISLEADING labels do, although their verdict family is
// partially valid.
func CuratedDishonest(label string) bool {
	return model.VerdictFamily(label) == model.VerdictDishonest ||
		strings.Contains(strings.ToUpper(label), "MISLEADING")
}

// RankConditions orders criteria by count, descending, ties in display order
func RankConditions(freq map[model.Criterion]int) []ConditionCount {
	out := make([]ConditionCount, 0, model.CriteriaCount)
	for _, c := range model.AllCriteria() {
		out = append(out, ConditionCount{Criterion: c, Count: freq[c]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func missingStats(analyses []model.StoredAnalysis) MissingStats {
	if len(analyses) == 0 {
		return MissingStats{}
	}
	data := make(stats.Float64Data, len(analyses))
	for i, a := range analyses {
		data[i] = float64(len(a.MissingConditions))
	}

	var ms MissingStats
	ms.Mean, _ = stats.Mean(data)
	ms.Median, _ = stats.Median(data)
	ms.Max, _ = stats.Max(data)
	return ms
}
