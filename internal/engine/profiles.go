package engine

import (
	"fmt"

	"github.com/ppiankov/greenlie/internal/model"
)

// DefaultTargetGroup is used for labels missing from the power tables
const DefaultTargetGroup = "General Public"

var allFive = []model.Criterion{
	model.DecisionAuthority,
	model.AccessToAlternatives,
	model.Affordability,
	model.InfrastructureAvailability,
	model.EnforcementPower,
}

var institutionalFour = []model.Criterion{
	model.DecisionAuthority,
	model.AccessToAlternatives,
	model.Affordability,
	model.InfrastructureAvailability,
}

// targetGroupOrder fixes the listing order of known groups
var targetGroupOrder = []string{
	"Government",
	"City Government",
	"Corporations",
	"University Administration",
	"Institutions",
	"Students",
	"Youth",
	"Consumers",
	"General Public",
	"Employees",
	"Citizens",
}

// powerProfiles lists the criteria each group structurally controls
var powerProfiles = map[string][]model.Criterion{
	// High structural power
	"Government":                allFive,
	"City Government":           allFive,
	"Corporations":              institutionalFour,
	"University Administration": institutionalFour,
	"Institutions":              {model.DecisionAuthority, model.AccessToAlternatives, model.InfrastructureAvailability},

	// Limited structural power
	"Students":       {},
	"Youth":          {},
	"Consumers":      {model.AccessToAlternatives}, // only where alternatives are on the shelf
	"General Public": {},
	"Employees":      {},
	"Citizens":       {model.AccessToAlternatives},
}

type typicalPower struct {
	has   []model.Criterion
	lacks []model.Criterion
}

var typicalPowers = map[string]typicalPower{
	"Government":                {has: allFive, lacks: []model.Criterion{}},
	"City Government":           {has: allFive, lacks: []model.Criterion{}},
	"Corporations":              {has: institutionalFour, lacks: []model.Criterion{model.EnforcementPower}},
	"University Administration": {has: institutionalFour, lacks: []model.Criterion{model.EnforcementPower}},
	"Institutions": {
		has:   []model.Criterion{model.DecisionAuthority, model.AccessToAlternatives, model.InfrastructureAvailability},
		lacks: []model.Criterion{model.EnforcementPower, model.Affordability},
	},
	"Students": {has: []model.Criterion{}, lacks: allFive},
	"Youth":    {has: []model.Criterion{}, lacks: allFive},
	"Consumers": {
		has:   []model.Criterion{model.AccessToAlternatives},
		lacks: []model.Criterion{model.DecisionAuthority, model.Affordability, model.InfrastructureAvailability, model.EnforcementPower},
	},
	"General Public": {
		has:   []model.Criterion{},
		lacks: []model.Criterion{model.DecisionAuthority, model.Affordability, model.InfrastructureAvailability, model.EnforcementPower},
	},
	"Employees": {
		has:   []model.Criterion{},
		lacks: []model.Criterion{model.DecisionAuthority, model.InfrastructureAvailability, model.EnforcementPower},
	},
	"Citizens": {
		has:   []model.Criterion{model.AccessToAlternatives},
		lacks: []model.Criterion{model.DecisionAuthority, model.InfrastructureAvailability, model.EnforcementPower},
	},
}

// PowerLevel is a coarse advisory rating of a group's structural power
type PowerLevel string

const (
	PowerHigh   PowerLevel = "high"
	PowerMedium PowerLevel = "medium"
	PowerLow    PowerLevel = "low"
)

// PowerContext is advisory messaging about a target group. It never affects scoring.
type PowerContext struct {
	TargetGroup    string            `json:"targetGroup"`
	TypicallyHas   []model.Criterion `json:"typicallyHas"`
	TypicallyLacks []model.Criterion `json:"typicallyLacks"`
	PowerLevel     PowerLevel        `json:"powerLevel"`
	ContextNote    string            `json:"contextNote"`
}

// TargetGroups returns the known target-group labels
func TargetGroups() []string {
	out := make([]string, len(targetGroupOrder))
	copy(out, targetGroupOrder)
	return out
}

// KnownTargetGroup reports whether group has its own power profile
func KnownTargetGroup(group string) bool {
	_, ok := powerProfiles[group]
	return ok
}

// PowerProfile returns the criteria the group structurally controls.
// Unknown groups get the General Public profile (no criteria).
func PowerProfile(group string) []model.Criterion {
	profile, ok := powerProfiles[group]
	if !ok {
		profile = powerProfiles[DefaultTargetGroup]
	}
	return clone(profile)
}

// Controls reports whether group structurally controls c
func Controls(group string, c model.Criterion) bool {
	for _, held := range PowerProfile(group) {
		if held == c {
			return true
		}
	}
	return false
}

// TypicalPowerContext describes what the group typically has and lacks
func TypicalPowerContext(group string) PowerContext {
	data, ok := typicalPowers[group]
	if !ok {
		data = typicalPowers[DefaultTargetGroup]
	}

	level := PowerLow
	switch n := len(data.has); {
	case n >= 4:
		level = PowerHigh
	case n >= 2:
		level = PowerMedium
	}

	var note string
	switch level {
	case PowerHigh:
		note = fmt.Sprintf("%s typically has high structural power and can implement systemic changes.", group)
	case PowerMedium:
		note = fmt.Sprintf("%s has moderate structural power but may face some limitations.", group)
	default:
		note = fmt.Sprintf("%s typically lacks structural power over most conditions. Statements targeting them often shift blame rather than create change.", group)
	}

	return PowerContext{
		TargetGroup:    group,
		TypicallyHas:   clone(data.has),
		TypicallyLacks: clone(data.lacks),
		PowerLevel:     level,
		ContextNote:    note,
	}
}

func clone(in []model.Criterion) []model.Criterion {
	out := make([]model.Criterion, len(in))
	copy(out, in)
	return out
}
