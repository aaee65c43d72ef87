package template

// Adjustment factors applied to template weights before the weights
// reach the reconciler. Both tables come from observed industry
// distributions; keys must match template phase names exactly.

// projectTypeFactors boosts or shrinks specific phases per project
// type (e.g. mobile work is testing-heavy).
var projectTypeFactors = map[string]map[string]float64{
	"Web Application": {
		"Requirements & User Stories": 1.2,
		"Development Sprints":         1.1,
		"Testing & Integration":       1.0,
		"Deployment & Release":        0.8,
	},
	"Mobile Application": {
		"Requirements & User Stories": 1.3,
		"Development Sprints":         1.2,
		"Testing & Integration":       1.4,
		"Deployment & Release":        1.2,
	},
	"API/Backend Service": {
		"Requirements & User Stories": 1.1,
		"Development Sprints":         1.0,
		"Testing & Integration":       1.3,
		"Deployment & Release":        0.9,
	},
	"Enterprise Software": {
		"Requirements & User Stories": 1.5,
		"System Design":               1.3,
		"Development Sprints":         1.1,
		"Testing & Integration":       1.2,
		"Deployment & Release":        1.1,
	},
}

// teamSizeFactors captures coordination overhead: with a fixed project
// total the overhead cannot stretch the calendar, so it shifts share
// into the coordination-marked phases instead.
var teamSizeFactors = map[string]float64{
	"Small (1-3)":      0.9,
	"Medium (4-8)":     1.0,
	"Large (9-15)":     1.2,
	"Enterprise (15+)": 1.4,
}

// AdjustedWeights returns the weight vector for table after applying
// project-type and team-size factors. Unknown project types and team
// sizes leave the weights untouched, so the result is deterministic
// for any input.
func AdjustedWeights(table []PhaseTemplate, projectType, teamSize string) []float64 {
	typeFactors := projectTypeFactors[projectType]
	teamFactor, ok := teamSizeFactors[teamSize]
	if !ok {
		teamFactor = 1.0
	}

	weights := make([]float64, len(table))
	for i, phase := range table {
		w := phase.Weight
		if f, ok := typeFactors[phase.Name]; ok {
			w *= f
		}
		if phase.Coordination {
			w *= teamFactor
		}
		weights[i] = w
	}
	return weights
}
