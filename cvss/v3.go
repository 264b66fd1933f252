package cvss

import "math"

// The v3.1 weight tables. Environmental scoring reuses the base tables
// through the derived (modified-folded) MetricSet, so no parallel "modified"
// tables exist.
var (
	v31ExploitWeights = map[Metric]map[string]float64{
		"AV": {"N": 0.85, "A": 0.62, "L": 0.55, "P": 0.2},
		"AC": {"L": 0.77, "H": 0.44},
		"UI": {"N": 0.85, "R": 0.62},
	}

	// PR is scope-dependent; see v31PRWeight.
	v31PRWeights = map[string][2]float64{
		// {unchanged, changed}
		"N": {0.85, 0.85},
		"L": {0.62, 0.68},
		"H": {0.27, 0.50},
	}

	v31ImpactWeights = map[string]float64{"H": 0.56, "L": 0.22, "N": 0}

	// One table per temporal metric. Single letters collide across the
	// three metrics ("U" means Unproven, Unavailable, and Unknown), so a
	// flat shared table silently misweights whichever metrics lose the
	// collision.
	v31TemporalWeights = map[Metric]map[string]float64{
		"E":  {NotDefined: 1, "H": 1, "F": 0.97, "P": 0.94, "U": 0.91},
		"RL": {NotDefined: 1, "U": 1, "W": 0.97, "T": 0.96, "O": 0.95},
		"RC": {NotDefined: 1, "C": 1, "R": 0.96, "U": 0.92},
	}

	v31RequirementWeights = map[string]float64{NotDefined: 1, "H": 1.5, "M": 1, "L": 0.5}
)

// V31TemporalMetrics and v31EnvironmentalMetrics trigger their optional
// score sections when any member is defined.
var (
	v31TemporalMetrics      = []Metric{"E", "RL", "RC"}
	v31EnvironmentalMetrics = []Metric{
		"CR", "IR", "AR",
		"MAV", "MAC", "MPR", "MUI", "MS", "MC", "MI", "MA",
	}
)

func v31PRWeight(m *MetricSet) float64 {
	w := v31PRWeights[m.Get("PR")]
	if m.Get("S") == "C" {
		return w[1]
	}
	return w[0]
}

// V31Exploitability is the exploitability sub-score over the set's AV, AC,
// PR, and UI metrics. The caller passes a derived set for environmental
// scoring.
func v31Exploitability(m *MetricSet) float64 {
	return 8.22 *
		v31ExploitWeights["AV"][m.Get("AV")] *
		v31ExploitWeights["AC"][m.Get("AC")] *
		v31PRWeight(m) *
		v31ExploitWeights["UI"][m.Get("UI")]
}

// V31Impact is the base impact sub-score.
func v31Impact(m *MetricSet) float64 {
	iss := 1 - (1-v31ImpactWeights[m.Get("C")])*
		(1-v31ImpactWeights[m.Get("I")])*
		(1-v31ImpactWeights[m.Get("A")])
	if m.Get("S") == "U" {
		return 6.42 * iss
	}
	return 7.52*(iss-0.029) - 3.25*math.Pow(iss-0.02, 15)
}

// V31EnvImpact is the impact sub-score of the environmental equations: the
// C/I/A weights are scaled by their requirement weights, the combined
// sub-score is capped at 0.915, and the changed-scope polynomial uses
// exponent 13 with the 0.9731 rescale.
func v31EnvImpact(d, m *MetricSet) float64 {
	miss := math.Min(0.915,
		1-(1-v31RequirementWeights[m.Get("CR")]*v31ImpactWeights[d.Get("C")])*
			(1-v31RequirementWeights[m.Get("IR")]*v31ImpactWeights[d.Get("I")])*
			(1-v31RequirementWeights[m.Get("AR")]*v31ImpactWeights[d.Get("A")]))
	if d.Get("S") == "U" {
		return 6.42 * miss
	}
	return 7.52*(miss-0.029) - 3.25*math.Pow(miss*0.9731-0.02, 13)
}

// V31Combine folds the sub-scores into a base-equation score: zero when the
// impact is not positive, otherwise the capped, rounded sum with the 1.08
// changed-scope multiplier.
func v31Combine(impact, exploitability float64, changed bool) float64 {
	if impact <= 0 {
		return 0
	}
	sum := impact + exploitability
	if changed {
		sum *= 1.08
	}
	return roundUp(math.Min(sum, 10))
}

func v31TemporalMultiplier(m *MetricSet) float64 {
	return v31TemporalWeights["E"][m.Get("E")] *
		v31TemporalWeights["RL"][m.Get("RL")] *
		v31TemporalWeights["RC"][m.Get("RC")]
}

func scoreV31(m *MetricSet) *ScoreResult {
	impact := v31Impact(m)
	exploitability := v31Exploitability(m)
	base := v31Combine(impact, exploitability, m.Get("S") == "C")

	r := ScoreResult{
		Version:             V31,
		Vector:              m.String(),
		BaseScore:           base,
		BaseSeverity:        SeverityFor(base),
		ImpactScore:         impact,
		ExploitabilityScore: exploitability,
	}

	if m.definedAny(v31TemporalMetrics...) {
		t := roundUp(base * v31TemporalMultiplier(m))
		r.TemporalScore, r.TemporalSeverity = scorePtrs(t)
	}

	if m.definedAny(v31EnvironmentalMetrics...) {
		d := m.derived()
		envBase := v31Combine(v31EnvImpact(d, m), v31Exploitability(d), d.Get("S") == "C")
		e := roundUp(envBase * v31TemporalMultiplier(m))
		r.EnvironmentalScore, r.EnvironmentalSeverity = scorePtrs(e)
	}

	return &r
}
