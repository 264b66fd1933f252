package cvss

import "math"

// The v4.0 weight tables. The letters shared with v3.1 carry the same
// exploitability weights, but the tables are separate: the versions never
// cross-reference each other.
var (
	v40ExploitWeights = map[Metric]map[string]float64{
		"AV": {"N": 0.85, "A": 0.62, "L": 0.55, "P": 0.2},
		"AC": {"L": 0.77, "H": 0.44},
		"AT": {"N": 0.85, "P": 0.62},
		"PR": {"N": 0.85, "L": 0.62, "H": 0.27},
		"UI": {"N": 0.85, "P": 0.62, "A": 0.44},
	}

	// Each system's impact contributes the maximum of its C/I/A weights.
	// The "S" value reachable through MSI/MSA marks a safety outcome and
	// scores as High.
	v40ImpactWeights = map[string]float64{"S": 4.0, "H": 4.0, "L": 1.5, "N": 0}

	v40ThreatWeights = map[string]float64{NotDefined: 1, "A": 1, "P": 0.94, "U": 0.91}

	v40RequirementWeights = map[string]float64{NotDefined: 1, "H": 1.5, "M": 1, "L": 0.5}
)

var v40EnvironmentalMetrics = []Metric{
	"CR", "IR", "AR",
	"MAV", "MAC", "MAT", "MPR", "MUI",
	"MVC", "MVI", "MVA", "MSC", "MSI", "MSA",
}

func v40Exploitability(m *MetricSet) float64 {
	return 8.22 *
		v40ExploitWeights["AV"][m.Get("AV")] *
		v40ExploitWeights["AC"][m.Get("AC")] *
		v40ExploitWeights["AT"][m.Get("AT")] *
		v40ExploitWeights["PR"][m.Get("PR")] *
		v40ExploitWeights["UI"][m.Get("UI")]
}

// V40Impacts returns the vulnerable-system and subsequent-system impact
// sub-scores.
func v40Impacts(m *MetricSet) (vulnerable, subsequent float64) {
	vulnerable = max(
		v40ImpactWeights[m.Get("VC")],
		v40ImpactWeights[m.Get("VI")],
		v40ImpactWeights[m.Get("VA")])
	subsequent = max(
		v40ImpactWeights[m.Get("SC")],
		v40ImpactWeights[m.Get("SI")],
		v40ImpactWeights[m.Get("SA")])
	return vulnerable, subsequent
}

// V40Combine is the uncapped, unrounded score sum, or zero when neither
// system is impacted.
func v40Combine(exploitability, vulnerable, subsequent float64) float64 {
	if vulnerable == 0 && subsequent == 0 {
		return 0
	}
	return math.Min(exploitability+vulnerable+subsequent, 10)
}

func scoreV40(m *MetricSet) *ScoreResult {
	vulnerable, subsequent := v40Impacts(m)
	exploitability := v40Exploitability(m)
	base := roundUp(v40Combine(exploitability, vulnerable, subsequent))

	r := ScoreResult{
		Version:             V40,
		Vector:              m.String(),
		BaseScore:           base,
		BaseSeverity:        SeverityFor(base),
		ImpactScore:         vulnerable + subsequent,
		ExploitabilityScore: exploitability,
	}

	if m.Defined("E") {
		t := roundUp(base * v40ThreatWeights[m.Get("E")])
		r.ThreatScore, r.ThreatSeverity = scorePtrs(t)
	}

	if m.definedAny(v40EnvironmentalMetrics...) {
		d := m.derived()
		dv, ds := v40Impacts(d)
		req := max(
			v40RequirementWeights[m.Get("CR")],
			v40RequirementWeights[m.Get("IR")],
			v40RequirementWeights[m.Get("AR")])
		e := roundUp(math.Min(v40Combine(v40Exploitability(d), dv, ds)*req, 10))
		r.EnvironmentalScore, r.EnvironmentalSeverity = scorePtrs(e)
	}

	if m.definedAny(v40Supplemental...) {
		sup := make(map[Metric]string, len(v40Supplemental))
		for _, c := range v40Supplemental {
			if v := m.Get(c); v != NotDefined {
				sup[c] = v
			}
		}
		r.Supplemental = sup
	}

	return &r
}
