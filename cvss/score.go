package cvss

// ScoreResult is the complete, self-contained outcome of scoring one vector.
//
// Optional sections are nil when none of their triggering metrics were
// supplied: TemporalScore is v3.1-only, ThreatScore is v4.0-only, and
// Supplemental is the verbatim echo of the v4.0 supplemental group. The
// impact and exploitability sub-scores are those of the base equations; they
// are returned here instead of being cached anywhere so that concurrent
// calls cannot observe each other.
type ScoreResult struct {
	Version              Version           `json:"version"`
	Vector               string            `json:"vector"`
	BaseScore            float64           `json:"base_score"`
	BaseSeverity         Severity          `json:"base_severity"`
	TemporalScore        *float64          `json:"temporal_score,omitempty"`
	TemporalSeverity     *Severity         `json:"temporal_severity,omitempty"`
	ThreatScore          *float64          `json:"threat_score,omitempty"`
	ThreatSeverity       *Severity         `json:"threat_severity,omitempty"`
	EnvironmentalScore   *float64          `json:"environmental_score,omitempty"`
	EnvironmentalSeverity *Severity        `json:"environmental_severity,omitempty"`
	Supplemental         map[Metric]string `json:"supplemental,omitempty"`
	ImpactScore          float64           `json:"impact_score"`
	ExploitabilityScore  float64           `json:"exploitability_score"`
}

// Score computes every score applicable to the validated set.
//
// Score is a pure function: it cannot fail, holds no state between calls,
// and is safe to invoke from any number of goroutines.
func Score(m *MetricSet) *ScoreResult {
	switch m.Version() {
	case V31:
		return scoreV31(m)
	case V40:
		return scoreV40(m)
	}
	panic("programmer error: unversioned MetricSet")
}

// ScoreVector parses and scores a vector string in one step.
func ScoreVector(s string) (*ScoreResult, error) {
	m, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return Score(m), nil
}

func scorePtrs(s float64) (*float64, *Severity) {
	sev := SeverityFor(s)
	return &s, &sev
}
