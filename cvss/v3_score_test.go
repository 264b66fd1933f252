package cvss

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// MustParse is a test helper.
func mustParse(t *testing.T, s string) *MetricSet {
	t.Helper()
	m, err := Parse(s)
	if err != nil {
		t.Fatalf("%s: %v", s, err)
	}
	return m
}

func TestV31BaseScore(t *testing.T) {
	tcs := []struct {
		Vector string
		Score  float64
	}{
		{Vector: "CVSS:3.1/AV:P/AC:H/PR:H/UI:R/S:U/C:N/I:N/A:N", Score: 0}, // Zero impact
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:N/I:N/A:N", Score: 0}, // Zero impact
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:L/UI:N/S:C/C:L/I:L/A:N", Score: 6.4}, // CVE-2013-0375
		{Vector: "CVSS:3.1/AV:N/AC:H/PR:N/UI:R/S:U/C:L/I:N/A:N", Score: 3.1}, // CVE-2014-3566
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:L/UI:N/S:C/C:H/I:H/A:H", Score: 9.9}, // CVE-2012-1516
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:H/UI:N/S:U/C:H/I:H/A:H", Score: 7.2}, // CVE-2012-0384
		{Vector: "CVSS:3.1/AV:L/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H", Score: 7.8}, // CVE-2015-1098
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:N/A:N", Score: 7.5}, // CVE-2014-0160
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", Score: 9.8}, // CVE-2014-6271
		{Vector: "CVSS:3.1/AV:N/AC:H/PR:N/UI:N/S:C/C:N/I:H/A:N", Score: 6.8}, // CVE-2008-1447
		{Vector: "CVSS:3.1/AV:P/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", Score: 6.8}, // CVE-2014-2005
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:C/C:L/I:N/A:N", Score: 5.8}, // CVE-2010-0467
		{Vector: "CVSS:3.1/AV:A/AC:L/PR:N/UI:N/S:C/C:H/I:N/A:H", Score: 9.3}, // CVE-2013-6014
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:L/UI:R/S:C/C:H/I:H/A:H", Score: 9.0}, // CVE-2019-7551
		{Vector: "CVSS:3.1/AV:A/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", Score: 8.8}, // CVE-2011-1265
		{Vector: "CVSS:3.1/AV:P/AC:L/PR:N/UI:N/S:U/C:N/I:H/A:N", Score: 4.6}, // CVE-2014-2019
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H", Score: 8.8}, // CVE-2015-0970
		{Vector: "CVSS:3.1/AV:N/AC:H/PR:N/UI:N/S:U/C:H/I:H/A:N", Score: 7.4}, // CVE-2014-0224
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:C/C:H/I:H/A:H", Score: 9.6}, // CVE-2012-5376
		{Vector: "CVSS:3.1/AV:N/AC:H/PR:N/UI:R/S:U/C:H/I:H/A:H", Score: 7.5}, // CVE-2016-2118
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:C/C:L/I:L/A:N", Score: 6.1}, // CVE-2017-5942
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:L/A:L", Score: 8.6}, // CVE-2016-5558
		{Vector: "CVSS:3.1/AV:L/AC:L/PR:H/UI:N/S:C/C:H/I:H/A:H", Score: 8.2}, // CVE-2016-5729
		{Vector: "CVSS:3.1/AV:L/AC:L/PR:H/UI:N/S:U/C:N/I:H/A:H", Score: 6.0}, // CVE-2015-2890
		{Vector: "CVSS:3.1/AV:P/AC:L/PR:N/UI:N/S:C/C:H/I:H/A:H", Score: 7.6}, // CVE-2018-3652
		{Vector: "CVSS:3.1/AV:N/AC:H/PR:N/UI:R/S:U/C:L/I:L/A:N", Score: 4.2}, // CVE-2019-0884 (Edge)
		{Vector: "CVSS:3.1/AV:L/AC:L/PR:L/UI:N/S:U/C:L/I:L/A:L", Score: 5.3},
		{Vector: "CVSS:3.1/AV:N/AC:H/PR:N/UI:R/S:C/C:H/I:H/A:H", Score: 8.3},
	}
	for _, tc := range tcs {
		t.Run("", func(t *testing.T) {
			t.Log(tc.Vector)
			r := Score(mustParse(t, tc.Vector))
			if got, want := r.BaseScore, tc.Score; got != want {
				t.Errorf("got: %4.1f, want: %4.1f", got, want)
			}
			if got, want := r.BaseSeverity, SeverityFor(tc.Score); got != want {
				t.Errorf("got: %v, want: %v", got, want)
			}
			if r.TemporalScore != nil || r.EnvironmentalScore != nil {
				t.Error("optional scores computed for a base-only vector")
			}
			if r.ThreatScore != nil {
				t.Error("threat score computed for a v3.1 vector")
			}
		})
	}
}

func TestV31SubScores(t *testing.T) {
	r := Score(mustParse(t, "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"))
	approx := cmpopts.EquateApprox(0, 1e-9)
	if !cmp.Equal(r.ImpactScore, 5.87311872, approx) {
		t.Errorf("impact: got: %v", r.ImpactScore)
	}
	if !cmp.Equal(r.ExploitabilityScore, 3.887042775, approx) {
		t.Errorf("exploitability: got: %v", r.ExploitabilityScore)
	}
}

func TestV31Temporal(t *testing.T) {
	tcs := []struct {
		Vector   string
		Base     float64
		Temporal float64
	}{
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:H/UI:N/S:U/C:L/I:L/A:N/E:F/RL:X", Base: 3.8, Temporal: 3.7},
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/E:U/RL:O/RC:U", Base: 9.8, Temporal: 7.8},
		{Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/RC:C", Base: 9.8, Temporal: 9.8},
	}
	for _, tc := range tcs {
		t.Run("", func(t *testing.T) {
			t.Log(tc.Vector)
			r := Score(mustParse(t, tc.Vector))
			if got, want := r.BaseScore, tc.Base; got != want {
				t.Errorf("base: got: %4.1f, want: %4.1f", got, want)
			}
			if r.TemporalScore == nil {
				t.Fatal("temporal score not computed")
			}
			if got, want := *r.TemporalScore, tc.Temporal; got != want {
				t.Errorf("temporal: got: %4.1f, want: %4.1f", got, want)
			}
			if got, want := *r.TemporalSeverity, SeverityFor(tc.Temporal); got != want {
				t.Errorf("severity: got: %v, want: %v", got, want)
			}
		})
	}
}

func TestV31Environmental(t *testing.T) {
	tcs := []struct {
		Vector        string
		Base          float64
		Environmental float64
	}{
		// Requirements only; modified metrics fall back to base.
		{
			Vector:        "CVSS:3.1/AV:N/AC:L/PR:H/UI:N/S:U/C:L/I:L/A:N/CR:H/IR:H/AR:H",
			Base:          3.8,
			Environmental: 4.8,
		},
		// Modified metrics downgrade attack vector and confidentiality.
		{
			Vector:        "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H/MAV:L/MC:L",
			Base:          9.8,
			Environmental: 8.0,
		},
		// Modified scope flips the formulas, including the PR weight.
		{
			Vector:        "CVSS:3.1/AV:N/AC:L/PR:L/UI:N/S:U/C:L/I:L/A:N/MS:C",
			Base:          5.4,
			Environmental: 6.4,
		},
	}
	for _, tc := range tcs {
		t.Run("", func(t *testing.T) {
			t.Log(tc.Vector)
			r := Score(mustParse(t, tc.Vector))
			if got, want := r.BaseScore, tc.Base; got != want {
				t.Errorf("base: got: %4.1f, want: %4.1f", got, want)
			}
			if r.EnvironmentalScore == nil {
				t.Fatal("environmental score not computed")
			}
			if got, want := *r.EnvironmentalScore, tc.Environmental; got != want {
				t.Errorf("environmental: got: %4.1f, want: %4.1f", got, want)
			}
		})
	}
}

func TestV31Monotonic(t *testing.T) {
	// Base score never decreases as a single impact metric climbs.
	for _, m := range []Metric{"C", "I", "A"} {
		prev := -1.0
		for _, v := range []string{"N", "L", "H"} {
			vals := map[Metric]string{"C": "N", "I": "N", "A": "N"}
			vals[m] = v
			vec := "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:" + vals["C"] + "/I:" + vals["I"] + "/A:" + vals["A"]
			r := Score(mustParse(t, vec))
			if r.BaseScore < prev {
				t.Errorf("%s:%s: score %4.1f dropped below %4.1f", m, v, r.BaseScore, prev)
			}
			prev = r.BaseScore
		}
	}
}
