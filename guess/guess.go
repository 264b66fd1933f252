// Package guess derives a CVSS v3.1 base vector from an English threat
// description.
//
// It is a keyword heuristic, not an assessment: every base metric is chosen
// by counting keyword hits in the lowercased description, and a metric with
// no hits falls back to its default value. The output is meant as a starting
// point for an analyst, never a final score.
package guess

import "strings"

// Rule scores one metric: each candidate value owns a keyword list, and the
// value with the most hits wins. Ties go to the earliest candidate; a metric
// with no hits at all falls back to its default value.
type rule struct {
	metric     string
	def        string
	candidates []candidate
}

type candidate struct {
	value    string
	keywords []string
}

var rules = []rule{
	{metric: "AV", def: "N", candidates: []candidate{
		{"N", []string{"internet", "remote", "network", "web", "online", "external", "internet-facing"}},
		{"A", []string{"adjacent", "local network", "lan", "neighbor", "neighbouring"}},
		{"L", []string{"local", "physical access", "locally", "system access"}},
		{"P", []string{"physical", "hardware", "device", "physically"}},
	}},
	{metric: "AC", def: "L", candidates: []candidate{
		{"L", []string{"simple", "easily", "straightforward", "common", "known vulnerability"}},
		{"H", []string{"complex", "difficult", "sophisticated", "chain", "multiple steps"}},
	}},
	{metric: "PR", def: "N", candidates: []candidate{
		{"N", []string{"unauthenticated", "no authentication", "anonymous", "without login"}},
		{"L", []string{"authenticated", "basic user", "normal user", "user account"}},
		{"H", []string{"administrative", "admin", "privileged", "root", "system level"}},
	}},
	{metric: "UI", def: "N", candidates: []candidate{
		{"N", []string{"automatic", "without user", "no interaction", "automated"}},
		{"R", []string{"user action", "click", "download", "user interaction", "manual"}},
	}},
	{metric: "S", def: "U", candidates: []candidate{
		{"U", []string{"single system", "same system", "unchanged", "contained"}},
		{"C", []string{"multiple systems", "spread", "other systems", "changed", "escalate"}},
	}},
	{metric: "C", def: "L", candidates: []candidate{
		{"H", []string{"sensitive data", "credentials", "passwords", "full access", "all data"}},
		{"L", []string{"limited information", "partial disclosure", "minor"}},
		{"N", []string{"no confidentiality", "no data disclosure"}},
	}},
	{metric: "I", def: "L", candidates: []candidate{
		{"H", []string{"modify all", "complete corruption", "full control"}},
		{"L", []string{"minor modification", "partial modification", "slight changes"}},
		{"N", []string{"no integrity", "read only", "no modification"}},
	}},
	{metric: "A", def: "L", candidates: []candidate{
		{"H", []string{"crash", "denial of service", "dos", "shutdown", "unavailable"}},
		{"L", []string{"degraded", "intermittent", "reduced performance"}},
		{"N", []string{"no availability", "no impact on availability"}},
	}},
}

// Vector guesses a v3.1 base vector for the description. The second return
// is false when the description is empty.
func Vector(desc string) (string, bool) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "", false
	}
	text := strings.ToLower(desc)

	var b strings.Builder
	b.WriteString("CVSS:3.1")
	for _, r := range rules {
		best, score := r.def, 0
		for _, c := range r.candidates {
			n := 0
			for _, kw := range c.keywords {
				n += strings.Count(text, kw)
			}
			if n > score {
				best, score = c.value, n
			}
		}
		b.WriteString("/")
		b.WriteString(r.metric)
		b.WriteString(":")
		b.WriteString(best)
	}
	return b.String(), true
}

// Guesser implements [github.com/quay/cvsscalc/batch.Generator] with
// [Vector].
type Guesser struct{}

// Generate implements the batch package's Generator.
func (Guesser) Generate(desc string) (string, bool) { return Vector(desc) }
