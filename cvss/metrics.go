package cvss

import "slices"

// Metric is the short key of a single vector component, e.g. "AV".
//
// The set of metrics is namespaced per-version: the v3.1 "S" is the Scope
// metric, while the v4.0 "S" is the supplemental Safety metric.
type Metric string

// NotDefined is the distinguished value held by an optional metric that was
// not supplied. It is never emitted in the canonical form.
const NotDefined = "X"

// MetricDef describes one metric of one version: its key, the legal values
// (NotDefined excluded), and whether the base equations require it.
type metricDef struct {
	code  Metric
	valid []string
	opt   bool
}

// V31Metrics is the canonical metric order for v3.1: the base group, then
// temporal, then environmental.
var v31Metrics = []metricDef{
	{code: "AV", valid: []string{"N", "A", "L", "P"}},
	{code: "AC", valid: []string{"L", "H"}},
	{code: "PR", valid: []string{"N", "L", "H"}},
	{code: "UI", valid: []string{"N", "R"}},
	{code: "S", valid: []string{"U", "C"}},
	{code: "C", valid: []string{"H", "L", "N"}},
	{code: "I", valid: []string{"H", "L", "N"}},
	{code: "A", valid: []string{"H", "L", "N"}},
	{code: "E", valid: []string{"H", "F", "P", "U"}, opt: true},
	{code: "RL", valid: []string{"U", "W", "T", "O"}, opt: true},
	{code: "RC", valid: []string{"C", "R", "U"}, opt: true},
	{code: "CR", valid: []string{"H", "M", "L"}, opt: true},
	{code: "IR", valid: []string{"H", "M", "L"}, opt: true},
	{code: "AR", valid: []string{"H", "M", "L"}, opt: true},
	{code: "MAV", valid: []string{"N", "A", "L", "P"}, opt: true},
	{code: "MAC", valid: []string{"L", "H"}, opt: true},
	{code: "MPR", valid: []string{"N", "L", "H"}, opt: true},
	{code: "MUI", valid: []string{"N", "R"}, opt: true},
	{code: "MS", valid: []string{"U", "C"}, opt: true},
	{code: "MC", valid: []string{"H", "L", "N"}, opt: true},
	{code: "MI", valid: []string{"H", "L", "N"}, opt: true},
	{code: "MA", valid: []string{"H", "L", "N"}, opt: true},
}

// V40Metrics is the canonical metric order for v4.0: base, threat,
// environmental, then supplemental.
//
// The "S" value of MSI/MSA marks a safety outcome; it scores as High.
var v40Metrics = []metricDef{
	{code: "AV", valid: []string{"N", "A", "L", "P"}},
	{code: "AC", valid: []string{"L", "H"}},
	{code: "AT", valid: []string{"N", "P"}},
	{code: "PR", valid: []string{"N", "L", "H"}},
	{code: "UI", valid: []string{"N", "P", "A"}},
	{code: "VC", valid: []string{"H", "L", "N"}},
	{code: "VI", valid: []string{"H", "L", "N"}},
	{code: "VA", valid: []string{"H", "L", "N"}},
	{code: "SC", valid: []string{"H", "L", "N"}},
	{code: "SI", valid: []string{"H", "L", "N"}},
	{code: "SA", valid: []string{"H", "L", "N"}},
	{code: "E", valid: []string{"A", "P", "U"}, opt: true},
	{code: "CR", valid: []string{"H", "M", "L"}, opt: true},
	{code: "IR", valid: []string{"H", "M", "L"}, opt: true},
	{code: "AR", valid: []string{"H", "M", "L"}, opt: true},
	{code: "MAV", valid: []string{"N", "A", "L", "P"}, opt: true},
	{code: "MAC", valid: []string{"L", "H"}, opt: true},
	{code: "MAT", valid: []string{"N", "P"}, opt: true},
	{code: "MPR", valid: []string{"N", "L", "H"}, opt: true},
	{code: "MUI", valid: []string{"N", "P", "A"}, opt: true},
	{code: "MVC", valid: []string{"H", "L", "N"}, opt: true},
	{code: "MVI", valid: []string{"H", "L", "N"}, opt: true},
	{code: "MVA", valid: []string{"H", "L", "N"}, opt: true},
	{code: "MSC", valid: []string{"H", "L", "N"}, opt: true},
	{code: "MSI", valid: []string{"S", "H", "L", "N"}, opt: true},
	{code: "MSA", valid: []string{"S", "H", "L", "N"}, opt: true},
	{code: "S", valid: []string{"N", "P"}, opt: true},
	{code: "AU", valid: []string{"N", "Y"}, opt: true},
	{code: "R", valid: []string{"A", "U", "I"}, opt: true},
	{code: "V", valid: []string{"D", "C"}, opt: true},
	{code: "RE", valid: []string{"L", "M", "H"}, opt: true},
	{code: "U", valid: []string{"Clear", "Green", "Amber", "Red"}, opt: true},
}

// V40Supplemental is the metric group echoed into [ScoreResult.Supplemental].
var v40Supplemental = []Metric{"S", "AU", "R", "V", "RE", "U"}

// ModifiedPairs maps each environmental "modified" metric to the base metric
// it overrides, per version.
var (
	v31ModifiedPairs = [][2]Metric{
		{"MAV", "AV"}, {"MAC", "AC"}, {"MPR", "PR"}, {"MUI", "UI"},
		{"MS", "S"}, {"MC", "C"}, {"MI", "I"}, {"MA", "A"},
	}
	v40ModifiedPairs = [][2]Metric{
		{"MAV", "AV"}, {"MAC", "AC"}, {"MAT", "AT"}, {"MPR", "PR"},
		{"MUI", "UI"}, {"MVC", "VC"}, {"MVI", "VI"}, {"MVA", "VA"},
		{"MSC", "SC"}, {"MSI", "SI"}, {"MSA", "SA"},
	}
)

func mkIndex(defs []metricDef) map[Metric]int {
	idx := make(map[Metric]int, len(defs))
	for i, d := range defs {
		idx[d.code] = i
	}
	return idx
}

var (
	v31Index = mkIndex(v31Metrics)
	v40Index = mkIndex(v40Metrics)
)

// Defs returns the version's metric definitions in canonical order.
func (v Version) defs() []metricDef {
	switch v {
	case V31:
		return v31Metrics
	case V40:
		return v40Metrics
	}
	panic("programmer error: invalid Version")
}

func (v Version) index() map[Metric]int {
	switch v {
	case V31:
		return v31Index
	case V40:
		return v40Index
	}
	panic("programmer error: invalid Version")
}

func (v Version) modifiedPairs() [][2]Metric {
	switch v {
	case V31:
		return v31ModifiedPairs
	case V40:
		return v40ModifiedPairs
	}
	panic("programmer error: invalid Version")
}

// MetricSet is a validated, version-tagged set of metric values.
//
// Once constructed by [Parse] (or derived internally for environmental
// scoring) every metric defined for the version has an entry; optional
// metrics that were not supplied hold [NotDefined]. A MetricSet is never
// mutated after construction.
type MetricSet struct {
	ver Version
	val map[Metric]string
}

// Version reports the version the set was validated against.
func (m *MetricSet) Version() Version { return m.ver }

// Get returns the value of the named metric, or [NotDefined] when the metric
// was not supplied or is not defined for the set's version.
func (m *MetricSet) Get(c Metric) string {
	v, ok := m.val[c]
	if !ok {
		return NotDefined
	}
	return v
}

// Defined reports whether the named metric was supplied with a concrete
// value.
func (m *MetricSet) Defined(c Metric) bool { return m.Get(c) != NotDefined }

// DefinedAny reports whether any of the named metrics is defined.
func (m *MetricSet) definedAny(cs ...Metric) bool {
	return slices.ContainsFunc(cs, m.Defined)
}

// Equal reports whether the two sets hold the same version and values.
// It is picked up by go-cmp.
func (m *MetricSet) Equal(o *MetricSet) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.ver != o.ver || len(m.val) != len(o.val) {
		return false
	}
	for c, v := range m.val {
		if o.val[c] != v {
			return false
		}
	}
	return true
}

// Derived returns a copy with every modified metric folded into its base
// counterpart. Environmental scoring runs the base equations over the
// derived set.
func (m *MetricSet) derived() *MetricSet {
	val := make(map[Metric]string, len(m.val))
	for c, v := range m.val {
		val[c] = v
	}
	for _, p := range m.ver.modifiedPairs() {
		if v := m.Get(p[0]); v != NotDefined {
			val[p[1]] = v
		}
	}
	return &MetricSet{ver: m.ver, val: val}
}
