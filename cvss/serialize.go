package cvss

import (
	"encoding"
	"fmt"
)

var (
	_ encoding.TextMarshaler = (*MetricSet)(nil)
	_ fmt.Stringer           = (*MetricSet)(nil)
)

// MarshalText implements [encoding.TextMarshaler].
//
// Metrics are emitted in the fixed canonical order of the set's version,
// grouped base, then temporal/threat, then environmental, then supplemental.
// Metrics holding [NotDefined] are omitted, so Parse∘MarshalText is the
// identity on validated sets.
func (m *MetricSet) MarshalText() ([]byte, error) {
	text := append(make([]byte, 0, 64), m.ver.prefix()...)
	for _, d := range m.ver.defs() {
		v := m.Get(d.code)
		if v == NotDefined {
			continue
		}
		text = append(text, '/')
		text = append(text, d.code...)
		text = append(text, ':')
		text = append(text, v...)
	}
	return text, nil
}

// String implements [fmt.Stringer], returning the canonical vector string.
func (m *MetricSet) String() string {
	t, _ := m.MarshalText()
	return string(t)
}
