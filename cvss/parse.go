package cvss

import (
	"fmt"
	"slices"
	"strings"
)

// Parse parses and validates a CVSS vector string.
//
// The returned error unwraps to one of [ErrUnsupportedVersion],
// [ErrMalformedSegment], [ErrDuplicateMetric], [ErrUnknownMetric],
// [ErrMissingMetric], or [ErrInvalidMetricValue], and names the offending
// metric or value.
func Parse(s string) (*MetricSet, error) {
	tag, rest, _ := strings.Cut(s, "/")
	var ver Version
	switch tag {
	case "CVSS:3.1":
		ver = V31
	case "CVSS:4.0":
		ver = V40
	default:
		if v, ok := strings.CutPrefix(tag, "CVSS:"); ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
		}
		return nil, fmt.Errorf("%w: missing %q tag", ErrUnsupportedVersion, "CVSS:")
	}

	defs, idx := ver.defs(), ver.index()
	raw := make(map[Metric]string, len(defs))
	if rest != "" {
		for _, seg := range strings.Split(rest, "/") {
			if strings.Count(seg, ":") != 1 {
				return nil, fmt.Errorf("%w: %q", ErrMalformedSegment, seg)
			}
			k, v, _ := strings.Cut(seg, ":")
			if k == "" || v == "" {
				return nil, fmt.Errorf("%w: %q", ErrMalformedSegment, seg)
			}
			c := Metric(k)
			if _, ok := idx[c]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, k)
			}
			if _, ok := raw[c]; ok {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateMetric, k)
			}
			raw[c] = v
		}
	}

	var missing []string
	for _, d := range defs {
		if d.opt {
			continue
		}
		if _, ok := raw[d.code]; !ok {
			missing = append(missing, string(d.code))
		}
	}
	if len(missing) != 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingMetric, strings.Join(missing, ", "))
	}

	val := make(map[Metric]string, len(defs))
	for _, d := range defs {
		v, ok := raw[d.code]
		switch {
		case !ok, d.opt && v == NotDefined:
			val[d.code] = NotDefined
		case slices.Contains(d.valid, v):
			val[d.code] = v
		default:
			return nil, fmt.Errorf("%w: %s:%q", ErrInvalidMetricValue, d.code, v)
		}
	}
	return &MetricSet{ver: ver, val: val}, nil
}
