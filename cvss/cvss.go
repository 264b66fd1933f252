// Package cvss implements CVSS v3.1 and v4.0 vector parsing, scoring, and
// canonicalization.
//
// The primary purpose of this package is to parse a CVSS vector string into a
// validated [MetricSet], compute the numerical scores and qualitative
// severities defined for the vector's version, and emit the canonicalized
// representation of the vector.
//
// # CVSS v3.1
//
// Metrics and scoring are implemented as laid out in the [v3.1 specification],
// including the temporal and environmental metric groups. Environmental
// scoring resolves each "modified" metric to its base counterpart when the
// modified variant is not supplied.
//
// # CVSS v4.0
//
// The base metric group is implemented with the additive impact model: the
// vulnerable-system and subsequent-system impacts each contribute the maximum
// of their constituent weights, and the exploitability product is scaled by
// the v3-era 8.22 coefficient. Threat and environmental adjustments are
// multiplicative. Supplemental metrics are carried through verbatim and never
// contribute to a numeric score.
//
// All scoring is pure: a [MetricSet] is immutable once validated, [Score]
// cannot fail, and every intermediate sub-score is returned in the
// [ScoreResult] rather than retained anywhere. Concurrent calls never
// interfere.
//
// [v3.1 specification]: https://www.first.org/cvss/v3-1/
package cvss

import (
	"errors"
	"fmt"
)

// The parse-time failure modes. Score computation cannot fail: every lookup
// a formula performs is guaranteed present once validation completes.
var (
	// ErrUnsupportedVersion is reported when the leading version tag is
	// missing or names a version this package does not score.
	ErrUnsupportedVersion = errors.New("unsupported CVSS version")
	// ErrMalformedSegment is reported for a vector segment that is not
	// exactly "KEY:VALUE".
	ErrMalformedSegment = errors.New("malformed vector segment")
	// ErrDuplicateMetric is reported when a metric appears more than once.
	ErrDuplicateMetric = errors.New("duplicate metric")
	// ErrUnknownMetric is reported for a key not defined by the detected
	// version. Unknown keys are never ignored; this catches typos early.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrMissingMetric is reported when metrics required by the base score
	// equations are absent. The error message names every missing metric.
	ErrMissingMetric = errors.New("missing required metric")
	// ErrInvalidMetricValue is reported when a value is outside the legal
	// set for its metric and version.
	ErrInvalidMetricValue = errors.New("invalid metric value")
)

// Version is a CVSS specification version.
type Version int

// The supported versions.
const (
	V31 Version = iota + 1 // CVSS:3.1
	V40                    // CVSS:4.0
)

// String implements [fmt.Stringer].
func (v Version) String() string {
	switch v {
	case V31:
		return "3.1"
	case V40:
		return "4.0"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// MarshalText implements [encoding.TextMarshaler].
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (v *Version) UnmarshalText(b []byte) error {
	switch string(b) {
	case "3.1":
		*v = V31
	case "4.0":
		*v = V40
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, string(b))
	}
	return nil
}

// Prefix returns the vector tag for the version.
func (v Version) prefix() string {
	switch v {
	case V31:
		return "CVSS:3.1"
	case V40:
		return "CVSS:4.0"
	}
	panic("programmer error: invalid Version")
}

// Severity is the qualitative severity band of a score.
type Severity int

// The severity bands. The thresholds are identical for v3.1 and v4.0.
const (
	_ Severity = iota
	None
	Low
	Medium
	High
	Critical
)

// SeverityFor maps a score in [0,10] to its severity band. The intervals are
// half-open; boundary scores map to the higher band.
func SeverityFor(score float64) (s Severity) {
	switch {
	case score == 0:
		s = None
	case score < 4:
		s = Low
	case score < 7:
		s = Medium
	case score < 9:
		s = High
	default:
		s = Critical
	}
	return s
}

// String implements [fmt.Stringer].
func (s Severity) String() string {
	switch s {
	case None:
		return "None"
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	case Critical:
		return "Critical"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Severity) UnmarshalText(b []byte) error {
	for sev := None; sev <= Critical; sev++ {
		if sev.String() == string(b) {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", string(b))
}

// RoundUp implements the specification's "Round up" function: the smallest
// multiple of a tenth greater than or equal to the input. Scaled integers are
// used to dodge float artifacts like 8.6*10 != 86.
func roundUp(f float64) float64 {
	i := int(f * 100_000)
	if i%10_000 == 0 {
		return float64(i) / 100_000
	}
	return float64((i/10_000)+1) / 10
}
