package model

import (
	"fmt"
	"strings"
)

// Verdict is the three-way structural honesty outcome
type Verdict int

const (
	VerdictHonest Verdict = iota
	VerdictPartiallyValid
	VerdictDishonest
)

// String returns the snake_case identifier
func (v Verdict) String() string {
	switch v {
	case VerdictHonest:
		return "structurally_honest"
	case VerdictPartiallyValid:
		return "partially_valid"
	case VerdictDishonest:
		return "structurally_dishonest"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Label returns the canonical display label
func (v Verdict) Label() string {
	switch v {
	case VerdictPartiallyValid:
		return "PARTIALLY VALID"
	case VerdictDishonest:
		return "GREEN LIE"
	default:
		return "STRUCTURALLY HONEST"
	}
}

// ParseVerdict maps any verdict string (snake_case identifiers, display labels,
// free-form curated labels) onto a Verdict. Unrecognised labels fall into the
// honest bucket; ok reports whether the label was recognised.
func ParseVerdict(s string) (v Verdict, ok bool) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case upper == "GREEN LIE", upper == "STRUCTURALLY_DISHONEST":
		return VerdictDishonest, true
	case strings.Contains(upper, "PARTIALLY"), strings.Contains(upper, "MISLEADING"):
		return VerdictPartiallyValid, true
	case upper == "STRUCTURALLY HONEST", upper == "STRUCTURALLY_HONEST":
		return VerdictHonest, true
	}
	return VerdictHonest, false
}

// VerdictFamily is ParseVerdict without the recognition flag
func VerdictFamily(s string) Verdict {
	v, _ := ParseVerdict(s)
	return v
}

// MarshalText implements encoding.TextMarshaler
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText accepts every form ParseVerdict understands, so legacy blobs
// carrying display labels decode without loss of family
func (v *Verdict) UnmarshalText(text []byte) error {
	*v = VerdictFamily(string(text))
	return nil
}
