// Package equiv decides whether two per-node reply values count as "the same"
// for collapse purposes. Each command declares one of a small set of
// equivalence classes; the default is exact structural equality.
//
// Classification never fails: any coercion failure yields "not equivalent",
// preferring a retained multi-value shape over a wrong collapse.
package equiv

import (
	"strings"

	"github.com/codewandler/clstrkv-go/core/raw"
)

// Class is the comparison rule governing a collapse decision.
type Class uint8

const (
	// Exact is structural equality. Numeric-looking text is not normalized.
	Exact Class = iota
	// Numeric coerces both sides to float64, parsing text if needed.
	Numeric
	// StatusTrue tests membership in {true, "OK", "1"}.
	StatusTrue
	// StatusFalse tests membership in {false, "0"}.
	StatusFalse
)

// Equivalent reports whether a and b are the same under class c.
func Equivalent(a, b raw.Value, c Class) bool {
	switch c {
	case Numeric:
		af, aok := a.Float64()
		bf, bok := b.Float64()
		return aok && bok && af == bf
	case StatusTrue:
		return IsStatusTrue(a) && IsStatusTrue(b)
	case StatusFalse:
		return IsStatusFalse(a) && IsStatusFalse(b)
	default:
		return raw.Equal(a, b)
	}
}

// IsStatusTrue reports membership in the affirmative status set:
// boolean true, "OK" (case-insensitive), or "1".
func IsStatusTrue(v raw.Value) bool {
	switch v.Kind() {
	case raw.KindBool:
		return v.Bool()
	case raw.KindText:
		t := v.Text()
		return t == "1" || strings.EqualFold(t, "OK")
	default:
		return false
	}
}

// IsStatusFalse reports membership in the negative status set:
// boolean false or "0".
func IsStatusFalse(v raw.Value) bool {
	switch v.Kind() {
	case raw.KindBool:
		return !v.Bool()
	case raw.KindText:
		return v.Text() == "0"
	default:
		return false
	}
}
