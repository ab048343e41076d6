package metrics

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Option is an optional value. Metric overrides are options over float64,
// the zero value means "not set".
type Option[T any] struct {
	value T
	ok    bool
}

// Some constructs an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None constructs an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Unwrap returns the value and whether it is present.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// Or returns the held value, or def for an empty option.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Filter empties the option if its value does not satisfy keep.
func (o Option[T]) Filter(keep func(T) bool) Option[T] {
	if o.ok && !keep(o.value) {
		return None[T]()
	}
	return o
}

// --- Overrides -------------------------------------------------------------

// Override is a metric override expressed as a fraction of the em square,
// e.g. 0.8 for `ascent-override: 80%`. The zero value is "not set".
type Override = Option[float64]

// Fraction creates an override from a fraction of the em square.
// NaN and infinite values yield an unset override.
func Fraction(f float64) Override {
	return Some(f).Filter(isFinite)
}

// Percent creates an override from a CSS percentage, i.e. Percent(80) equals
// Fraction(0.8).
func Percent(p float64) Override {
	return Fraction(p / 100)
}

// ErrInvalidOverride is returned by ParseOverride for input which is neither
// empty nor a non-negative number or percentage.
var ErrInvalidOverride = errors.New("invalid metric override")

// ParseOverride parses user input for a metric override. The empty string and
// the CSS keyword `normal` denote an unset override. A trailing '%' makes the
// value a percentage, otherwise it is read as a fraction of the em square:
//
//	""      → unset
//	"90%"   → 0.9
//	"0.9"   → 0.9
//
// This is the only place where user input for overrides is validated;
// negative or non-numeric input is rejected.
func ParseOverride(s string) (Override, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "normal") {
		return None[float64](), nil
	}
	if strings.ContainsAny(s, "xX") { // no hex floats
		return None[float64](), fmt.Errorf("%w: %q", ErrInvalidOverride, s)
	}
	scale := 1.0
	if num, ok := strings.CutSuffix(s, "%"); ok {
		s, scale = strings.TrimSpace(num), 100
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return None[float64](), fmt.Errorf("%w: %q", ErrInvalidOverride, s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return None[float64](), fmt.Errorf("%w: %q out of range", ErrInvalidOverride, s)
	}
	return Fraction(f / scale), nil
}

// FormatPercent formats an override as a CSS percentage with at most two
// decimals, or returns the empty string for unset overrides.
func FormatPercent(o Override) string {
	return FormatPercentPrec(o, 2)
}

// FormatPercentPrec formats an override as a CSS percentage with at most
// prec decimals, or returns the empty string for unset overrides.
func FormatPercentPrec(o Override, prec int) string {
	f, ok := o.Unwrap()
	if !ok {
		return ""
	}
	pow := math.Pow10(prec)
	p := math.Round(f*100*pow) / pow
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// Overrides is the set of @font-face metric overrides for one font in one
// language scope. The zero value has no overrides set.
type Overrides struct {
	Ascent     Override // ascent-override
	Descent    Override // descent-override, always applied below the baseline
	LineGap    Override // line-gap-override
	SizeAdjust Override // size-adjust, a multiplier; unset means 1
}

// HasMetricOverrides reports whether any of ascent, descent or line-gap
// overrides is set. Size-adjust alone does not count.
func (ov Overrides) HasMetricOverrides() bool {
	return ov.Ascent.IsSome() || ov.Descent.IsSome() || ov.LineGap.IsSome()
}

// SizeAdjustFactor returns the size-adjust multiplier. It is 1 unless
// size-adjust is set to a positive value.
func (ov Overrides) SizeAdjustFactor() float64 {
	return ov.SizeAdjust.Filter(positive).Or(1)
}

func positive(f float64) bool {
	return f > 0
}

// IsZero reports whether no override at all is set.
func (ov Overrides) IsZero() bool {
	return !ov.HasMetricOverrides() && ov.SizeAdjust.IsNone()
}

func (ov Overrides) String() string {
	var parts []string
	add := func(name string, o Override) {
		if p := FormatPercent(o); p != "" {
			parts = append(parts, name+"="+p)
		}
	}
	add("ascent", ov.Ascent)
	add("descent", ov.Descent)
	add("line-gap", ov.LineGap)
	add("size-adjust", ov.SizeAdjust)
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}
