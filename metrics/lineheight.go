package metrics

import (
	"math"
	"strconv"
	"strings"
)

// LineHeight is a CSS line-height value: either the keyword `normal` or a
// unitless multiplier of the font size. The zero value is `normal`.
type LineHeight struct {
	value  float64
	number bool
}

// Normal returns the line-height keyword `normal`.
func Normal() LineHeight {
	return LineHeight{}
}

// Number returns a numeric line-height. NaN and infinite values are treated
// as `normal`. Negative values are not rejected; sanitizing is up to the caller.
func Number(f float64) LineHeight {
	if !isFinite(f) {
		return Normal()
	}
	return LineHeight{value: f, number: true}
}

// ParseLineHeight interprets user input for a line-height. Anything that is
// not a finite decimal number, including the keyword `normal`, yields `normal`.
// Infinities and hex floats, which strconv would accept, yield `normal` as well.
func ParseLineHeight(s string) LineHeight {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "normal") || strings.ContainsAny(s, "xX") {
		return Normal()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Normal()
	}
	return Number(f)
}

// IsNormal reports whether l is the keyword `normal`.
func (l LineHeight) IsNormal() bool {
	return !l.number
}

// Value returns the numeric line-height, or NaN for `normal`.
func (l LineHeight) Value() float64 {
	if !l.number {
		return math.NaN()
	}
	return l.value
}

// String returns the CSS representation.
func (l LineHeight) String() string {
	if !l.number {
		return "normal"
	}
	return strconv.FormatFloat(l.value, 'f', -1, 64)
}

// --- Resolution ------------------------------------------------------------

// ResolveLineHeight computes the line-height to apply for a font, given the
// requested line-height and the metric overrides in effect.
//
// Metrics have to be consulted if the request is `normal` or if any of the
// ascent, descent or line-gap overrides is set. Otherwise the request is
// returned unchanged.
//
// If metrics are needed but unavailable (m is nil or has no valid
// units-per-em), a finite numeric request is returned as is, and `normal`
// otherwise.
//
// With metrics available, the metric height (ascent + descent + line gap,
// after overrides and size-adjust, in em) is returned for a `normal` request.
// For a numeric request the larger of request and metric height wins: the
// result never shrinks below an explicitly requested value.
func ResolveLineHeight(spec LineHeight, m *FontMetrics, ov Overrides) LineHeight {
	requested := spec.Value()
	needsMetrics := spec.IsNormal() || math.IsNaN(requested) || ov.HasMetricOverrides()
	if !needsMetrics {
		return spec
	}
	height, ok := MetricHeight(m, ov)
	if !ok {
		if isFinite(requested) {
			return Number(requested)
		}
		return Normal()
	}
	if isFinite(requested) {
		return Number(math.Max(requested, height))
	}
	return Number(height)
}

// MetricHeight returns the height of the metric box of a font in em, i.e.
// (|ascender| + |descender| + line gap) / units-per-em, with overrides and
// size-adjust applied. It returns false if metrics are unavailable.
func MetricHeight(m *FontMetrics, ov Overrides) (float64, bool) {
	r, ok := Apply(m, ov)
	if !ok {
		return 0, false
	}
	h := (math.Abs(r.Ascender) + math.Abs(r.Descender) + r.LineGap) / r.UnitsPerEm
	tracer().Debugf("metric height of %v with %v = %g", m, ov, h)
	return h, true
}

// Resolved holds the vertical metrics of a font in font units, after
// metric overrides and size-adjust have been applied.
type Resolved struct {
	UnitsPerEm float64
	Ascender   float64
	Descender  float64 // <= 0
	LineGap    float64
	XHeight    float64
	CapHeight  float64
}

// ContentHeight is the height of the content area in font units,
// line gap included.
func (r Resolved) ContentHeight() float64 {
	return r.Ascender - r.Descender + r.LineGap
}

// Apply applies metric overrides and size-adjust to font metrics.
//
// A set override replaces the font's value: ascender = ascent × upem,
// descender = −|descent × upem|, line gap = line-gap × upem. Afterwards all of
// ascender, descender, line gap, x-height and cap-height are multiplied by the
// size-adjust factor.
//
// Apply returns false for nil metrics or a units-per-em value <= 0.
func Apply(m *FontMetrics, ov Overrides) (Resolved, bool) {
	if m == nil || m.UnitsPerEm <= 0 {
		return Resolved{}, false
	}
	upem := float64(m.UnitsPerEm)
	r := Resolved{
		UnitsPerEm: upem,
		Ascender:   float64(m.Ascender),
		Descender:  float64(m.Descender),
		LineGap:    float64(m.LineGap),
		XHeight:    float64(m.XHeight),
		CapHeight:  float64(m.CapHeight),
	}
	if a, ok := ov.Ascent.Unwrap(); ok {
		r.Ascender = a * upem
	}
	if d, ok := ov.Descent.Unwrap(); ok {
		r.Descender = -math.Abs(d * upem)
	}
	if g, ok := ov.LineGap.Unwrap(); ok {
		r.LineGap = g * upem
	}
	s := ov.SizeAdjustFactor()
	r.Ascender *= s
	r.Descender *= s
	r.LineGap *= s
	r.XHeight *= s
	r.CapHeight *= s
	return r, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
