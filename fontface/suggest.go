package fontface

import "github.com/npillmayer/fontfit/metrics"

// Suggest computes overrides for a fallback font, which make it occupy
// the same vertical space as the primary font.
//
// size-adjust scales the fallback to the average character width of the
// primary font. It is 1 if either font does not tell its average character
// width. Ascent, descent and line gap are taken from the primary font and
// divided by size-adjust, as browsers apply size-adjust to the overrides as
// well.
//
// Without metrics for the primary font no overrides are suggested.
func Suggest(primary, fallback *metrics.FontMetrics) metrics.Overrides {
	if primary == nil || primary.UnitsPerEm <= 0 {
		return metrics.Overrides{}
	}
	pupem := float64(primary.UnitsPerEm)
	sizeAdjust := 1.0
	if fallback != nil && fallback.UnitsPerEm > 0 && fallback.AvgCharWidth > 0 && primary.AvgCharWidth > 0 {
		pw := float64(primary.AvgCharWidth) / pupem
		fw := float64(fallback.AvgCharWidth) / float64(fallback.UnitsPerEm)
		sizeAdjust = pw / fw
	}
	asc := float64(primary.Ascender)
	desc := float64(primary.Descender)
	if desc < 0 {
		desc = -desc
	}
	ov := metrics.Overrides{
		Ascent:     metrics.Fraction(asc / pupem / sizeAdjust),
		Descent:    metrics.Fraction(desc / pupem / sizeAdjust),
		LineGap:    metrics.Fraction(float64(primary.LineGap) / pupem / sizeAdjust),
		SizeAdjust: metrics.Fraction(sizeAdjust),
	}
	tracer().Debugf("suggested overrides %v", ov)
	return ov
}
