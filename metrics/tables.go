package metrics

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// Source tells which font table the vertical metrics of a font have been
// taken from.
type Source int8

const (
	SourceNone    Source = iota // no metrics available
	SourceHHea                  // table 'hhea'
	SourceOS2                   // OS/2 typographic metrics
	SourceGeneric               // font-level ascender/descender of the parsing library
)

func (s Source) String() string {
	switch s {
	case SourceHHea:
		return "hhea"
	case SourceOS2:
		return "OS/2"
	case SourceGeneric:
		return "generic"
	}
	return "none"
}

// HHeaMetrics holds the vertical metrics of table 'hhea'.
type HHeaMetrics struct {
	Ascender  sfnt.Units
	Descender sfnt.Units
	LineGap   sfnt.Units
}

// OS2Metrics holds the subset of table 'OS/2' relevant for line metrics.
type OS2Metrics struct {
	Version        uint16
	AvgCharWidth   sfnt.Units // xAvgCharWidth
	TypoAscender   sfnt.Units
	TypoDescender  sfnt.Units
	TypoLineGap    sfnt.Units
	XHeight        sfnt.Units // sxHeight, version >= 2
	CapHeight      sfnt.Units // sCapHeight, version >= 2
	UseTypoMetrics bool       // fsSelection bit 7
}

// FontTables is the table-shaped view of a font's vertical metrics, as a
// font-parsing library delivers it. Sub-tables are nil if absent from the font.
//
// Clients should not hand FontTables to the resolver functions directly, but
// call [FontTables.Metrics] once when the font is loaded.
type FontTables struct {
	UnitsPerEm sfnt.Units
	Ascender   sfnt.Units // generic ascender, last resort
	Descender  sfnt.Units // generic descender, last resort; either sign convention
	HHea       *HHeaMetrics
	OS2        *OS2Metrics
}

// FontMetrics contains the normalized vertical metrics of a font, in font units.
// Values of this type are immutable once created by [FontTables.Metrics].
type FontMetrics struct {
	UnitsPerEm   sfnt.Units // ad-hoc units per em
	Ascender     sfnt.Units // extent above the baseline
	Descender    sfnt.Units // extent below the baseline, always <= 0
	LineGap      sfnt.Units // typographic line gap, always >= 0
	XHeight      sfnt.Units // 0 if unknown
	CapHeight    sfnt.Units // 0 if unknown
	AvgCharWidth sfnt.Units // 0 if unknown
	Source       Source     // table the ascender/descender/line gap came from
}

func (m FontMetrics) String() string {
	return fmt.Sprintf("[upem=%d asc=%d desc=%d gap=%d x=%d cap=%d (%s)]",
		m.UnitsPerEm, m.Ascender, m.Descender, m.LineGap, m.XHeight, m.CapHeight, m.Source)
}

// Metrics resolves the vertical metrics of a font from its tables.
//
// Table 'hhea' takes precedence if present and valid. Otherwise the OS/2
// typographic metrics are used, if present and valid. As a last resort the
// generic ascender and descender are used; if these are missing too, the
// resulting metrics are degenerate (zero height), but still valid.
// A table is considered invalid if both its ascender and descender are 0.
//
// x-height, cap-height and average character width are always taken from
// table OS/2, if present.
//
// The descender is normalized to a negative value, whatever sign convention
// the source uses. A negative line gap is clamped to 0.
//
// Metrics returns false if the units-per-em value is not positive; the
// returned metrics are unusable in this case.
func (t FontTables) Metrics() (FontMetrics, bool) {
	m := FontMetrics{UnitsPerEm: t.UnitsPerEm}
	if t.UnitsPerEm <= 0 {
		tracer().Debugf("units per em = %d, metrics unavailable", t.UnitsPerEm)
		return m, false
	}
	switch {
	case t.HHea != nil && validExtents(t.HHea.Ascender, t.HHea.Descender):
		m.Ascender = t.HHea.Ascender
		m.Descender = t.HHea.Descender
		m.LineGap = t.HHea.LineGap
		m.Source = SourceHHea
	case t.OS2 != nil && validExtents(t.OS2.TypoAscender, t.OS2.TypoDescender):
		tracer().Debugf("no usable hhea metrics, falling back to OS/2")
		m.Ascender = t.OS2.TypoAscender
		m.Descender = t.OS2.TypoDescender
		m.LineGap = t.OS2.TypoLineGap
		m.Source = SourceOS2
	default:
		tracer().Debugf("neither hhea nor OS/2 usable, using generic metrics")
		m.Ascender = t.Ascender
		m.Descender = t.Descender
		m.Source = SourceGeneric
	}
	if t.OS2 != nil {
		m.XHeight = max(t.OS2.XHeight, 0)
		m.CapHeight = max(t.OS2.CapHeight, 0)
		m.AvgCharWidth = max(t.OS2.AvgCharWidth, 0)
	}
	m.Descender = -absUnits(m.Descender)
	m.LineGap = max(m.LineGap, 0)
	return m, true
}

func validExtents(ascender, descender sfnt.Units) bool {
	return ascender != 0 || descender != 0
}

func absUnits(u sfnt.Units) sfnt.Units {
	if u < 0 {
		return -u
	}
	return u
}
