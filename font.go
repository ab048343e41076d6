package fontfit

import (
	"fmt"

	"github.com/npillmayer/fontfit/fontquery"
	"github.com/npillmayer/fontfit/internal/fontload"
	"github.com/npillmayer/fontfit/metrics"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontfit'
func tracer() tracing.Trace {
	return tracing.Select("fontfit")
}

// ErrNoMetrics signals that a font does not provide usable vertical metrics.
var ErrNoMetrics = fontquery.ErrNoMetrics

// Font is a font taking part in a font stack: either a font loaded from a
// font file, or a system font known by name only, without measurable metrics.
type Font struct {
	Family   string // family name
	Fontname string // full name, if known
	Filepath string // empty for fonts not loaded from a file
	query    *fontquery.Font
	metrics  *metrics.FontMetrics
}

// LoadFont loads an OpenType font (TTF or OTF) from a file.
func LoadFont(fontfile string) (*Font, error) {
	ff, err := fontload.Load(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseFont(ff.Binary)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontfile, err)
	}
	f.Filepath = ff.Filepath
	return f, nil
}

// ParseFont loads an OpenType font (TTF or OTF) from memory.
func ParseFont(fbytes []byte) (*Font, error) {
	q, err := fontquery.Open(fbytes)
	if err != nil {
		return nil, err
	}
	f := &Font{
		Family:   q.Family(),
		Fontname: q.Names()["full"],
		query:    q,
	}
	if m, ok := q.Metrics(); ok {
		f.metrics = &m
		tracer().Debugf("loaded font %s, metrics = %v", f.Fontname, m)
	} else {
		tracer().Infof("font %s has no usable metrics", f.Fontname)
	}
	return f, nil
}

// SystemFont creates a font entry for a system font, identified by its family
// name. System fonts have no metrics.
func SystemFont(family string) *Font {
	return &Font{Family: family, Fontname: family}
}

// IsSystem reports whether f is a system font without font file.
func (f *Font) IsSystem() bool {
	return f.query == nil
}

// Metrics returns the vertical metrics of the font, or nil if they are unavailable.
func (f *Font) Metrics() *metrics.FontMetrics {
	return f.metrics
}

// RequireMetrics returns the vertical metrics of the font, or an error if the
// font has none.
func (f *Font) RequireMetrics() (*metrics.FontMetrics, error) {
	if f.metrics == nil {
		return nil, fmt.Errorf("%s: %w", f.Family, ErrNoMetrics)
	}
	return f.metrics, nil
}

// Query returns the table view of the font, or nil for system fonts.
func (f *Font) Query() *fontquery.Font {
	return f.query
}

// Issues returns the issues found while reading the font's tables.
func (f *Font) Issues() []fontquery.TableIssue {
	if f.query == nil {
		return nil
	}
	return f.query.Issues()
}

// LineHeight resolves a CSS line-height for this font, see [metrics.ResolveLineHeight].
func (f *Font) LineHeight(spec metrics.LineHeight, ov metrics.Overrides) metrics.LineHeight {
	return metrics.ResolveLineHeight(spec, f.metrics, ov)
}

// Guides resolves a CSS line-height for this font and computes the alignment
// guides for a font size in pixels, see [metrics.Guides].
func (f *Font) Guides(spec metrics.LineHeight, fontSizePx float64, ov metrics.Overrides) (metrics.GuideOffsets, metrics.LineHeight, bool) {
	return metrics.Guides(spec, f.metrics, fontSizePx, ov)
}
