package fontstack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/fontfit/metrics"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// FormatVersion is the version of the JSON format written by [Stack.Export].
const FormatVersion = 1

// ErrUnsupportedVersion is returned by [Import] for JSON documents of an
// unknown format version.
var ErrUnsupportedVersion = errors.New("unsupported stack format version")

type stackJSON struct {
	Version    int            `json:"version"`
	LineHeight lineHeightJSON `json:"lineHeight"`
	Fonts      []entryJSON    `json:"fonts"`
}

type entryJSON struct {
	Family    string                   `json:"family"`
	Local     []string                 `json:"local,omitempty"`
	System    bool                     `json:"system,omitempty"`
	Metrics   *metricsJSON             `json:"metrics,omitempty"`
	Overrides overridesJSON            `json:"overrides"`
	Languages map[string]overridesJSON `json:"languages,omitempty"`
}

type metricsJSON struct {
	UnitsPerEm   int32  `json:"unitsPerEm"`
	Ascender     int32  `json:"ascender"`
	Descender    int32  `json:"descender"`
	LineGap      int32  `json:"lineGap"`
	XHeight      int32  `json:"xHeight,omitempty"`
	CapHeight    int32  `json:"capHeight,omitempty"`
	AvgCharWidth int32  `json:"avgCharWidth,omitempty"`
	Source       string `json:"source,omitempty"`
}

// overridesJSON holds overrides as CSS percentages; empty means unset.
type overridesJSON struct {
	Ascent     string `json:"ascent,omitempty"`
	Descent    string `json:"descent,omitempty"`
	LineGap    string `json:"lineGap,omitempty"`
	SizeAdjust string `json:"sizeAdjust,omitempty"`
}

// lineHeightJSON is either the string "normal" or a number.
type lineHeightJSON metrics.LineHeight

func (l lineHeightJSON) MarshalJSON() ([]byte, error) {
	lh := metrics.LineHeight(l)
	if lh.IsNormal() {
		return []byte(`"normal"`), nil
	}
	return json.Marshal(lh.Value())
}

func (l *lineHeightJSON) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		lh := metrics.ParseLineHeight(s)
		if lh.IsNormal() && !strings.EqualFold(strings.TrimSpace(s), "normal") {
			tracer().Infof("line-height %q is not a number, using normal", s)
		}
		*l = lineHeightJSON(lh)
		return nil
	}
	if string(b) == "null" {
		*l = lineHeightJSON(metrics.Normal())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("line-height: %w", err)
	}
	*l = lineHeightJSON(metrics.Number(f))
	return nil
}

const percentPrecision = 4

func overridesToJSON(ov metrics.Overrides) overridesJSON {
	return overridesJSON{
		Ascent:     metrics.FormatPercentPrec(ov.Ascent, percentPrecision),
		Descent:    metrics.FormatPercentPrec(ov.Descent, percentPrecision),
		LineGap:    metrics.FormatPercentPrec(ov.LineGap, percentPrecision),
		SizeAdjust: metrics.FormatPercentPrec(ov.SizeAdjust, percentPrecision),
	}
}

func (o overridesJSON) overrides() (ov metrics.Overrides, err error) {
	if ov.Ascent, err = metrics.ParseOverride(o.Ascent); err != nil {
		return ov, fmt.Errorf("ascent: %w", err)
	}
	if ov.Descent, err = metrics.ParseOverride(o.Descent); err != nil {
		return ov, fmt.Errorf("descent: %w", err)
	}
	if ov.LineGap, err = metrics.ParseOverride(o.LineGap); err != nil {
		return ov, fmt.Errorf("line gap: %w", err)
	}
	if ov.SizeAdjust, err = metrics.ParseOverride(o.SizeAdjust); err != nil {
		return ov, fmt.Errorf("size-adjust: %w", err)
	}
	return ov, nil
}

func metricsToJSON(m *metrics.FontMetrics) *metricsJSON {
	if m == nil {
		return nil
	}
	return &metricsJSON{
		UnitsPerEm:   int32(m.UnitsPerEm),
		Ascender:     int32(m.Ascender),
		Descender:    int32(m.Descender),
		LineGap:      int32(m.LineGap),
		XHeight:      int32(m.XHeight),
		CapHeight:    int32(m.CapHeight),
		AvgCharWidth: int32(m.AvgCharWidth),
		Source:       m.Source.String(),
	}
}

// fontMetrics re-normalizes imported metrics, as they may have been edited by hand.
func (mj *metricsJSON) fontMetrics() *metrics.FontMetrics {
	if mj == nil {
		return nil
	}
	tables := metrics.FontTables{
		UnitsPerEm: sfnt.Units(mj.UnitsPerEm),
		Ascender:   sfnt.Units(mj.Ascender),
		Descender:  sfnt.Units(mj.Descender),
		OS2: &metrics.OS2Metrics{
			XHeight:      sfnt.Units(mj.XHeight),
			CapHeight:    sfnt.Units(mj.CapHeight),
			AvgCharWidth: sfnt.Units(mj.AvgCharWidth),
		},
	}
	m, ok := tables.Metrics()
	if !ok {
		return nil
	}
	m.LineGap = max(sfnt.Units(mj.LineGap), 0)
	m.Source = parseSource(mj.Source)
	return &m
}

func parseSource(s string) metrics.Source {
	for _, src := range []metrics.Source{metrics.SourceHHea, metrics.SourceOS2, metrics.SourceGeneric} {
		if src.String() == s {
			return src
		}
	}
	return metrics.SourceNone
}

// Export writes the stack as JSON.
func (s *Stack) Export(w io.Writer) error {
	doc := stackJSON{
		Version:    FormatVersion,
		LineHeight: lineHeightJSON(s.LineHeight),
		Fonts:      make([]entryJSON, 0, len(s.entries)),
	}
	for _, e := range s.entries {
		ej := entryJSON{
			Family:    e.Family,
			Local:     e.Local,
			System:    e.System,
			Metrics:   metricsToJSON(e.Metrics),
			Overrides: overridesToJSON(e.Overrides),
		}
		if len(e.Languages) > 0 {
			ej.Languages = make(map[string]overridesJSON, len(e.Languages))
			for tag, ov := range e.Languages {
				ej.Languages[tag.String()] = overridesToJSON(ov)
			}
		}
		doc.Fonts = append(doc.Fonts, ej)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Import reads a stack from JSON, as written by [Stack.Export].
func Import(r io.Reader) (*Stack, error) {
	var doc stackJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("fontstack: cannot decode stack: %w", err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	s := New()
	s.LineHeight = metrics.LineHeight(doc.LineHeight)
	for _, ej := range doc.Fonts {
		e := Entry{
			Family:  ej.Family,
			Local:   ej.Local,
			System:  ej.System,
			Metrics: ej.Metrics.fontMetrics(),
		}
		var err error
		if e.Overrides, err = ej.Overrides.overrides(); err != nil {
			return nil, fmt.Errorf("fontstack: %s: %w", ej.Family, err)
		}
		for key, oj := range ej.Languages {
			tag, err := language.Parse(key)
			if err != nil {
				return nil, fmt.Errorf("fontstack: %s: language %q: %w", ej.Family, key, err)
			}
			ov, err := oj.overrides()
			if err != nil {
				return nil, fmt.Errorf("fontstack: %s [%s]: %w", ej.Family, key, err)
			}
			if e.Languages == nil {
				e.Languages = make(map[language.Tag]metrics.Overrides)
			}
			e.Languages[tag] = ov
		}
		if err := s.Add(e); err != nil {
			return nil, fmt.Errorf("fontstack: %w", err)
		}
	}
	tracer().Infof("imported stack with %d fonts", s.Len())
	return s, nil
}
