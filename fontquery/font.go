package fontquery

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/fontfit/metrics"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrNoMetrics signals that a font does not provide usable vertical metrics.
var ErrNoMetrics = errors.New("font has no usable vertical metrics")

// Font is a read-only view of the metric tables of an OpenType font.
type Font struct {
	head   HeadTableInfo
	tables metrics.FontTables
	names  map[string]string
	tags   []string
	ic     issueCollector
}

// Open decodes the metric tables of a TrueType or OpenType font binary.
//
// An error is returned only if the font container cannot be read at all.
// Missing or malformed tables are recorded as issues, see [Font.Issues].
func Open(data []byte) (*Font, error) {
	ld, err := opentype.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontquery: cannot open font: %w", err)
	}
	f := &Font{}
	for _, tag := range ld.Tables() {
		f.tags = append(f.tags, tag.String())
	}
	f.readHead(ld)
	f.readHHea(ld)
	f.readOS2(ld)
	if b, err := ld.RawTable(opentype.MustNewTag("name")); err == nil {
		f.names = decodeNames(b)
	} else {
		f.ic.add("name", SeverityMinor, "table missing")
		f.names = map[string]string{}
	}
	f.readGeneric(data)
	tracer().Debugf("opened font %q with tables %v", f.names["full"], f.tags)
	return f, nil
}

func (f *Font) readHead(ld *opentype.Loader) {
	b, err := ld.RawTable(opentype.MustNewTag("head"))
	if err != nil {
		f.ic.add("head", SeverityCritical, "table missing")
		return
	}
	head, ok := DecodeHead(b)
	if !ok {
		f.ic.add("head", SeverityCritical, "table too small: %d bytes (need %d)", len(b), headTableSize)
		return
	}
	if head.MagicNumber != headMagic {
		f.ic.add("head", SeverityMinor, "unexpected magic number %#x", head.MagicNumber)
	}
	if head.UnitsPerEm == 0 {
		f.ic.add("head", SeverityCritical, "units per em is 0")
	}
	f.head = head
	f.tables.UnitsPerEm = sfnt.Units(head.UnitsPerEm)
}

func (f *Font) readHHea(ld *opentype.Loader) {
	b, err := ld.RawTable(opentype.MustNewTag("hhea"))
	if err != nil {
		f.ic.add("hhea", SeverityMajor, "table missing")
		return
	}
	hhea, ok := DecodeHHea(b)
	if !ok {
		f.ic.add("hhea", SeverityMajor, "table too small: %d bytes (need %d)", len(b), hheaTableSize)
		return
	}
	if hhea.Ascender == 0 && hhea.Descender == 0 {
		f.ic.add("hhea", SeverityMinor, "ascender and descender are 0")
	}
	f.tables.HHea = &hhea
}

func (f *Font) readOS2(ld *opentype.Loader) {
	b, err := ld.RawTable(opentype.MustNewTag("OS/2"))
	if err != nil {
		f.ic.add("OS/2", SeverityMinor, "table missing")
		return
	}
	os2, ok := DecodeOS2(b)
	if !ok {
		f.ic.add("OS/2", SeverityMajor, "table too small: %d bytes", len(b))
		return
	}
	if len(b) < os2TypoEnd {
		f.ic.add("OS/2", SeverityMinor, "truncated table without typographic metrics")
	}
	if os2.Version >= 2 && len(b) < os2V2Size {
		f.ic.add("OS/2", SeverityMinor, "version %d table too small for x-height: %d bytes", os2.Version, len(b))
	}
	f.tables.OS2 = &os2
}

// readGeneric sets the font-level ascender and descender, as reported by the
// SFNT parser of x/image. These are used only if neither hhea nor OS/2
// carry usable metrics.
func (f *Font) readGeneric(data []byte) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		f.ic.add("sfnt", SeverityMinor, "no generic metrics: %v", err)
		return
	}
	asc, desc, ok := GenericMetrics(sf)
	if !ok {
		f.ic.add("sfnt", SeverityMinor, "no generic metrics")
		return
	}
	f.tables.Ascender, f.tables.Descender = asc, desc
}

// GenericMetrics returns ascender and descender of a font in font units, as
// computed by the x/image SFNT parser. The descender is returned as a positive
// distance below the baseline, following x/image's convention.
func GenericMetrics(sf *sfnt.Font) (ascender, descender sfnt.Units, ok bool) {
	if sf == nil {
		return 0, 0, false
	}
	upem := sf.UnitsPerEm()
	if upem == 0 {
		return 0, 0, false
	}
	var buf sfnt.Buffer
	m, err := sf.Metrics(&buf, fixed.I(int(upem)), font.HintingNone)
	if err != nil {
		return 0, 0, false
	}
	return sfnt.Units(m.Ascent.Round()), sfnt.Units(m.Descent.Round()), true
}

// Tables returns the table-shaped metrics of the font.
func (f *Font) Tables() metrics.FontTables {
	return f.tables
}

// Metrics resolves the vertical metrics of the font. It returns false if the
// font has no valid units-per-em value.
func (f *Font) Metrics() (metrics.FontMetrics, bool) {
	return f.tables.Metrics()
}

// Head returns the decoded 'head' table.
func (f *Font) Head() HeadTableInfo {
	return f.head
}

// Names returns selected entries of the font's 'name' table, keyed by
// "family", "subfamily", "full", "version" and "postscript".
// Keys are missing for names not present in the font.
func (f *Font) Names() map[string]string {
	return f.names
}

// Family returns the font's family name, or the empty string.
func (f *Font) Family() string {
	return f.names["family"]
}

// TableTags returns the tags of all tables contained in the font.
func (f *Font) TableTags() []string {
	return f.tags
}

// Issues returns all issues encountered while decoding the font's tables.
func (f *Font) Issues() []TableIssue {
	return f.ic.issues
}

// CriticalIssues returns the issues which prevent metrics to be derived.
func (f *Font) CriticalIssues() []TableIssue {
	return f.ic.filter(SeverityCritical)
}
