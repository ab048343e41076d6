package fontquery

import (
	"encoding/binary"
	"sort"
	"testing"

	"github.com/npillmayer/fontfit/metrics"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Test Suite Preparation ------------------------------------------------

type QueryTestEnviron struct {
	suite.Suite
	goRegular *Font
}

// listen for 'go test' command --> run test methods
func TestQueryFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfit.query")
	defer teardown()
	suite.Run(t, new(QueryTestEnviron))
}

// run once, before test suite methods
func (env *QueryTestEnviron) SetupSuite() {
	tracing.Select("fontfit.query").SetTraceLevel(tracing.LevelError)
	f, err := Open(goregular.TTF)
	env.Require().NoError(err, "cannot open Go Regular")
	env.goRegular = f
	tracing.Select("fontfit.query").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *QueryTestEnviron) TestGoRegularMetrics() {
	f := env.goRegular
	env.Equal(uint32(headMagic), f.Head().MagicNumber, "expected OpenType head magic number")
	env.Require().NotNil(f.Tables().HHea, "expected Go Regular to have table hhea")
	env.Require().NotNil(f.Tables().OS2, "expected Go Regular to have table OS/2")
	m, ok := f.Metrics()
	env.Require().True(ok)
	env.Equal(metrics.SourceHHea, m.Source)
	env.Equal(f.Tables().HHea.Ascender, m.Ascender)
	env.Greater(int(m.UnitsPerEm), 0)
	env.Greater(int(m.Ascender), 0)
	env.Less(int(m.Descender), 0)
	env.Empty(f.CriticalIssues())
}

func (env *QueryTestEnviron) TestGoRegularNames() {
	env.Contains(env.goRegular.Family(), "Go", "expected font family name of Go Regular")
	env.NotEmpty(env.goRegular.Names()["full"])
}

func (env *QueryTestEnviron) TestGoRegularTables() {
	tags := env.goRegular.TableTags()
	for _, required := range []string{"head", "hhea", "OS/2", "name"} {
		env.Contains(tags, required, "expected test font to contain table %s", required)
	}
}

func (env *QueryTestEnviron) TestGenericMetrics() {
	asc, desc := env.goRegular.Tables().Ascender, env.goRegular.Tables().Descender
	env.Greater(int(asc), 0, "expected positive generic ascender")
	env.Greater(int(desc), 0, "expected x/image to report descender as positive distance")
}

func (env *QueryTestEnviron) TestGarbage() {
	_, err := Open([]byte("this is not a font"))
	env.Error(err)
}

// --- Decoder tests ---------------------------------------------------------

func TestDecodeHHea(t *testing.T) {
	b := make([]byte, hheaTableSize)
	put16(b, 4, 0x0320) // 800
	put16(b, 6, 0xFF38) // -200
	put16(b, 8, 90)     // line gap
	hhea, ok := DecodeHHea(b)
	if !ok {
		t.Fatal("expected hhea to decode")
	}
	if hhea.Ascender != 800 || hhea.Descender != -200 || hhea.LineGap != 90 {
		t.Errorf("unexpected hhea metrics %+v", hhea)
	}
	if _, ok := DecodeHHea(b[:20]); ok {
		t.Errorf("expected short hhea to be rejected")
	}
}

func TestDecodeOS2(t *testing.T) {
	b := os2Table(4, 750, -250, 100, 520, 700)
	os2, ok := DecodeOS2(b)
	if !ok {
		t.Fatal("expected OS/2 to decode")
	}
	want := metrics.OS2Metrics{
		Version: 4, AvgCharWidth: 480,
		TypoAscender: 750, TypoDescender: -250, TypoLineGap: 100,
		XHeight: 520, CapHeight: 700, UseTypoMetrics: true,
	}
	if os2 != want {
		t.Errorf("OS/2 = %+v, want %+v", os2, want)
	}
	// version 1 has no x-height
	v1, _ := DecodeOS2(os2Table(1, 750, -250, 100, 520, 700))
	if v1.XHeight != 0 || v1.CapHeight != 0 {
		t.Errorf("expected no x-height for OS/2 version 1, got %+v", v1)
	}
	// truncated Apple-style version 0 table
	v0, ok := DecodeOS2(b[:68])
	if !ok || v0.TypoAscender != 0 || v0.AvgCharWidth != 480 {
		t.Errorf("unexpected truncated OS/2 decoding %+v", v0)
	}
	if _, ok := DecodeOS2(b[:2]); ok {
		t.Errorf("expected tiny OS/2 to be rejected")
	}
}

func TestOpenSynthetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfit.query")
	defer teardown()
	//
	head := make([]byte, headTableSize)
	binary.BigEndian.PutUint32(head[12:], headMagic)
	put16(head, 18, 1000)
	hhea := make([]byte, hheaTableSize) // all zero: present, but invalid
	font := sfntBinary(map[string][]byte{
		"head": head,
		"hhea": hhea,
		"OS/2": os2Table(4, 700, -300, 0, 450, 650),
	})
	f, err := Open(font)
	if err != nil {
		t.Fatalf("cannot open synthetic font: %v", err)
	}
	m, ok := f.Metrics()
	if !ok {
		t.Fatalf("expected metrics for synthetic font")
	}
	if m.Source != metrics.SourceOS2 || m.Ascender != 700 || m.Descender != -300 {
		t.Errorf("expected OS/2 fallback metrics, got %v", m)
	}
	if len(f.CriticalIssues()) != 0 {
		t.Errorf("unexpected critical issues %v", f.CriticalIssues())
	}
	if len(f.Issues()) == 0 {
		t.Errorf("expected issues for missing name table and zero hhea")
	}
	//
	put16(head, 18, 0)
	f, err = Open(sfntBinary(map[string][]byte{"head": head}))
	if err != nil {
		t.Fatalf("cannot open synthetic font: %v", err)
	}
	if _, ok := f.Metrics(); ok {
		t.Errorf("expected units per em 0 to make metrics unavailable")
	}
	if len(f.CriticalIssues()) == 0 {
		t.Errorf("expected critical issue for units per em 0")
	}
}

// --- Helpers ----------------------------------------------------------

func put16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:], v)
}

func os2Table(version uint16, asc, desc, gap, xh, caph int16) []byte {
	b := make([]byte, os2V2Size)
	put16(b, 0, version)
	put16(b, 2, 480)
	put16(b, 62, 1<<7) // USE_TYPO_METRICS
	put16(b, 68, uint16(asc))
	put16(b, 70, uint16(desc))
	put16(b, 72, uint16(gap))
	put16(b, 86, uint16(xh))
	put16(b, 88, uint16(caph))
	return b
}

// sfntBinary assembles a minimal TrueType container holding the given tables.
// Checksums are left 0.
func sfntBinary(tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	headerSize := 12 + 16*len(tags)
	out := make([]byte, headerSize)
	binary.BigEndian.PutUint32(out[0:], 0x00010000)
	put16(out, 4, uint16(len(tags)))
	for i, tag := range tags {
		data := tables[tag]
		rec := out[12+16*i:]
		copy(rec[0:4], tag)
		binary.BigEndian.PutUint32(rec[8:], uint32(len(out)))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(data)))
		out = append(out, data...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	return out
}
