package fontstack

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/fontfit"
	"github.com/npillmayer/fontfit/metrics"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

// --- Test Suite Preparation ------------------------------------------------

type StackTestEnviron struct {
	suite.Suite
	goRegular *fontfit.Font
}

// listen for 'go test' command --> run test methods
func TestStackFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfit.stack")
	defer teardown()
	suite.Run(t, new(StackTestEnviron))
}

// run once, before test suite methods
func (env *StackTestEnviron) SetupSuite() {
	tracing.Select("fontfit.stack").SetTraceLevel(tracing.LevelInfo)
	f, err := fontfit.ParseFont(goregular.TTF)
	env.Require().NoError(err, "cannot parse Go Regular")
	env.goRegular = f
}

func (env *StackTestEnviron) stack(families ...string) *Stack {
	s := New()
	for _, fam := range families {
		env.Require().NoError(s.Add(Entry{Family: fam, System: true}))
	}
	return s
}

func families(s *Stack) string {
	var names []string
	for _, e := range s.Entries() {
		names = append(names, e.Family)
	}
	return strings.Join(names, ",")
}

// --- Tests -----------------------------------------------------------------

func (env *StackTestEnviron) TestAddAndDuplicates() {
	s := env.stack("A", "B")
	env.Equal(2, s.Len())
	env.Equal("A", s.Primary().Family)
	env.Len(s.Fallbacks(), 1)
	err := s.Add(Entry{Family: "A"})
	env.True(errors.Is(err, ErrDuplicateFamily), "expected duplicate family to be rejected")
	env.True(errors.Is(s.Add(Entry{}), ErrEmptyFamily))
	env.Equal(2, s.Len())
}

func (env *StackTestEnviron) TestSystemEntryHasNoMetrics() {
	s := New()
	m := env.goRegular.Metrics()
	env.Require().NotNil(m)
	env.Require().NoError(s.Add(Entry{Family: "Arial", System: true, Metrics: m}))
	e, ok := s.Entry("Arial")
	env.Require().True(ok)
	env.Nil(e.Metrics)
}

func (env *StackTestEnviron) TestEntryFor() {
	e := EntryFor(env.goRegular)
	env.Equal(env.goRegular.Family, e.Family)
	env.False(e.System)
	env.NotNil(e.Metrics)
	env.Equal([]string{env.goRegular.Fontname}, e.Local)
	sys := EntryFor(fontfit.SystemFont("Georgia"))
	env.True(sys.System)
	env.Nil(sys.Metrics)
}

func (env *StackTestEnviron) TestMove() {
	s := env.stack("A", "B", "C", "D")
	env.Require().NoError(s.Move(0, 2))
	env.Equal("B,C,A,D", families(s))
	env.Require().NoError(s.Move(3, 0))
	env.Equal("D,B,C,A", families(s))
	env.Require().NoError(s.Move(1, 1))
	env.Equal("D,B,C,A", families(s))
	err := s.Move(0, 4)
	env.True(errors.Is(err, ErrIndexOutOfRange))
	env.True(errors.Is(s.Move(-1, 0), ErrIndexOutOfRange))
	env.Equal("D,B,C,A", families(s), "failed move must not change the stack")
}

func (env *StackTestEnviron) TestRemove() {
	s := env.stack("A", "B", "C")
	env.Require().NoError(s.Remove("B"))
	env.Equal("A,C", families(s))
	env.True(errors.Is(s.Remove("B"), ErrUnknownFamily))
}

func (env *StackTestEnviron) TestLanguageScopes() {
	s := env.stack("Primary", "Fallback")
	def := metrics.Overrides{Ascent: metrics.Percent(90)}
	hant := metrics.Overrides{Ascent: metrics.Percent(110)}
	ja := metrics.Overrides{LineGap: metrics.Percent(10)}
	env.Require().NoError(s.SetOverrides("Fallback", language.Und, def))
	env.Require().NoError(s.SetOverrides("Fallback", language.MustParse("zh-Hant"), hant))
	env.Require().NoError(s.SetOverrides("Fallback", language.Japanese, ja))
	//
	ov, err := s.OverridesFor("Fallback", language.MustParse("zh-Hant-TW"))
	env.Require().NoError(err)
	env.Equal(hant, ov, "expected zh-Hant-TW to use zh-Hant scope")
	ov, _ = s.OverridesFor("Fallback", language.MustParse("ja-JP"))
	env.Equal(ja, ov, "expected ja-JP to use ja scope")
	ov, _ = s.OverridesFor("Fallback", language.German)
	env.Equal(def, ov, "expected unmatched language to use default scope")
	ov, _ = s.OverridesFor("Fallback", language.Und)
	env.Equal(def, ov)
	//
	env.Equal([]language.Tag{language.Japanese, language.MustParse("zh-Hant")}, s.Languages())
	env.Require().NoError(s.ClearOverrides("Fallback", language.Japanese))
	ov, _ = s.OverridesFor("Fallback", language.Japanese)
	env.Equal(def, ov)
	env.Require().NoError(s.ClearOverrides("Fallback", language.Und))
	ov, _ = s.OverridesFor("Fallback", language.German)
	env.True(ov.IsZero())
	_, err = s.OverridesFor("Nope", language.Und)
	env.True(errors.Is(err, ErrUnknownFamily))
}

func (env *StackTestEnviron) TestLineHeightFor() {
	s := New()
	env.Require().NoError(s.Add(Entry{Family: "Sys", System: true}))
	env.Require().NoError(s.Add(Entry{
		Family:  "Font",
		Metrics: &metrics.FontMetrics{UnitsPerEm: 1000, Ascender: 800, Descender: -200},
	}))
	lh, err := s.LineHeightFor("Font", language.Und)
	env.Require().NoError(err)
	env.InDelta(1.0, lh.Value(), 1e-12)
	lh, _ = s.LineHeightFor("Sys", language.Und)
	env.True(lh.IsNormal(), "expected line-height normal for system font")
	//
	env.Require().NoError(s.SetOverrides("Font", language.Korean, metrics.Overrides{LineGap: metrics.Percent(50)}))
	lh, _ = s.LineHeightFor("Font", language.MustParse("ko-KR"))
	env.InDelta(1.5, lh.Value(), 1e-12)
	s.LineHeight = metrics.Number(1.2)
	lh, _ = s.LineHeightFor("Font", language.Und)
	env.InDelta(1.2, lh.Value(), 1e-12, "plain numeric line-height must be kept")
}

func (env *StackTestEnviron) TestJSONRoundtrip() {
	s := New()
	s.LineHeight = metrics.Number(1.25)
	env.Require().NoError(s.Add(EntryFor(env.goRegular)))
	env.Require().NoError(s.Add(Entry{Family: "Arial", System: true, Local: []string{"Arial", "ArialMT"}}))
	env.Require().NoError(s.SetOverrides("Arial", language.Und, metrics.Overrides{
		Ascent:     metrics.Percent(90.5),
		SizeAdjust: metrics.Fraction(1.0512),
	}))
	env.Require().NoError(s.SetOverrides("Arial", language.Japanese, metrics.Overrides{Descent: metrics.Percent(25)}))
	var buf bytes.Buffer
	env.Require().NoError(s.Export(&buf))
	env.Contains(buf.String(), `"version": 1`)
	env.Contains(buf.String(), `"ascent": "90.5%"`)
	env.Contains(buf.String(), `"sizeAdjust": "105.12%"`)
	//
	t, err := Import(&buf)
	env.Require().NoError(err)
	env.Equal(families(s), families(t))
	env.InDelta(1.25, t.LineHeight.Value(), 1e-12)
	prim := t.Primary()
	env.Equal(*s.Primary().Metrics, *prim.Metrics, "metrics must survive roundtrip")
	ov, _ := t.OverridesFor("Arial", language.Und)
	asc, _ := ov.Ascent.Unwrap()
	env.InDelta(0.905, asc, 1e-9)
	env.True(ov.Descent.IsNone())
	ov, _ = t.OverridesFor("Arial", language.MustParse("ja-JP"))
	desc, _ := ov.Descent.Unwrap()
	env.InDelta(0.25, desc, 1e-9)
}

func (env *StackTestEnviron) TestExportInfiniteLineHeight() {
	s := env.stack("A")
	s.LineHeight = metrics.ParseLineHeight("inf")
	env.True(s.LineHeight.IsNormal(), "infinite line-height input is normal")
	var buf bytes.Buffer
	env.Require().NoError(s.Export(&buf))
	env.Contains(buf.String(), `"lineHeight": "normal"`)
	t, err := Import(&buf)
	env.Require().NoError(err)
	env.True(t.LineHeight.IsNormal())
}

func (env *StackTestEnviron) TestImportNormalAndErrors() {
	t, err := Import(strings.NewReader(`{"version":1,"lineHeight":"normal","fonts":[{"family":"A","system":true}]}`))
	env.Require().NoError(err)
	env.True(t.LineHeight.IsNormal())
	env.Equal(1, t.Len())
	_, err = Import(strings.NewReader(`{"version":2,"lineHeight":"normal","fonts":[]}`))
	env.True(errors.Is(err, ErrUnsupportedVersion))
	_, err = Import(strings.NewReader(`{"version":1,"fonts":[{"family":"A","overrides":{"ascent":"-5%"}}]}`))
	env.True(errors.Is(err, metrics.ErrInvalidOverride))
	_, err = Import(strings.NewReader(`{"version":1,"fonts":[{"family":"A"},{"family":"A"}]}`))
	env.True(errors.Is(err, ErrDuplicateFamily))
	t, err = Import(strings.NewReader(`{"version":1,"lineHeight":"1.5","fonts":[]}`))
	env.Require().NoError(err)
	env.Equal(1.5, t.LineHeight.Value(), "numeric strings are accepted")
	t, err = Import(strings.NewReader(`{"version":1,"lineHeight":"tall","fonts":[]}`))
	env.Require().NoError(err)
	env.True(t.LineHeight.IsNormal(), "unparsable line-height degrades to normal")
	_, err = Import(strings.NewReader(`not json`))
	env.Error(err)
}
