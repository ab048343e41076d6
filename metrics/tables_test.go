package metrics

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHHeaTakesPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfit.metrics")
	defer teardown()
	//
	tables := FontTables{
		UnitsPerEm: 1000,
		Ascender:   600,
		Descender:  -100,
		HHea:       &HHeaMetrics{Ascender: 900, Descender: -300, LineGap: 100},
		OS2: &OS2Metrics{
			Version:      4,
			TypoAscender: 700, TypoDescender: -200, TypoLineGap: 0,
			XHeight: 480, CapHeight: 690, AvgCharWidth: 520,
		},
	}
	m, ok := tables.Metrics()
	require.True(t, ok)
	assert.Equal(t, SourceHHea, m.Source)
	h, _ := MetricHeight(&m, Overrides{})
	assert.Equal(t, 1.3, h, "expected metric height from hhea (900+300+100)/1000")
	assert.Equal(t, 480, int(m.XHeight), "x-height is always taken from OS/2")
	assert.Equal(t, 690, int(m.CapHeight))
	assert.Equal(t, 520, int(m.AvgCharWidth))
}

func TestOS2Fallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfit.metrics")
	defer teardown()
	//
	tables := FontTables{
		UnitsPerEm: 2048,
		HHea:       &HHeaMetrics{}, // present, but invalid
		OS2:        &OS2Metrics{TypoAscender: 1536, TypoDescender: -512, TypoLineGap: 205},
	}
	m, ok := tables.Metrics()
	require.True(t, ok)
	assert.Equal(t, SourceOS2, m.Source)
	assert.Equal(t, 1536, int(m.Ascender))
	assert.Equal(t, -512, int(m.Descender))
	assert.Equal(t, 205, int(m.LineGap))
}

func TestGenericFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfit.metrics")
	defer teardown()
	//
	tables := FontTables{UnitsPerEm: 1000, Ascender: 750, Descender: 250}
	m, ok := tables.Metrics()
	require.True(t, ok)
	assert.Equal(t, SourceGeneric, m.Source)
	assert.Equal(t, -250, int(m.Descender), "positive descender magnitude must be normalized")
	//
	empty, ok := FontTables{UnitsPerEm: 1000}.Metrics()
	require.True(t, ok, "missing tables are degenerate, not invalid")
	h, ok := MetricHeight(&empty, Overrides{})
	require.True(t, ok)
	assert.Equal(t, 0.0, h)
	assert.Equal(t, 0.0, ResolveLineHeight(Normal(), &empty, Overrides{}).Value())
}

func TestNormalizationAtBoundary(t *testing.T) {
	tables := FontTables{
		UnitsPerEm: 1000,
		HHea:       &HHeaMetrics{Ascender: 800, Descender: 200, LineGap: -50},
	}
	m, ok := tables.Metrics()
	require.True(t, ok)
	assert.Equal(t, -200, int(m.Descender))
	assert.Equal(t, 0, int(m.LineGap), "negative line gap is clamped")
	//
	_, ok = FontTables{UnitsPerEm: 0, HHea: &HHeaMetrics{Ascender: 1}}.Metrics()
	assert.False(t, ok)
}
