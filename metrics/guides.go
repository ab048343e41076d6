package metrics

// GuideTileWidth is the width in pixels of one tile of a repeating
// background carrying the alignment guides.
const GuideTileWidth = 16.0

// GuideOffsets are vertical offsets in CSS pixels, measured from the top of
// a line box, of the alignment guides for one line of text.
type GuideOffsets struct {
	Baseline   float64
	XHeight    float64 // top of lowercase letters
	CapHeight  float64 // top of capital letters
	Ascent     float64
	Descent    float64
	TileHeight float64 // height of one line box
	TileWidth  float64
}

// ComputeGuideOffsets computes the guide positions within a line box of
// height lineHeightEm × fontSizePx.
//
// Leading is distributed as browsers do: the difference between line-height
// and content height (ascender − descender + line gap) is split in half above
// and below the content area. The baseline sits at
//
//	halfLeading + ascender + lineGap/2
//
// Metrics are resolved exactly like [ResolveLineHeight] does, so guides
// computed with a line-height obtained from ResolveLineHeight match the
// rendered text.
//
// ComputeGuideOffsets returns false if metrics are unavailable or if the font
// size is not positive.
func ComputeGuideOffsets(m *FontMetrics, fontSizePx, lineHeightEm float64, ov Overrides) (GuideOffsets, bool) {
	r, ok := Apply(m, ov)
	if !ok || !isFinite(fontSizePx) || fontSizePx <= 0 || !isFinite(lineHeightEm) {
		return GuideOffsets{}, false
	}
	scale := r.UnitsPerEm / fontSizePx // font units per pixel
	lineHeight := r.UnitsPerEm * lineHeightEm
	halfLeading := (lineHeight - r.ContentHeight()) / 2
	baseline := halfLeading + r.Ascender + r.LineGap/2
	return GuideOffsets{
		Baseline:   baseline / scale,
		XHeight:    (baseline - r.XHeight) / scale,
		CapHeight:  (baseline - r.CapHeight) / scale,
		Ascent:     (baseline - r.Ascender) / scale,
		Descent:    (baseline - r.Descender) / scale,
		TileHeight: lineHeight / scale,
		TileWidth:  GuideTileWidth,
	}, true
}

// Guides resolves the line-height for spec and computes the guide offsets for
// it in one step. It returns the resolved line-height as well.
// If the line-height resolves to `normal`, no guides can be computed and
// Guides returns false.
func Guides(spec LineHeight, m *FontMetrics, fontSizePx float64, ov Overrides) (GuideOffsets, LineHeight, bool) {
	lh := ResolveLineHeight(spec, m, ov)
	if lh.IsNormal() {
		return GuideOffsets{}, lh, false
	}
	g, ok := ComputeGuideOffsets(m, fontSizePx, lh.Value(), ov)
	return g, lh, ok
}
