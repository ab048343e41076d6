package main

import (
	"fmt"

	"github.com/npillmayer/fontfit/metrics"
	"github.com/thatisuday/commando"
)

func runLineHeightCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(args["font"].Value)
	spec := metrics.ParseLineHeight(args["lineheight"].Value)
	ov, err := parseOverrideFlags(flags)
	if err != nil {
		fatalf("%v", err)
	}
	lh := f.LineHeight(spec, ov)
	fmt.Printf("Font: %s\n", f.Fontname)
	fmt.Printf("Requested: %s\n", spec)
	fmt.Printf("Overrides: %s\n", ov)
	if h, ok := metrics.MetricHeight(f.Metrics(), ov); ok {
		fmt.Printf("Metric height: %.4f\n", h)
	} else {
		fmt.Println("Metric height: unavailable")
	}
	fmt.Printf("line-height: %s\n", lh)
}

func runGuidesCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(args["font"].Value)
	spec := metrics.ParseLineHeight(args["lineheight"].Value)
	ov, err := parseOverrideFlags(flags)
	if err != nil {
		fatalf("%v", err)
	}
	px := mustFlagInt(flags["px"], "px")
	if px <= 0 {
		fatalf("--px must be > 0")
	}
	g, lh, ok := f.Guides(spec, float64(px), ov)
	if !ok {
		fatalf("cannot compute guides: font %s has no usable metrics", f.Fontname)
	}
	fmt.Printf("Font: %s, %dpx, line-height %s (requested %s)\n", f.Fontname, px, lh, spec)
	fmt.Printf("%-10s %8s\n", "guide", "px")
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"ascent", g.Ascent},
		{"cap", g.CapHeight},
		{"x-height", g.XHeight},
		{"baseline", g.Baseline},
		{"descent", g.Descent},
	} {
		fmt.Printf("%-10s %8.2f\n", row.name, row.value)
	}
	fmt.Printf("tile: %.0f × %.2f px\n", g.TileWidth, g.TileHeight)
}
