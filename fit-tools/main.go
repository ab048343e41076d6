package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontfit"
	"github.com/npillmayer/fontfit/metrics"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("fit-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for fitting fallback fonts to the vertical metrics of web fonts.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("metrics").
		SetDescription("Print the vertical metrics of a font and the table they have been taken from.").
		SetShortDescription("font metrics").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("errors,e", "print table issues", commando.Bool, nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runMetricsCommand)

	commando.
		Register("lineheight").
		SetDescription("Resolve a CSS line-height for a font, with optional @font-face metric overrides.").
		SetShortDescription("resolve line-height").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("lineheight", "CSS line-height: normal or a number", "normal").
		AddFlag("ascent,a", "ascent-override (e.g. 90% or 0.9)", commando.String, "-").
		AddFlag("descent,d", "descent-override", commando.String, "-").
		AddFlag("linegap,g", "line-gap-override", commando.String, "-").
		AddFlag("size,s", "size-adjust", commando.String, "-").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runLineHeightCommand)

	commando.
		Register("guides").
		SetDescription("Compute the positions of baseline, x-height, cap-height, ascent and descent in a line box.").
		SetShortDescription("alignment guides").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("lineheight", "CSS line-height: normal or a number", "normal").
		AddFlag("px,p", "font size in CSS pixels", commando.Int, 16).
		AddFlag("ascent,a", "ascent-override (e.g. 90% or 0.9)", commando.String, "-").
		AddFlag("descent,d", "descent-override", commando.String, "-").
		AddFlag("linegap,g", "line-gap-override", commando.String, "-").
		AddFlag("size,s", "size-adjust", commando.String, "-").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runGuidesCommand)

	commando.
		Register("suggest").
		SetDescription("Suggest @font-face overrides for a fallback font to match a primary font.").
		SetShortDescription("suggest overrides").
		AddArgument("primary", "OpenType font file path of the web font", "").
		AddArgument("fallback", "OpenType font file path of the fallback font", "").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runSuggestCommand)

	commando.
		Register("css").
		SetDescription("Print @font-face rules for a font stack saved as JSON.").
		SetShortDescription("stack to CSS").
		AddArgument("stack", "font stack JSON file", "").
		AddFlag("lang,l", "language tag (BCP 47, e.g. ja, zh-Hant)", commando.String, "-").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runCSSCommand)

	commando.Parse(nil)
}

// setupTracing routes the library's tracing to the Go log package.
func setupTracing(flags map[string]commando.FlagValue) {
	level := "Error"
	if f, ok := flags["verbose"]; ok && mustFlagBool(f, "verbose") {
		level = "Debug"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.fontfit":         level,
		"trace.fontfit.metrics": level,
		"trace.fontfit.query":   level,
		"trace.fontfit.stack":   level,
		"trace.fontfit.face":    level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func mustLoadFont(path string) *fontfit.Font {
	path = strings.TrimSpace(path)
	if path == "" {
		fatalf("font path is required")
	}
	f, err := fontfit.LoadFont(path)
	if err != nil {
		fatalf("cannot load font: %v", err)
	}
	return f
}

// parseOverrideFlags reads the override flags common to lineheight and guides.
func parseOverrideFlags(flags map[string]commando.FlagValue) (metrics.Overrides, error) {
	var ov metrics.Overrides
	for _, o := range []struct {
		name   string
		target *metrics.Override
	}{
		{"ascent", &ov.Ascent},
		{"descent", &ov.Descent},
		{"linegap", &ov.LineGap},
		{"size", &ov.SizeAdjust},
	} {
		s, err := flags[o.name].GetString()
		if err != nil {
			return ov, fmt.Errorf("invalid --%s flag: %w", o.name, err)
		}
		if *o.target, err = parseOverrideArg(s); err != nil {
			return ov, fmt.Errorf("--%s: %w", o.name, err)
		}
	}
	return ov, nil
}

func parseOverrideArg(s string) (metrics.Override, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		s = ""
	}
	return metrics.ParseOverride(s)
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "fit-tools: "+format+"\n", args...)
	os.Exit(1)
}
