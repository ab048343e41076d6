package fontface

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/fontfit/fontstack"
	"github.com/npillmayer/fontfit/metrics"
	"golang.org/x/text/language"
)

// Rule creates a CSS @font-face rule for a font family. local lists the
// names for the src descriptor. Only overrides which are set produce a
// descriptor.
//
//	@font-face {
//	  font-family: "Arial fallback";
//	  src: local("Arial"), local("ArialMT");
//	  ascent-override: 90.5%;
//	}
func Rule(family string, local []string, ov metrics.Overrides) string {
	var b strings.Builder
	b.WriteString("@font-face {\n")
	fmt.Fprintf(&b, "  font-family: %s;\n", quote(family))
	if len(local) > 0 {
		src := make([]string, len(local))
		for i, name := range local {
			src[i] = "local(" + quote(name) + ")"
		}
		fmt.Fprintf(&b, "  src: %s;\n", strings.Join(src, ", "))
	}
	descriptor := func(name string, o metrics.Override) {
		if p := metrics.FormatPercent(o); p != "" {
			fmt.Fprintf(&b, "  %s: %s;\n", name, p)
		}
	}
	descriptor("ascent-override", ov.Ascent)
	descriptor("descent-override", ov.Descent)
	descriptor("line-gap-override", ov.LineGap)
	descriptor("size-adjust", ov.SizeAdjust)
	b.WriteString("}\n")
	return b.String()
}

// FallbackName is the family name under which the @font-face rule of a
// fallback font is declared for a language scope.
func FallbackName(family string, tag language.Tag) string {
	if tag == language.Und {
		return family + " fallback"
	}
	return family + " fallback " + tag.String()
}

// StackRules creates the @font-face rules for all fallback fonts of a stack,
// with the overrides in effect for a language, followed by a rule setting
// font-family (and line-height, if it resolves to a number) for the
// language. language.Und selects the default scopes.
func StackRules(s *fontstack.Stack, tag language.Tag) string {
	var b strings.Builder
	primary := s.Primary()
	if primary == nil {
		return ""
	}
	families := []string{quote(primary.Family)}
	for _, e := range s.Fallbacks() {
		local := e.Local
		if len(local) == 0 {
			local = []string{e.Family}
		}
		name := FallbackName(e.Family, tag)
		b.WriteString(Rule(name, local, e.OverridesFor(tag)))
		b.WriteString("\n")
		families = append(families, quote(name))
	}
	b.WriteString(selector(tag) + " {\n")
	fmt.Fprintf(&b, "  font-family: %s;\n", strings.Join(families, ", "))
	lh := metrics.ResolveLineHeight(s.LineHeight, primary.Metrics, primary.OverridesFor(tag))
	if !lh.IsNormal() {
		fmt.Fprintf(&b, "  line-height: %s;\n", formatNumber(lh.Value(), lineHeightPrecision))
	}
	b.WriteString("}\n")
	tracer().Debugf("generated %d @font-face rules for language %s", len(families)-1, tag)
	return b.String()
}

const lineHeightPrecision = 4

// formatNumber formats v with at most prec decimals.
func formatNumber(v float64, prec int) string {
	pow := math.Pow10(prec)
	return strconv.FormatFloat(math.Round(v*pow)/pow, 'f', -1, 64)
}

func selector(tag language.Tag) string {
	if tag == language.Und {
		return ":root"
	}
	return ":lang(" + tag.String() + ")"
}

// quote creates a CSS string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)
	return `"` + r.Replace(s) + `"`
}
