package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/fontfit/metrics"
	"github.com/thatisuday/commando"
)

func runMetricsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(args["font"].Value)
	q := f.Query()

	fmt.Printf("Path: %s\n", f.Filepath)
	names := q.Names()
	if family := names["family"]; family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if sub := names["subfamily"]; sub != "" {
		fmt.Printf("Subfamily: %s\n", sub)
	}
	if version := names["version"]; version != "" {
		fmt.Printf("Version: %s\n", version)
	}
	tags := append([]string(nil), q.TableTags()...)
	sort.Strings(tags)
	fmt.Printf("Tables (%d): %s\n", len(tags), strings.Join(tags, " "))

	t := q.Tables()
	if t.HHea != nil {
		fmt.Printf("hhea: ascender=%d descender=%d lineGap=%d\n", t.HHea.Ascender, t.HHea.Descender, t.HHea.LineGap)
	} else {
		fmt.Println("hhea: missing")
	}
	if t.OS2 != nil {
		fmt.Printf("OS/2: version=%d typoAscender=%d typoDescender=%d typoLineGap=%d useTypo=%v\n",
			t.OS2.Version, t.OS2.TypoAscender, t.OS2.TypoDescender, t.OS2.TypoLineGap, t.OS2.UseTypoMetrics)
		fmt.Printf("OS/2: xHeight=%d capHeight=%d avgCharWidth=%d\n", t.OS2.XHeight, t.OS2.CapHeight, t.OS2.AvgCharWidth)
	} else {
		fmt.Println("OS/2: missing")
	}
	fmt.Printf("generic: ascender=%d descender=%d\n", t.Ascender, t.Descender)

	if m := f.Metrics(); m != nil {
		upem := float64(m.UnitsPerEm)
		fmt.Printf("Metrics (from %s): upem=%d ascender=%d descender=%d lineGap=%d\n",
			m.Source, m.UnitsPerEm, m.Ascender, m.Descender, m.LineGap)
		fmt.Printf("In em: ascent=%.4f descent=%.4f lineGap=%.4f x-height=%.4f cap-height=%.4f\n",
			float64(m.Ascender)/upem, float64(-m.Descender)/upem, float64(m.LineGap)/upem,
			float64(m.XHeight)/upem, float64(m.CapHeight)/upem)
		fmt.Printf("line-height normal: %s\n", f.LineHeight(metrics.Normal(), metrics.Overrides{}))
	} else {
		fmt.Println("Metrics: unavailable")
	}

	issues := f.Issues()
	crit := q.CriticalIssues()
	fmt.Printf("Issues: total=%d critical=%d\n", len(issues), len(crit))
	if mustFlagBool(flags["errors"], "errors") {
		for _, issue := range issues {
			fmt.Println(issue.Error())
		}
	}
}
