package main

import (
	"fmt"

	"github.com/npillmayer/fontfit/fontstack"
	"github.com/npillmayer/fontfit/metrics"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// printStack prints the fonts of the stack, with the overrides and the
// resolved line-height for the current language scope.
func (intp *Intp) printStack() {
	s := intp.stack
	if s.Len() == 0 {
		pterm.Info.Println("stack is empty, add fonts with 'font' or 'system'")
		return
	}
	data := [][]string{
		{"#", "Family", "Source", "Ascent", "Descent", "Line Gap", "Overrides", "Line-Height"},
	}
	for i, e := range s.Entries() {
		ov := e.OverridesFor(intp.lang)
		lh := metrics.ResolveLineHeight(s.LineHeight, e.Metrics, ov)
		row := []string{fmt.Sprintf("%d", i), e.Family}
		if e.Metrics == nil {
			row = append(row, "system", "-", "-", "-")
		} else {
			upem := float64(e.Metrics.UnitsPerEm)
			row = append(row,
				e.Metrics.Source.String(),
				formatEm(float64(e.Metrics.Ascender)/upem),
				formatEm(float64(-e.Metrics.Descender)/upem),
				formatEm(float64(e.Metrics.LineGap)/upem),
			)
		}
		row = append(row, ov.String(), lh.String())
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printGuides prints the alignment guides of stack entries at the current
// font size.
func (intp *Intp) printGuides(entries []*fontstack.Entry) {
	data := [][]string{
		{"Family", "Line-Height", "Ascent", "Cap", "x-Height", "Baseline", "Descent", "Tile"},
	}
	for _, e := range entries {
		g, lh, ok := metrics.Guides(intp.stack.LineHeight, e.Metrics, intp.px, e.OverridesFor(intp.lang))
		if !ok {
			data = append(data, []string{e.Family, lh.String(), "-", "-", "-", "-", "-", "-"})
			continue
		}
		data = append(data, []string{
			e.Family,
			lh.String(),
			formatPx(g.Ascent),
			formatPx(g.CapHeight),
			formatPx(g.XHeight),
			formatPx(g.Baseline),
			formatPx(g.Descent),
			fmt.Sprintf("%.0f×%s", g.TileWidth, formatPx(g.TileHeight)),
		})
	}
	pterm.Printf("Guides at %gpx, offsets from the top of the line box\n", intp.px)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printLanguages lists the language scopes configured in the stack.
func (intp *Intp) printLanguages() {
	tags := intp.stack.Languages()
	if len(tags) == 0 {
		pterm.Info.Println("no language scopes, set one with 'lang <tag>'")
		return
	}
	data := [][]string{{"Tag", "Language", "Current"}}
	for _, tag := range tags {
		current := ""
		if tag == intp.lang {
			current = "*"
		}
		data = append(data, []string{tag.String(), languageName(tag), current})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func languageName(tag language.Tag) string {
	if tag == language.Und {
		return "default"
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return tag.String()
}

func formatEm(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func formatPx(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
