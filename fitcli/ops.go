package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/fontfit"
	"github.com/npillmayer/fontfit/fontface"
	"github.com/npillmayer/fontfit/fontstack"
	"github.com/npillmayer/fontfit/metrics"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
)

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Stack files ------------------------------------------------------

func loadOp(intp *Intp, op *Op) (error, bool) {
	if err := op.requireArgs(1, "<stack.json>"); err != nil {
		return err, false
	}
	return intp.loadStack(op.arg(0)), false
}

func (intp *Intp) loadStack(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	s, err := fontstack.Import(f)
	if err != nil {
		return err
	}
	intp.stack, intp.file = s, path
	tracer().Infof("loaded stack from %s", path)
	return nil
}

func saveOp(intp *Intp, op *Op) (error, bool) {
	path := op.arg(0)
	if path == "" {
		path = intp.file
	}
	if path == "" {
		return op.requireArgs(1, "<stack.json>"), false
	}
	f, err := os.Create(path)
	if err != nil {
		return err, false
	}
	if err := intp.stack.Export(f); err != nil {
		f.Close()
		return err, false
	}
	if err := f.Close(); err != nil {
		return err, false
	}
	intp.file = path
	pterm.Info.Printf("saved stack to %s\n", path)
	return nil, false
}

// --- Stack editing ----------------------------------------------------

func fontOp(intp *Intp, op *Op) (error, bool) {
	if err := op.requireArgs(1, "<font file>"); err != nil {
		return err, false
	}
	return intp.addFontFile(op.arg(0)), false
}

func (intp *Intp) addFontFile(path string) error {
	f, err := fontfit.LoadFont(path)
	if err != nil {
		return err
	}
	if f.Metrics() == nil {
		pterm.Warning.Printf("font %s has no usable metrics\n", f.Fontname)
	}
	for _, issue := range f.Query().CriticalIssues() {
		pterm.Warning.Println(issue.Error())
	}
	return intp.stack.Add(fontstack.EntryFor(f))
}

func systemOp(intp *Intp, op *Op) (error, bool) {
	if err := op.requireArgs(1, "<family>"); err != nil {
		return err, false
	}
	family := strings.Join(op.args, " ")
	return intp.stack.Add(fontstack.EntryFor(fontfit.SystemFont(family))), false
}

func removeOp(intp *Intp, op *Op) (error, bool) {
	if err := op.requireArgs(1, "<family>"); err != nil {
		return err, false
	}
	return intp.stack.Remove(op.arg(0)), false
}

func moveOp(intp *Intp, op *Op) (error, bool) {
	if err := op.requireArgs(2, "<from> <to>"); err != nil {
		return err, false
	}
	from, err := strconv.Atoi(op.arg(0))
	if err != nil {
		return fmt.Errorf("invalid position %q", op.arg(0)), false
	}
	to, err := strconv.Atoi(op.arg(1))
	if err != nil {
		return fmt.Errorf("invalid position %q", op.arg(1)), false
	}
	return intp.stack.Move(from, to), false
}

// langOp selects the language scope for override edits. Without argument,
// it lists the language scopes of the stack.
func langOp(intp *Intp, op *Op) (error, bool) {
	arg := op.arg(0)
	if arg == "" {
		intp.printLanguages()
		return nil, false
	}
	if arg == "-" || strings.EqualFold(arg, "default") {
		intp.lang = language.Und
		return nil, false
	}
	tag, err := language.Parse(arg)
	if err != nil {
		return fmt.Errorf("invalid language tag %q: %w", arg, err), false
	}
	intp.lang = tag
	pterm.Info.Printf("editing overrides for %s\n", languageName(tag))
	return nil, false
}

// overrideOp sets one of ascent, descent, line-gap or size-adjust for a font
// family in the current language scope. Value '-' clears the override.
func overrideOp(intp *Intp, op *Op) (error, bool) {
	if err := op.requireArgs(2, "<family> <value|->"); err != nil {
		return err, false
	}
	family, value := op.arg(0), op.arg(1)
	if value == "-" {
		value = ""
	}
	o, err := metrics.ParseOverride(value)
	if err != nil {
		return err, false
	}
	e, ok := intp.stack.Entry(family)
	if !ok {
		return fmt.Errorf("%w: %s", fontstack.ErrUnknownFamily, family), false
	}
	ov := e.Overrides
	if intp.lang != language.Und {
		ov = e.Languages[intp.lang]
	}
	switch op.code {
	case ASCENT:
		ov.Ascent = o
	case DESCENT:
		ov.Descent = o
	case LINEGAP:
		ov.LineGap = o
	case SIZE:
		ov.SizeAdjust = o
	}
	if ov.IsZero() && intp.lang != language.Und {
		return intp.stack.ClearOverrides(family, intp.lang), false
	}
	return intp.stack.SetOverrides(family, intp.lang, ov), false
}

// suggestOp computes overrides for a fallback font to match the primary font
// and sets them in the current language scope.
func suggestOp(intp *Intp, op *Op) (error, bool) {
	if err := op.requireArgs(1, "<family>"); err != nil {
		return err, false
	}
	primary := intp.stack.Primary()
	if primary == nil || primary.Metrics == nil {
		return fontfit.ErrNoMetrics, false
	}
	e, ok := intp.stack.Entry(op.arg(0))
	if !ok {
		return fmt.Errorf("%w: %s", fontstack.ErrUnknownFamily, op.arg(0)), false
	}
	ov := fontface.Suggest(primary.Metrics, e.Metrics)
	pterm.Info.Printf("suggested %v\n", ov)
	return intp.stack.SetOverrides(e.Family, intp.lang, ov), false
}

func lineHeightOp(intp *Intp, op *Op) (error, bool) {
	if err := op.requireArgs(1, "<normal|number>"); err != nil {
		return err, false
	}
	intp.stack.LineHeight = metrics.ParseLineHeight(op.arg(0))
	return nil, false
}

func pxOp(intp *Intp, op *Op) (error, bool) {
	if err := op.requireArgs(1, "<font size>"); err != nil {
		return err, false
	}
	px, err := strconv.ParseFloat(strings.TrimSuffix(op.arg(0), "px"), 64)
	if err != nil || px <= 0 {
		return fmt.Errorf("invalid font size %q", op.arg(0)), false
	}
	intp.px = px
	return nil, false
}

// --- Output -----------------------------------------------------------

func showOp(intp *Intp, op *Op) (error, bool) {
	intp.printStack()
	return nil, false
}

func guidesOp(intp *Intp, op *Op) (error, bool) {
	if family := op.arg(0); family != "" {
		e, ok := intp.stack.Entry(family)
		if !ok {
			return fmt.Errorf("%w: %s", fontstack.ErrUnknownFamily, family), false
		}
		intp.printGuides([]*fontstack.Entry{e})
		return nil, false
	}
	intp.printGuides(intp.stack.Entries())
	return nil, false
}

func cssOp(intp *Intp, op *Op) (error, bool) {
	if intp.stack.Len() == 0 {
		pterm.Info.Println("stack is empty")
		return nil, false
	}
	pterm.Println(fontface.StackRules(intp.stack, intp.lang))
	return nil, false
}
