package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg(0))
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "ascent", "descent", "linegap", "size", "override", "overrides":
		pterm.Info.Println("Metric overrides")
		pterm.Println(`
	ascent  <family> <value>    ascent-override
	descent <family> <value>    descent-override
	linegap <family> <value>    line-gap-override
	size    <family> <value>    size-adjust

	Values are percentages (90%) or fractions of the em square (0.9).
	A value of '-' clears the override. Overrides are set for the language
	scope selected with 'lang', or the default scope.`)
	case "lang", "language", "languages":
		pterm.Info.Println("Language scopes")
		pterm.Println(`
	lang              list the language scopes of the stack
	lang <tag>        edit overrides for a BCP 47 language tag, e.g. ja or zh-Hant
	lang -            edit the default overrides

	Overrides for a language apply to more specific tags as well:
	overrides for zh-Hant are used for zh-Hant-TW.`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load <stack.json>           load a font stack
	save [stack.json]           save the font stack
	font <font file>            append a TTF/OTF font to the stack
	system <family>             append a system font to the stack
	remove <family>             remove a font from the stack
	move <from> <to>            move a font to another position
	lang [tag|-]                select the language scope (help lang)
	ascent|descent|linegap|size <family> <value>   set an override (help overrides)
	suggest <family>            set overrides to match the primary font
	lh <normal|number>          set the CSS line-height
	px <size>                   set the font size for guides
	show                        print the stack
	guides [family]             print alignment guides
	css                         print @font-face rules
	quit                        leave the CLI`)
	}
}
