package main

import (
	"fmt"

	"github.com/npillmayer/fontfit/fontface"
	"github.com/thatisuday/commando"
	"golang.org/x/text/language"
)

func runSuggestCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	primary := mustLoadFont(args["primary"].Value)
	fallback := mustLoadFont(args["fallback"].Value)
	pm, err := primary.RequireMetrics()
	if err != nil {
		fatalf("%v", err)
	}
	ov := fontface.Suggest(pm, fallback.Metrics())
	fmt.Printf("/* %s as fallback for %s */\n", fallback.Fontname, primary.Fontname)
	local := []string{fallback.Fontname}
	fmt.Print(fontface.Rule(fontface.FallbackName(fallback.Family, language.Und), local, ov))
}
