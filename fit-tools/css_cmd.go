package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontfit/fontface"
	"github.com/npillmayer/fontfit/fontstack"
	"github.com/thatisuday/commando"
	"golang.org/x/text/language"
)

func runCSSCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	path := strings.TrimSpace(args["stack"].Value)
	if path == "" {
		fatalf("stack file is required")
	}
	r, err := os.Open(path)
	if err != nil {
		fatalf("cannot open stack: %v", err)
	}
	defer r.Close()
	s, err := fontstack.Import(r)
	if err != nil {
		fatalf("%v", err)
	}
	tag, err := parseLanguage(flags["lang"])
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Print(fontface.StackRules(s, tag))
}

// parseLanguage reads a --lang flag. An empty flag selects the default scope.
func parseLanguage(flag commando.FlagValue) (language.Tag, error) {
	s, err := flag.GetString()
	if err != nil {
		return language.Und, fmt.Errorf("invalid --lang flag: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return language.Und, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return tag, nil
}
