/*
Package fontstack manages an ordered stack of fonts with metric overrides.

A stack lists a primary web font first, followed by fallback fonts in the
order the browser should try them. Every entry carries a default set of
metric overrides and, optionally, overrides for single languages. Looking
up the overrides for a language picks the best-matching language scope,
e.g. overrides configured for `zh-Hant` are used for `zh-Hant-TW`.

Stacks can be exported to and imported from JSON.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontstack

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/fontfit"
	"github.com/npillmayer/fontfit/metrics"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'fontfit.stack'
func tracer() tracing.Trace {
	return tracing.Select("fontfit.stack")
}

var (
	ErrUnknownFamily   = errors.New("font family not in stack")
	ErrDuplicateFamily = errors.New("font family already in stack")
	ErrIndexOutOfRange = errors.New("stack index out of range")
	ErrEmptyFamily     = errors.New("font family name is empty")
)

// Entry is a font in a stack.
type Entry struct {
	Family    string                            // CSS font-family name
	Local     []string                          // local() names for the @font-face src descriptor
	System    bool                              // system font without measurable metrics
	Metrics   *metrics.FontMetrics              // nil if unknown
	Overrides metrics.Overrides                 // default scope
	Languages map[language.Tag]metrics.Overrides // per-language scopes
}

// EntryFor creates a stack entry for a font. The font's full name, if known,
// becomes the local() name.
func EntryFor(f *fontfit.Font) Entry {
	e := Entry{
		Family:  f.Family,
		System:  f.IsSystem(),
		Metrics: f.Metrics(),
	}
	if f.Fontname != "" {
		e.Local = []string{f.Fontname}
	}
	return e
}

// OverridesFor returns the overrides of the language scope best matching tag.
// If no language scope matches, the default scope is returned.
// language.Und selects the default scope.
func (e *Entry) OverridesFor(tag language.Tag) metrics.Overrides {
	if tag == language.Und || len(e.Languages) == 0 {
		return e.Overrides
	}
	if ov, ok := e.Languages[tag]; ok {
		return ov
	}
	tags := sortedTags(e.Languages)
	_, index, conf := language.NewMatcher(tags).Match(tag)
	if conf < language.High {
		tracer().Debugf("no language scope of %s matches %s", e.Family, tag)
		return e.Overrides
	}
	tracer().Debugf("language %s matched scope %s of %s", tag, tags[index], e.Family)
	return e.Languages[tags[index]]
}

// Stack is an ordered list of fonts, primary font first.
// The zero value is not usable, use [New].
type Stack struct {
	LineHeight metrics.LineHeight // requested CSS line-height
	entries    []*Entry
}

// New creates an empty stack with line-height `normal`.
func New() *Stack {
	return &Stack{LineHeight: metrics.Normal()}
}

// Len returns the number of fonts in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Entries returns the entries of the stack in order.
func (s *Stack) Entries() []*Entry {
	return s.entries
}

// Primary returns the first entry of the stack, or nil for an empty stack.
func (s *Stack) Primary() *Entry {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[0]
}

// Fallbacks returns all entries but the primary one.
func (s *Stack) Fallbacks() []*Entry {
	if len(s.entries) < 2 {
		return nil
	}
	return s.entries[1:]
}

// Entry finds the entry for a font family.
func (s *Stack) Entry(family string) (*Entry, bool) {
	for _, e := range s.entries {
		if e.Family == family {
			return e, true
		}
	}
	return nil, false
}

// Add appends a font to the end of the stack.
func (s *Stack) Add(e Entry) error {
	if e.Family == "" {
		return ErrEmptyFamily
	}
	if _, ok := s.Entry(e.Family); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFamily, e.Family)
	}
	if e.System {
		e.Metrics = nil
	}
	s.entries = append(s.entries, &e)
	tracer().Debugf("added %s to stack at position %d", e.Family, len(s.entries)-1)
	return nil
}

// Remove removes a font family from the stack.
func (s *Stack) Remove(family string) error {
	for i, e := range s.entries {
		if e.Family == family {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownFamily, family)
}

// Move moves the entry at position from to position to, shifting the entries
// in between.
func (s *Stack) Move(from, to int) error {
	n := len(s.entries)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d → %d with %d entries", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	e := s.entries[from]
	if from < to {
		copy(s.entries[from:to], s.entries[from+1:to+1])
	} else {
		copy(s.entries[to+1:from+1], s.entries[to:from])
	}
	s.entries[to] = e
	return nil
}

// SetOverrides sets the overrides of a font family for a language scope.
// language.Und denotes the default scope.
func (s *Stack) SetOverrides(family string, tag language.Tag, ov metrics.Overrides) error {
	e, ok := s.Entry(family)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	if tag == language.Und {
		e.Overrides = ov
		return nil
	}
	if e.Languages == nil {
		e.Languages = make(map[language.Tag]metrics.Overrides)
	}
	e.Languages[tag] = ov
	return nil
}

// ClearOverrides removes overrides of a font family for a language scope.
// Clearing the default scope resets it to no overrides.
func (s *Stack) ClearOverrides(family string, tag language.Tag) error {
	e, ok := s.Entry(family)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	if tag == language.Und {
		e.Overrides = metrics.Overrides{}
		return nil
	}
	delete(e.Languages, tag)
	return nil
}

// OverridesFor returns the overrides in effect for a font family and language.
func (s *Stack) OverridesFor(family string, tag language.Tag) (metrics.Overrides, error) {
	e, ok := s.Entry(family)
	if !ok {
		return metrics.Overrides{}, fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	return e.OverridesFor(tag), nil
}

// LineHeightFor resolves the stack's line-height for a font family and
// language, applying the overrides in effect.
func (s *Stack) LineHeightFor(family string, tag language.Tag) (metrics.LineHeight, error) {
	e, ok := s.Entry(family)
	if !ok {
		return metrics.Normal(), fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	return metrics.ResolveLineHeight(s.LineHeight, e.Metrics, e.OverridesFor(tag)), nil
}

// Languages returns all language scopes configured in the stack, sorted.
func (s *Stack) Languages() []language.Tag {
	all := make(map[language.Tag]metrics.Overrides)
	for _, e := range s.entries {
		for tag, ov := range e.Languages {
			all[tag] = ov
		}
	}
	return sortedTags(all)
}

func sortedTags(m map[language.Tag]metrics.Overrides) []language.Tag {
	tags := make([]language.Tag, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	return tags
}
