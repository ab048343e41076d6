/*
Package metrics reconciles a font's vertical metrics with CSS line-height.

Given the vertical metrics of a font (taken from its 'hhea' or 'OS/2'
tables), a requested CSS line-height and a set of @font-face metric
overrides (ascent-override, descent-override, line-gap-override and
size-adjust), the package derives

▪︎ the numeric line-height a browser will actually use, see [ResolveLineHeight], and

▪︎ the vertical positions of baseline, x-height, cap-height, ascent and
descent inside one line box, see [ComputeGuideOffsets].

All functions are pure. They never fail on malformed input but return a
best-effort value, either the CSS token `normal` or a boolean flag telling
the caller that metrics have been unavailable.

Descenders are always kept as negative font units inside this package.
Font-table adapters have to normalize at the boundary, which
[FontTables.Metrics] does.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package metrics

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontfit.metrics'
func tracer() tracing.Trace {
	return tracing.Select("fontfit.metrics")
}
