/*
Package fontface generates CSS @font-face rules for font stacks.

Fallback fonts are declared with their metric overrides, so a browser lays
out text set in a fallback font with the vertical metrics of the primary
web font. [Suggest] derives a starting point for such overrides from the
metrics of both fonts.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontface

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontfit.face'
func tracer() tracing.Trace {
	return tracing.Select("fontfit.face")
}
