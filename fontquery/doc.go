/*
Package fontquery reads the vertical metrics of OpenType fonts.

Font binaries are opened with the OpenType loader of go-text/typesetting.
Only the tables needed for line metrics are decoded: 'head', 'hhea',
'OS/2' and 'name'. Problems with single tables do not make a font unusable;
they are collected as [TableIssue]s and the affected table is treated as
missing, so the fallback rules of [metrics.FontTables.Metrics] apply.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontquery

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fontfit.query'
func tracer() tracing.Trace {
	return tracing.Select("fontfit.query")
}
