/*
Package fontfit helps configuring fallback fonts for the web.

While a web font is loading, browsers render text with a fallback system
font. If the line metrics of fallback and web font differ, text jumps as soon
as the web font arrives. CSS @font-face descriptors ascent-override,
descent-override, line-gap-override and size-adjust let authors bend the
metrics of a fallback font to match the web font.

Package fontfit ties together

▪︎ reading the vertical metrics of fonts (package fontquery),

▪︎ reconciling metrics, overrides and CSS line-height (package metrics),

▪︎ ordered font stacks with per-language override scopes (package fontstack), and

▪︎ generation of @font-face rules (package fontface).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontfit
