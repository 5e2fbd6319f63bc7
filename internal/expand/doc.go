// Package expand turns one day's raw markup into its ordered content lines.
//
// Two interchangeable strategies exist: Simple splits only on line-break
// markers and literal newlines, Structural parses the markup tree and then
// applies the shift-line rules (label, multi-shift and dash-pair splitting).
// The package also classifies lines as noise or time lines for the summary
// filters.
package expand
