// Package cli implements the command-line interface for altiplan.
//
// The cli package provides the cobra-based CLI: it collects every flag into
// one Config, validates it in a single step, then drives the sequential
// pipeline — fetch or load, save, window filter, expand, analyze, output —
// and maps failures to exit codes.
package cli
