// Package analyze implements the offline reports over expanded schedule
// lines: the summary frequency table, exact-term find statistics, shift-code
// combination day counts and the flat expanded export.
package analyze
