// Package schedule defines the calendar data model shared by the scraper,
// storage and analyzers: civil dates, raw per-day records, expanded content
// lines, inclusive date windows and the holiday oracle.
package schedule
