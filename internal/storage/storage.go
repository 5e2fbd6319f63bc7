// Package storage persists the raw day-record collection as a single JSON
// document: an array of objects with date, markup, weekend and holiday keys.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hhojgaard/altiplan/internal/schedule"
)

// ErrSchema marks a persisted document that does not match the expected
// shape.
var ErrSchema = errors.New("schedule file does not match the expected schema")

// rawDay mirrors schedule.DayRecord with pointer fields so a missing key is
// distinguishable from a zero value during load.
type rawDay struct {
	Date    *schedule.Date `json:"date"`
	Markup  *string        `json:"markup"`
	Weekend *bool          `json:"weekend"`
	Holiday *bool          `json:"holiday"`
}

// Save writes the full collection to path, overwriting any existing file.
// The write is all-or-nothing: data goes to a temp file in the target
// directory which is then renamed over path, so a half-written document can
// never be observed.
func Save(path string, days []schedule.DayRecord) error {
	data, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding day records: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".altiplan-raw-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing day records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Load reads a collection previously written by Save. A missing file
// surfaces as fs.ErrNotExist; a document of the wrong shape wraps ErrSchema
// with the offending record index.
func Load(path string) ([]schedule.DayRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule file: %w", err)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: document is not a JSON array: %v", ErrSchema, err)
	}

	days := make([]schedule.DayRecord, 0, len(rows))
	for i, row := range rows {
		var rd rawDay
		if err := json.Unmarshal(row, &rd); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrSchema, i, err)
		}
		if rd.Date == nil || rd.Markup == nil || rd.Weekend == nil || rd.Holiday == nil {
			return nil, fmt.Errorf("%w: record %d is missing a required field", ErrSchema, i)
		}
		days = append(days, schedule.DayRecord{
			Date:    *rd.Date,
			Markup:  *rd.Markup,
			Weekend: *rd.Weekend,
			Holiday: *rd.Holiday,
		})
	}
	return days, nil
}
