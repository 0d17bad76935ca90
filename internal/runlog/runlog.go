// Package runlog keeps an append-only CSV log of completed benchmark runs
// so results survive across invocations.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp  time.Time
	Batch      string
	Case       string
	Model      string
	RunID      string
	Outcome    string // "pass", "invalid", or "error"
	Stage      string // empty unless Outcome is "error"
	Violations int
	DurationMS int64
	Detail     string
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,batch,case,model,run_id,outcome,stage,violations,duration_ms,detail"

const (
	numFields     = 10
	logFile       = "run-log.csv"
	colTimestamp  = 0
	colBatch      = 1
	colCase       = 2
	colModel      = 3
	colRunID      = 4
	colOutcome    = 5
	colStage      = 6
	colViolations = 7
	colDurationMS = 8
	colDetail     = 9
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colBatch] = e.Batch
	row[colCase] = e.Case
	row[colModel] = e.Model
	row[colRunID] = e.RunID
	row[colOutcome] = e.Outcome
	row[colStage] = e.Stage
	row[colViolations] = strconv.Itoa(e.Violations)
	row[colDurationMS] = strconv.FormatInt(e.DurationMS, 10)
	row[colDetail] = e.Detail
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	violations, err := strconv.Atoi(record[colViolations])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing violations %q: %w", record[colViolations], err)
	}
	durationMS, err := strconv.ParseInt(record[colDurationMS], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing duration %q: %w", record[colDurationMS], err)
	}

	return Entry{
		Timestamp:  ts,
		Batch:      record[colBatch],
		Case:       record[colCase],
		Model:      record[colModel],
		RunID:      record[colRunID],
		Outcome:    record[colOutcome],
		Stage:      record[colStage],
		Violations: violations,
		DurationMS: durationMS,
		Detail:     record[colDetail],
	}, nil
}

// Append writes entries to <outputDir>/run-log.csv, creating the file and
// header if needed.
func Append(outputDir string, entries []Entry) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(outputDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <outputDir>/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(outputDir string) ([]Entry, error) {
	path := filepath.Join(outputDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
