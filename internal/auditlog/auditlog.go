// Package auditlog keeps an append-only CSV trail of ledger mutations.
package auditlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp time.Time
	Action    string // add, edit, delete, rename, import
	Period    string
	RecordID  int
	Details   string
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,action,period,record_id,details"

const (
	numFields    = 5
	logDir       = "logs"
	logFile      = "logs/audit-log.csv"
	colTimestamp = 0
	colAction    = 1
	colPeriod    = 2
	colRecordID  = 3
	colDetails   = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colPeriod] = e.Period
	if e.RecordID != 0 {
		row[colRecordID] = strconv.Itoa(e.RecordID)
	}
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(row []string) (Entry, error) {
	if len(row) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	ts, err := time.Parse(time.RFC3339, row[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", row[colTimestamp], err)
	}

	var id int
	if row[colRecordID] != "" {
		id, err = strconv.Atoi(row[colRecordID])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing record_id %q: %w", row[colRecordID], err)
		}
	}

	return Entry{
		Timestamp: ts,
		Action:    row[colAction],
		Period:    row[colPeriod],
		RecordID:  id,
		Details:   row[colDetails],
	}, nil
}

// Append adds one entry to the log under the records root, creating the
// log file and header on first use.
func Append(root string, e Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries in the log, oldest first. A missing log file
// is an empty log.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, row := range rows[1:] {
		e, err := UnmarshalEntry(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Tail returns the last n entries, oldest first.
func Tail(root string, n int) ([]Entry, error) {
	entries, err := Read(root)
	if err != nil {
		return nil, err
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
