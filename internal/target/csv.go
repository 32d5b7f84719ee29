package target

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

const (
	numFields = 2
	colName   = 0
	colGoal   = 1
)

// ReadTargets reads targets.csv.
func ReadTargets(r io.Reader) ([]Target, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading targets CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var targets []Target
	for i, row := range rows[1:] {
		t, err := UnmarshalTarget(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// WriteTargets writes targets.csv.
func WriteTargets(w io.Writer, targets []Target) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"name", "goal"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range targets {
		if err := cw.Write(MarshalTarget(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTarget converts a Target to a CSV row.
func MarshalTarget(t Target) []string {
	row := make([]string, numFields)
	row[colName] = t.Name
	row[colGoal] = t.Goal.StringFixed(2)
	return row
}

// UnmarshalTarget converts a CSV row to a Target.
func UnmarshalTarget(row []string) (Target, error) {
	if len(row) != numFields {
		return Target{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	goal, err := decimal.NewFromString(row[colGoal])
	if err != nil {
		return Target{}, fmt.Errorf("parsing goal %q: %w", row[colGoal], err)
	}
	if row[colName] == "" {
		return Target{}, fmt.Errorf("empty target name")
	}

	return Target{Name: row[colName], Goal: goal}, nil
}
