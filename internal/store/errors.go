package store

import (
	"fmt"

	"github.com/bbanting/budgettool/internal/period"
)

// NotFoundError reports a lookup for a record that does not exist (or is
// soft-deleted) in the given period.
type NotFoundError struct {
	Period period.Period
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record %d in %s", e.ID, e.Period)
}

// PersistenceError reports a failed write to a period file. The in-memory
// cache is rolled back to the pre-mutation state before this surfaces.
type PersistenceError struct {
	Period period.Period
	Op     string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Period, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
