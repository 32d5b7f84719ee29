// Package store owns the per-period record cache and mediates every read
// and mutation. The cache is never allowed to diverge from disk: each
// mutation rewrites the backing file through a temp-file rename and only
// then installs the new record set in memory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bbanting/budgettool/internal/codec"
	"github.com/bbanting/budgettool/internal/model"
	"github.com/bbanting/budgettool/internal/period"
	"github.com/bbanting/budgettool/internal/tagquery"
)

// Config carries the store's injected dependencies.
type Config struct {
	Dir         string // records directory
	Granularity period.Granularity
}

// Store is the entry store. Single-process, synchronous use; no locking.
type Store struct {
	dir      string
	gran     period.Granularity
	cache    map[period.Period][]model.Record
	loadErrs map[period.Period][]codec.LineError

	// rename is swapped out in tests to simulate write failures.
	rename func(oldpath, newpath string) error
}

// New creates a Store over the given records directory, creating it if
// needed. An unusable directory is the one fatal startup condition.
func New(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("records directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating records dir: %w", err)
	}
	if _, err := os.ReadDir(cfg.Dir); err != nil {
		return nil, fmt.Errorf("reading records dir: %w", err)
	}
	return &Store{
		dir:      cfg.Dir,
		gran:     cfg.Granularity,
		cache:    make(map[period.Period][]model.Record),
		loadErrs: make(map[period.Period][]codec.LineError),
		rename:   os.Rename,
	}, nil
}

// Granularity returns the configured period granularity.
func (s *Store) Granularity() period.Granularity { return s.gran }

// PeriodOf returns the period that owns the given date.
func (s *Store) PeriodOf(date time.Time) period.Period {
	return period.Of(date, s.gran)
}

// Periods returns all periods with a record file, most recent first.
func (s *Store) Periods() ([]period.Period, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("scanning records dir: %w", err)
	}
	var periods []period.Period
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if p, ok := period.FromFileName(e.Name()); ok {
			periods = append(periods, p)
		}
	}
	slices.SortFunc(periods, func(a, b period.Period) int {
		return b.Compare(a) // most recent first
	})
	return periods, nil
}

// load returns the period's records, populating the cache from disk on
// first touch. Malformed lines are collected, not fatal.
func (s *Store) load(p period.Period) ([]model.Record, error) {
	if recs, ok := s.cache[p]; ok {
		return recs, nil
	}

	path := filepath.Join(s.dir, p.FileName())
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.cache[p] = nil
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Period: p, Op: "reading", Err: err}
	}
	defer f.Close()

	recs, lineErrs := codec.Decode(f)
	s.cache[p] = recs
	if len(lineErrs) > 0 {
		s.loadErrs[p] = lineErrs
	}
	return recs, nil
}

// LineErrors returns the malformed rows collected when the period was
// first loaded from disk.
func (s *Store) LineErrors(p period.Period) []codec.LineError {
	return s.loadErrs[p]
}

// Get returns the visible record with the given id in the period.
func (s *Store) Get(p period.Period, id int) (model.Record, error) {
	recs, err := s.load(p)
	if err != nil {
		return model.Record{}, err
	}
	for _, rec := range recs {
		if rec.ID == id && !rec.Hidden {
			return rec, nil
		}
	}
	return model.Record{}, &NotFoundError{Period: p, ID: id}
}

// Filter narrows a List. Zero fields are ignored.
type Filter struct {
	Periods period.Range
	Query   tagquery.Query
	Target  string
	Kind    model.Kind
	From    time.Time
	To      time.Time
}

func (f Filter) match(rec model.Record) bool {
	if !f.Query.IsZero() && !f.Query.Match(rec.Tags) {
		return false
	}
	if f.Target != "" && rec.Target != f.Target {
		return false
	}
	if f.Kind != "" && rec.Kind() != f.Kind {
		return false
	}
	if !f.From.IsZero() && rec.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && rec.Date.After(f.To) {
		return false
	}
	return true
}

// List returns a lazy, restartable sequence of visible records across the
// filtered period range, most-recent-period-first, file order within a
// period. Periods are loaded through the cache as the sequence reaches
// them; an unreadable period file is skipped and recorded as a line error
// for that period.
func (s *Store) List(f Filter) (iter.Seq[model.Record], error) {
	periods, err := s.Periods()
	if err != nil {
		return nil, err
	}

	return func(yield func(model.Record) bool) {
		for _, p := range periods {
			if !f.Periods.Contains(p) {
				continue
			}
			recs, err := s.load(p)
			if err != nil {
				s.loadErrs[p] = append(s.loadErrs[p], codec.LineError{Err: err})
				continue
			}
			for _, rec := range recs {
				if rec.Hidden || !f.match(rec) {
					continue
				}
				if !yield(rec) {
					return
				}
			}
		}
	}, nil
}

// Sum totals the amounts of all records matching the filter.
func (s *Store) Sum(f Filter) (decimal.Decimal, error) {
	seq, err := s.List(f)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for rec := range seq {
		total = total.Add(rec.Amount)
	}
	return total, nil
}

// Add validates the record, assigns the next id in its period, and
// persists it. The id is max across all of the period's records, hidden
// included, plus one, so soft-deleted ids are never reused.
func (s *Store) Add(rec model.Record) (model.Record, error) {
	tags, err := model.NormalizeTags(rec.Tags)
	if err != nil {
		return model.Record{}, err
	}
	rec.Tags = tags
	rec.Date = midnightUTC(rec.Date)
	rec.Hidden = false
	if err := rec.Validate(); err != nil {
		return model.Record{}, err
	}

	p := s.PeriodOf(rec.Date)
	recs, err := s.load(p)
	if err != nil {
		return model.Record{}, err
	}
	rec.ID = maxID(recs) + 1

	updated := append(slices.Clone(recs), rec)
	if err := s.writePeriod(p, updated); err != nil {
		return model.Record{}, err
	}
	s.cache[p] = updated
	return rec, nil
}

// Changes describes an edit. Nil fields are left unchanged.
type Changes struct {
	Date   *time.Time
	Amount *decimal.Decimal
	Target *string
	Note   *string
	Tags   []string // nil = unchanged
}

// Edit applies changes to a visible record and rewrites the period file.
// A date change that would move the record into another period is
// rejected; remove and re-add instead.
func (s *Store) Edit(p period.Period, id int, changes Changes) (model.Record, error) {
	recs, err := s.load(p)
	if err != nil {
		return model.Record{}, err
	}
	i := indexOf(recs, id)
	if i < 0 {
		return model.Record{}, &NotFoundError{Period: p, ID: id}
	}

	rec := recs[i]
	if changes.Date != nil {
		d := midnightUTC(*changes.Date)
		if !p.Contains(d) {
			return model.Record{}, &model.ValidationError{
				Field:  "Date",
				Reason: fmt.Sprintf("date %s is outside period %s", d.Format("2006-01-02"), p),
			}
		}
		rec.Date = d
	}
	if changes.Amount != nil {
		rec.Amount = *changes.Amount
	}
	if changes.Target != nil {
		rec.Target = *changes.Target
	}
	if changes.Note != nil {
		rec.Note = *changes.Note
	}
	if changes.Tags != nil {
		tags, err := model.NormalizeTags(changes.Tags)
		if err != nil {
			return model.Record{}, err
		}
		rec.Tags = tags
	}
	if err := rec.Validate(); err != nil {
		return model.Record{}, err
	}

	updated := slices.Clone(recs)
	updated[i] = rec
	if err := s.writePeriod(p, updated); err != nil {
		return model.Record{}, err
	}
	s.cache[p] = updated
	return rec, nil
}

// Delete soft-deletes a record by setting its hidden flag. Other ids are
// never renumbered.
func (s *Store) Delete(p period.Period, id int) error {
	recs, err := s.load(p)
	if err != nil {
		return err
	}
	i := indexOf(recs, id)
	if i < 0 {
		return &NotFoundError{Period: p, ID: id}
	}

	updated := slices.Clone(recs)
	updated[i].Hidden = true
	if err := s.writePeriod(p, updated); err != nil {
		return err
	}
	s.cache[p] = updated
	return nil
}

// CountTarget returns how many visible records reference a target across
// all periods, so callers can warn before a rename.
func (s *Store) CountTarget(name string) (int, error) {
	seq, err := s.List(Filter{Target: name})
	if err != nil {
		return 0, err
	}
	n := 0
	for range seq {
		n++
	}
	return n, nil
}

// RenameTarget rewrites every record referencing oldName, hidden records
// included, and returns the number changed. Each period is rewritten
// atomically in turn.
func (s *Store) RenameTarget(oldName, newName string) (int, error) {
	if newName == "" {
		return 0, &model.ValidationError{Field: "Target", Reason: "is required"}
	}
	periods, err := s.Periods()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, p := range periods {
		recs, err := s.load(p)
		if err != nil {
			return total, err
		}
		changed := 0
		updated := slices.Clone(recs)
		for i, rec := range updated {
			if rec.Target == oldName {
				updated[i].Target = newName
				changed++
			}
		}
		if changed == 0 {
			continue
		}
		if err := s.writePeriod(p, updated); err != nil {
			return total, err
		}
		s.cache[p] = updated
		total += changed
	}
	return total, nil
}

// writePeriod rewrites a period file through a scoped write: encode to a
// temp file in the records dir, then rename over the target. A crash or
// write failure leaves the old file intact; the caller installs the new
// cache state only after this returns nil.
func (s *Store) writePeriod(p period.Period, recs []model.Record) error {
	tmp, err := os.CreateTemp(s.dir, p.FileName()+".tmp-*")
	if err != nil {
		return &PersistenceError{Period: p, Op: "writing", Err: err}
	}
	tmpName := tmp.Name()

	if err := codec.Encode(tmp, recs); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Period: p, Op: "writing", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Period: p, Op: "writing", Err: err}
	}

	if err := s.rename(tmpName, filepath.Join(s.dir, p.FileName())); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Period: p, Op: "replacing", Err: err}
	}
	return nil
}

// Invalidate drops a period from the cache, forcing a reload from disk on
// next access.
func (s *Store) Invalidate(p period.Period) {
	delete(s.cache, p)
	delete(s.loadErrs, p)
}

func indexOf(recs []model.Record, id int) int {
	for i, rec := range recs {
		if rec.ID == id && !rec.Hidden {
			return i
		}
	}
	return -1
}

func maxID(recs []model.Record) int {
	max := 0
	for _, rec := range recs {
		if rec.ID > max {
			max = rec.ID
		}
	}
	return max
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
