// Package target maintains the registry of payees/categories that
// records point at, along with a per-period goal amount for each.
package target

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bbanting/budgettool/internal/period"
	"github.com/bbanting/budgettool/internal/store"
)

// FileName is the registry file name inside the records directory.
const FileName = "targets.csv"

// Target is one named payee/category with a goal amount per period.
// Goal follows the record sign convention: negative = spending budget.
type Target struct {
	Name string
	Goal decimal.Decimal
}

// Service provides in-memory lookup over the target registry.
type Service struct {
	path    string
	targets []Target
	byName  map[string]Target
}

// Load reads targets.csv from the records directory. A missing file is
// an empty registry.
func Load(recordsDir string) (*Service, error) {
	path := filepath.Join(recordsDir, FileName)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return newService(path, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening targets: %w", err)
	}
	defer f.Close()

	targets, err := ReadTargets(f)
	if err != nil {
		return nil, fmt.Errorf("reading targets: %w", err)
	}
	return newService(path, targets), nil
}

func newService(path string, targets []Target) *Service {
	byName := make(map[string]Target, len(targets))
	for _, t := range targets {
		byName[t.Name] = t
	}
	return &Service{path: path, targets: targets, byName: byName}
}

// All returns all targets sorted by name.
func (s *Service) All() []Target {
	out := make([]Target, len(s.targets))
	copy(out, s.targets)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns a target by name.
func (s *Service) Get(name string) (Target, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Exists reports whether a target name is registered.
func (s *Service) Exists(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Names returns all target names sorted.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.targets))
	for _, t := range s.targets {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// Add registers a new target and saves the registry.
func (s *Service) Add(t Target) error {
	t.Name = strings.ToLower(strings.TrimSpace(t.Name))
	if t.Name == "" {
		return fmt.Errorf("target name is required")
	}
	if s.Exists(t.Name) {
		return fmt.Errorf("target %q already exists", t.Name)
	}
	s.targets = append(s.targets, t)
	s.byName[t.Name] = t
	return s.save()
}

// SetGoal updates a target's goal amount and saves the registry.
func (s *Service) SetGoal(name string, goal decimal.Decimal) error {
	for i, t := range s.targets {
		if t.Name == name {
			s.targets[i].Goal = goal
			s.byName[name] = s.targets[i]
			return s.save()
		}
	}
	return fmt.Errorf("unknown target %q", name)
}

// Rename renames a target in the registry and rewrites every record that
// references the old name through the store. It returns the number of
// records rewritten.
func (s *Service) Rename(st *store.Store, oldName, newName string) (int, error) {
	newName = strings.ToLower(strings.TrimSpace(newName))
	if !s.Exists(oldName) {
		return 0, fmt.Errorf("unknown target %q", oldName)
	}
	if s.Exists(newName) {
		return 0, fmt.Errorf("target %q already exists", newName)
	}

	n, err := st.RenameTarget(oldName, newName)
	if err != nil {
		return n, err
	}

	for i, t := range s.targets {
		if t.Name == oldName {
			s.targets[i].Name = newName
			s.byName[newName] = s.targets[i]
			delete(s.byName, oldName)
			break
		}
	}
	return n, s.save()
}

// Remove deletes a target from the registry. A target still referenced
// by records is refused; the caller reports the count.
func (s *Service) Remove(st *store.Store, name string) error {
	if !s.Exists(name) {
		return fmt.Errorf("unknown target %q", name)
	}
	n, err := st.CountTarget(name)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("target %q is in use by %d record(s)", name, n)
	}

	for i, t := range s.targets {
		if t.Name == name {
			s.targets = append(s.targets[:i], s.targets[i+1:]...)
			delete(s.byName, name)
			break
		}
	}
	return s.save()
}

// GoalSummary is one row of a period's target report.
type GoalSummary struct {
	Target Target
	Actual decimal.Decimal
}

// Met reports whether the actual amount met the goal. Spending budgets
// (negative goals) are met by staying at or above the goal.
func (g GoalSummary) Met() bool {
	return g.Actual.GreaterThanOrEqual(g.Target.Goal)
}

// Summary computes actual vs. goal for every target over one period.
func (s *Service) Summary(st *store.Store, p period.Period) ([]GoalSummary, error) {
	out := make([]GoalSummary, 0, len(s.targets))
	for _, t := range s.All() {
		actual, err := st.Sum(store.Filter{
			Periods: period.Range{From: p, To: p},
			Target:  t.Name,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, GoalSummary{Target: t, Actual: actual})
	}
	return out, nil
}

func (s *Service) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating targets file: %w", err)
	}
	defer f.Close()

	if err := WriteTargets(f, s.targets); err != nil {
		return fmt.Errorf("writing targets: %w", err)
	}
	return nil
}
