package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Granularity controls how dates are bucketed into period files.
type Granularity int

const (
	Monthly Granularity = iota
	Yearly
)

func (g Granularity) String() string {
	switch g {
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// ParseGranularity parses a granularity from config text.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown granularity %q", s)
	}
}

// Period identifies one record file. Month is zero for yearly granularity.
type Period struct {
	Year  int
	Month time.Month
}

// Of returns the period that owns the given date.
func Of(date time.Time, g Granularity) Period {
	if g == Yearly {
		return Period{Year: date.Year()}
	}
	return Period{Year: date.Year(), Month: date.Month()}
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	if date.Year() != p.Year {
		return false
	}
	return p.Month == 0 || date.Month() == p.Month
}

// String formats the period key: "2025-08" or "2025".
func (p Period) String() string {
	if p.Month == 0 {
		return fmt.Sprintf("%04d", p.Year)
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// FileName returns the name of the period's record file.
func (p Period) FileName() string {
	return p.String() + ".csv"
}

// IsZero reports whether the period is the zero value.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Compare orders periods chronologically: -1 if p is earlier than q.
func (p Period) Compare(q Period) int {
	if p.Year != q.Year {
		if p.Year < q.Year {
			return -1
		}
		return 1
	}
	if p.Month != q.Month {
		if p.Month < q.Month {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether p is chronologically earlier than q.
func (p Period) Before(q Period) bool {
	return p.Compare(q) < 0
}

// Parse parses a period key like "2025-08" or "2025".
func Parse(s string) (Period, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, "-", 2)

	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return Period{}, fmt.Errorf("invalid year in period %q", s)
	}

	if len(parts) == 1 {
		return Period{Year: year}, nil
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid month in period %q", s)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// FromFileName recognizes a period record file name. The second return
// value is false for names that are not period files (config, logs, etc.).
func FromFileName(name string) (Period, bool) {
	base, ok := strings.CutSuffix(name, ".csv")
	if !ok {
		return Period{}, false
	}
	p, err := Parse(base)
	if err != nil {
		return Period{}, false
	}
	return p, true
}

// Range bounds a span of periods. A zero From or To leaves that end open.
type Range struct {
	From Period
	To   Period
}

// All is the unbounded range.
var All = Range{}

// Contains reports whether the period falls inside the range.
func (r Range) Contains(p Period) bool {
	if !r.From.IsZero() && p.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && r.To.Before(p) {
		return false
	}
	return true
}
