package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Reserved characters that may not appear inside a tag name. "!" and "+"
// are tag query operators; ";" separates tags inside a record file field.
const reservedTagChars = "!+;,"

// Kind classifies a record by the sign of its amount.
type Kind string

const (
	Expense Kind = "expense"
	Earning Kind = "earning"
)

// ParseKind parses a kind filter from user input.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense", "expenses":
		return Expense, nil
	case "earning", "earnings", "income":
		return Earning, nil
	default:
		return "", fmt.Errorf("unknown kind %q", s)
	}
}

// Record is one financial event in the ledger.
type Record struct {
	ID     int
	Date   time.Time       // date-only, UTC midnight
	Amount decimal.Decimal // negative = expense, positive = earning
	Target string
	Note   string
	Tags   []string // sorted, unique
	Hidden bool     // soft-delete marker
}

// Kind returns the record's kind from the amount sign.
func (r Record) Kind() Kind {
	if r.Amount.IsNegative() {
		return Expense
	}
	return Earning
}

// ValidationError reports a rejected record field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the record's fields. ID and Hidden are the store's
// concern and are not checked here.
func (r Record) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Date, validation.Required.Error("is required")),
		validation.Field(&r.Amount, validation.By(nonZeroAmount)),
		validation.Field(&r.Target, validation.Required.Error("is required")),
		validation.Field(&r.Tags, validation.Each(validation.By(validTag))),
	)
	if err == nil {
		return nil
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		return &ValidationError{Field: "record", Reason: err.Error()}
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	f := fields[0]
	return &ValidationError{Field: f, Reason: errs[f].Error()}
}

func nonZeroAmount(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsZero() {
		return fmt.Errorf("must be non-zero")
	}
	return nil
}

func validTag(value interface{}) error {
	tag, _ := value.(string)
	return CheckTag(tag)
}

// CheckTag reports whether a single tag name is acceptable.
func CheckTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag must not be empty")
	}
	if strings.ContainsAny(tag, reservedTagChars) {
		return fmt.Errorf("tag %q contains a reserved character", tag)
	}
	if strings.ContainsAny(tag, " \t") {
		return fmt.Errorf("tag %q contains whitespace", tag)
	}
	return nil
}

// NormalizeTags lowercases, sorts, and dedupes a tag list, rejecting
// reserved characters.
func NormalizeTags(tags []string) ([]string, error) {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if err := CheckTag(t); err != nil {
			return nil, &ValidationError{Field: "Tags", Reason: err.Error()}
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// HasTag reports whether the record carries the given tag.
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
