package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func validRecord() Record {
	return Record{
		Date:   time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
		Amount: dec("-45.00"),
		Target: "groceries",
		Note:   "weekly shop",
		Tags:   []string{"food"},
	}
}

func TestKind(t *testing.T) {
	rec := validRecord()
	assert.Equal(t, Expense, rec.Kind())

	rec.Amount = dec("1200.00")
	assert.Equal(t, Earning, rec.Kind())
}

func TestValidate(t *testing.T) {
	require.NoError(t, validRecord().Validate())

	tests := []struct {
		name   string
		mutate func(*Record)
		field  string
	}{
		{"zero date", func(r *Record) { r.Date = time.Time{} }, "Date"},
		{"zero amount", func(r *Record) { r.Amount = decimal.Zero }, "Amount"},
		{"empty target", func(r *Record) { r.Target = "" }, "Target"},
		{"reserved tag char", func(r *Record) { r.Tags = []string{"a+b"} }, "Tags"},
		{"empty tag", func(r *Record) { r.Tags = []string{""} }, "Tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			err := rec.Validate()
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tags, err := NormalizeTags([]string{"Food", " weekly ", "food", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "weekly"}, tags)

	_, err = NormalizeTags([]string{"a!b"})
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("expenses")
	require.NoError(t, err)
	assert.Equal(t, Expense, k)

	k, err = ParseKind("income")
	require.NoError(t, err)
	assert.Equal(t, Earning, k)

	_, err = ParseKind("other")
	assert.Error(t, err)
}

func TestHasTag(t *testing.T) {
	rec := validRecord()
	assert.True(t, rec.HasTag("food"))
	assert.False(t, rec.HasTag("rent"))
}
