package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	d := time.Date(2025, 8, 12, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, Period{Year: 2025, Month: 8}, Of(d, Monthly))
	assert.Equal(t, Period{Year: 2025}, Of(d, Yearly))
}

func TestStringParseRoundTrip(t *testing.T) {
	for _, p := range []Period{
		{Year: 2025, Month: 8},
		{Year: 2025, Month: 12},
		{Year: 1999},
	} {
		got, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "25-01", "2025-13", "2025-00", "abcd", "2025-xy"} {
		_, err := Parse(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestFromFileName(t *testing.T) {
	p, ok := FromFileName("2025-08.csv")
	require.True(t, ok)
	assert.Equal(t, Period{Year: 2025, Month: 8}, p)

	p, ok = FromFileName("2024.csv")
	require.True(t, ok)
	assert.Equal(t, Period{Year: 2024}, p)

	for _, name := range []string{"targets.csv", "bt.yaml", "2025-08.csv.tmp-123", "notes.txt"} {
		_, ok := FromFileName(name)
		assert.False(t, ok, "name %q", name)
	}
}

func TestCompare(t *testing.T) {
	a := Period{Year: 2025, Month: 1}
	b := Period{Year: 2025, Month: 8}
	c := Period{Year: 2024, Month: 12}

	assert.True(t, a.Before(b))
	assert.True(t, c.Before(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, b.Compare(a))
}

func TestContains(t *testing.T) {
	p := Period{Year: 2025, Month: 8}
	assert.True(t, p.Contains(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))

	yearly := Period{Year: 2025}
	assert.True(t, yearly.Contains(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, yearly.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRange(t *testing.T) {
	r := Range{From: Period{Year: 2025, Month: 3}, To: Period{Year: 2025, Month: 6}}

	assert.True(t, r.Contains(Period{Year: 2025, Month: 3}))
	assert.True(t, r.Contains(Period{Year: 2025, Month: 6}))
	assert.False(t, r.Contains(Period{Year: 2025, Month: 2}))
	assert.False(t, r.Contains(Period{Year: 2025, Month: 7}))

	assert.True(t, All.Contains(Period{Year: 1999}))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("monthly")
	require.NoError(t, err)
	assert.Equal(t, Monthly, g)

	g, err = ParseGranularity("Year")
	require.NoError(t, err)
	assert.Equal(t, Yearly, g)

	_, err = ParseGranularity("weekly")
	assert.Error(t, err)
}
