package pager

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageBasic(t *testing.T) {
	b := New(80, false)
	for i := 0; i < 100; i++ {
		b.Push(fmt.Sprintf("line %d", i))
	}

	lines, hasMore, err := b.Page(0, 20)
	require.NoError(t, err)
	assert.Len(t, lines, 20)
	assert.True(t, hasMore)
	assert.Equal(t, "line 0", lines[0])

	lines, hasMore, err = b.Page(80, 20)
	require.NoError(t, err)
	assert.Len(t, lines, 20)
	assert.False(t, hasMore)

	lines, hasMore, err = b.Page(100, 20)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.False(t, hasMore)
}

func TestPageNegativeOffset(t *testing.T) {
	b := New(80, false)
	b.Push("one")

	_, _, err := b.Page(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidOffset)
}

func TestWrappedLineHeight(t *testing.T) {
	b := New(10, false)
	b.Push(strings.Repeat("x", 25)) // 25/10 -> 3 rows

	assert.Equal(t, 3, b.TotalHeight())
}

func TestWrappedLineNeverSplit(t *testing.T) {
	b := New(10, false)
	b.Push("short")                 // 1 row
	b.Push(strings.Repeat("x", 15)) // 2 rows

	// One row left after "short": the wrapped line moves whole to the
	// next page.
	lines, hasMore, err := b.Page(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"short"}, lines)
	assert.True(t, hasMore)

	lines, hasMore, err = b.Page(1, 2)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.False(t, hasMore)
}

func TestOversizeLineGetsOwnPage(t *testing.T) {
	b := New(10, false)
	b.Push(strings.Repeat("x", 100)) // 10 rows, taller than any page

	lines, hasMore, err := b.Page(0, 5)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.False(t, hasMore)
}

func TestNumberingColumn(t *testing.T) {
	b := New(80, true)
	for i := 0; i < 100; i++ {
		b.Push("line")
	}

	// digits(100) + 1 separator column.
	lines, _, err := b.Page(0, 5)
	require.NoError(t, err)
	assert.Equal(t, "  1 line", lines[0])

	lines, _, err = b.Page(99, 5)
	require.NoError(t, err)
	assert.Equal(t, "100 line", lines[0])
}

func TestNumberingWidthAffectsHeight(t *testing.T) {
	// Line exactly as wide as the terminal wraps once the numbering
	// column is added.
	b := New(10, true)
	b.Push(strings.Repeat("x", 10))

	assert.Equal(t, 2, b.TotalHeight())
}

func TestTotalHeightSingleRows(t *testing.T) {
	b := New(80, false)
	for i := 0; i < 42; i++ {
		b.Push("line")
	}
	assert.Equal(t, 42, b.TotalHeight())
}

func TestClear(t *testing.T) {
	b := New(80, false)
	b.Push("one", "two")
	require.Equal(t, 2, b.Len())

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.TotalHeight())

	// Idempotent.
	b.Clear()
	assert.Equal(t, 0, b.Len())

	lines, hasMore, err := b.Page(0, 10)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.False(t, hasMore)
}

func TestZeroPageHeight(t *testing.T) {
	b := New(80, false)
	b.Push("one")

	lines, hasMore, err := b.Page(0, 0)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.False(t, hasMore)
}
