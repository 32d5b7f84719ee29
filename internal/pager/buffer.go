// Package pager buffers rendered lines and serves them in fixed-height
// pages, accounting for terminal wrapping and the numbering column.
package pager

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
)

// ErrInvalidOffset is returned by Page for a negative offset. All other
// out-of-range requests degrade to an empty page.
var ErrInvalidOffset = errors.New("negative page offset")

const defaultTermWidth = 80

// Buffer accumulates rendered lines between clears.
type Buffer struct {
	termWidth int
	numbered  bool
	lines     []string
}

// New creates a Buffer for a terminal of the given width. A non-positive
// width falls back to 80 columns.
func New(termWidth int, numbered bool) *Buffer {
	if termWidth < 1 {
		termWidth = defaultTermWidth
	}
	return &Buffer{termWidth: termWidth, numbered: numbered}
}

// Push appends rendered lines to the buffer.
func (b *Buffer) Push(lines ...string) {
	b.lines = append(b.lines, lines...)
}

// Clear empties the buffer. Safe to call repeatedly.
func (b *Buffer) Clear() {
	b.lines = b.lines[:0]
}

// Len returns the number of buffered logical lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// numWidth is the width of the numbering column prefix, including one
// separator space. It grows with the digit count of the line total.
func (b *Buffer) numWidth() int {
	if !b.numbered {
		return 0
	}
	return digits(len(b.lines)) + 1
}

func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// height is the number of visual rows a line occupies after wrapping,
// numbering prefix included.
func (b *Buffer) height(line string) int {
	w := b.numWidth() + runewidth.StringWidth(line)
	if w <= b.termWidth {
		return 1
	}
	h := w / b.termWidth
	if w%b.termWidth != 0 {
		h++
	}
	return h
}

// TotalHeight returns the sum of all true line heights.
func (b *Buffer) TotalHeight() int {
	total := 0
	for _, l := range b.lines {
		total += b.height(l)
	}
	return total
}

// Page returns the run of lines starting at offset whose cumulative true
// height fits within pageHeight, and whether more lines follow. A logical
// line is never split across pages; a line taller than pageHeight gets a
// page to itself. Offsets past the end return an empty page.
func (b *Buffer) Page(offset, pageHeight int) ([]string, bool, error) {
	if offset < 0 {
		return nil, false, ErrInvalidOffset
	}
	if offset >= len(b.lines) || pageHeight < 1 {
		return nil, false, nil
	}

	var out []string
	used := 0
	i := offset
	for ; i < len(b.lines); i++ {
		h := b.height(b.lines[i])
		if used+h > pageHeight && len(out) > 0 {
			break
		}
		out = append(out, b.render(i))
		used += h
		if used >= pageHeight {
			i++
			break
		}
	}
	return out, i < len(b.lines), nil
}

// render returns the line at index i with its numbering prefix applied.
func (b *Buffer) render(i int) string {
	if !b.numbered {
		return b.lines[i]
	}
	return fmt.Sprintf("%*d %s", b.numWidth()-1, i+1, b.lines[i])
}
