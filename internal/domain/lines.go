package domain

import "sort"

// LineIndex maps rune offsets in a document to lines and columns.
type LineIndex struct {
	starts []int
	n      int
}

// NewLineIndex indexes the line starts of text. Lines end at '\n'.
func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	n := 0
	for _, r := range text {
		n++
		if r == '\n' {
			starts = append(starts, n)
		}
	}
	return &LineIndex{starts: starts, n: n}
}

// Len returns the length of the indexed text in runes.
func (x *LineIndex) Len() int { return x.n }

// Lines returns the number of lines; a trailing line break opens an empty
// last line.
func (x *LineIndex) Lines() int { return len(x.starts) }

// LineStart returns the offset of the first rune of 0-based line li.
func (x *LineIndex) LineStart(li int) int { return x.starts[li] }

// Line returns the 0-based line containing offset. Offsets outside the text
// are clamped to it.
func (x *LineIndex) Line(offset int) int {
	offset = min(max(offset, 0), x.n)
	return sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
}

// Position returns the 1-based line and column of offset.
func (x *LineIndex) Position(offset int) (line, column int) {
	offset = min(max(offset, 0), x.n)
	li := x.Line(offset)
	return li + 1, offset - x.starts[li] + 1
}
