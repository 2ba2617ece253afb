package tui

import (
	"strings"

	"github.com/texspell/texspell/internal/domain"
)

// source is a document with its line index, in rune offsets.
type source struct {
	runes []rune
	lines *domain.LineIndex
}

func newSource(text string) *source {
	return &source{runes: []rune(text), lines: domain.NewLineIndex(text)}
}

// lineBounds returns the [start, end) of line li without its line break.
func (s *source) lineBounds(li int) (int, int) {
	start := s.lines.LineStart(li)
	end := len(s.runes)
	if li+1 < s.lines.Lines() {
		end = s.lines.LineStart(li+1) - 1
	}
	if end > start && s.runes[end-1] == '\r' {
		end--
	}
	return start, end
}

type excerptLine struct {
	number int
	text   string
	// marker underlines the flagged part of this line; empty when the line
	// only provides context.
	marker string
}

type excerpt struct {
	line, column int
	lines        []excerptLine
}

// excerpt cuts the lines around a document span, with context lines on
// both sides, and builds the underline for each flagged line.
func (s *source) excerpt(offset, length, context int) (excerpt, error) {
	if offset < 0 || length < 0 || offset+length > len(s.runes) {
		return excerpt{}, &domain.RenderError{Offset: offset, Reason: "span lies outside the document"}
	}

	first := s.lines.Line(offset)
	last := first
	if length > 0 {
		last = s.lines.Line(offset + length - 1)
	}

	from := max(0, first-context)
	to := min(s.lines.Lines()-1, last+context)

	line, column := s.lines.Position(offset)
	ex := excerpt{line: line, column: column}
	for li := from; li <= to; li++ {
		start, end := s.lineBounds(li)
		el := excerptLine{number: li + 1, text: string(s.runes[start:end])}
		if li >= first && li <= last {
			markFrom := max(offset, start) - start
			markTo := min(offset+length, end) - start
			el.marker = s.marker(start, markFrom, markTo)
		}
		ex.lines = append(ex.lines, el)
	}
	return ex, nil
}

// marker pads to the flagged column, keeping tabs so the carets line up
// with the source text, and draws at least one caret.
func (s *source) marker(lineStart, from, to int) string {
	var b strings.Builder
	for _, r := range s.runes[lineStart : lineStart+from] {
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	b.WriteString(strings.Repeat("^", max(1, to-from)))
	return b.String()
}
