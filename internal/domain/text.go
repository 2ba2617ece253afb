package domain

import (
	"fmt"
	"sort"
)

// PlainText is the natural-language text sent to the checking service.
// All offsets into it are measured in runes.
type PlainText struct {
	Source string
	text   string
	runes  []rune
}

// NewPlainText wraps text extracted from the document identified by source.
func NewPlainText(source, text string) PlainText {
	return PlainText{Source: source, text: text, runes: []rune(text)}
}

func (p PlainText) String() string { return p.text }

// Len returns the length of the text in runes.
func (p PlainText) Len() int { return len(p.runes) }

// Slice returns the substring [offset, offset+length) in rune units.
// ok is false when the span falls outside the text.
func (p PlainText) Slice(offset, length int) (s string, ok bool) {
	if offset < 0 || length < 0 || offset+length > len(p.runes) {
		return "", false
	}
	return string(p.runes[offset : offset+length]), true
}

// Anchor pairs a plain-text rune index with the document rune index it was
// extracted from.
type Anchor struct {
	Plain int `json:"plain"`
	Doc   int `json:"doc"`
}

// OffsetMap translates plain-text positions into document positions. It is
// built once from exact anchors and is read-only afterwards.
type OffsetMap struct {
	anchors  []Anchor
	plainLen int
	docLen   int
}

// NewOffsetMap validates anchors and returns the map. Anchors must be strictly
// increasing on the plain side and non-decreasing on the document side.
func NewOffsetMap(anchors []Anchor, plainLen, docLen int) (*OffsetMap, error) {
	for i, a := range anchors {
		if a.Plain < 0 || a.Plain >= plainLen || a.Doc < 0 || a.Doc >= docLen {
			return nil, fmt.Errorf("anchor %d (%d->%d) out of range", i, a.Plain, a.Doc)
		}
		if i == 0 {
			continue
		}
		prev := anchors[i-1]
		if a.Plain <= prev.Plain || a.Doc < prev.Doc {
			return nil, fmt.Errorf("anchor %d (%d->%d) breaks monotonic order after (%d->%d)",
				i, a.Plain, a.Doc, prev.Plain, prev.Doc)
		}
	}
	cp := make([]Anchor, len(anchors))
	copy(cp, anchors)
	return &OffsetMap{anchors: cp, plainLen: plainLen, docLen: docLen}, nil
}

// IdentityMap maps every rune of a text of length n onto itself.
func IdentityMap(n int) *OffsetMap {
	anchors := make([]Anchor, n)
	for i := range anchors {
		anchors[i] = Anchor{Plain: i, Doc: i}
	}
	return &OffsetMap{anchors: anchors, plainLen: n, docLen: n}
}

// Anchors returns a copy of the exact anchors.
func (m *OffsetMap) Anchors() []Anchor {
	cp := make([]Anchor, len(m.anchors))
	copy(cp, m.anchors)
	return cp
}

func (m *OffsetMap) PlainLen() int { return m.plainLen }
func (m *OffsetMap) DocLen() int   { return m.docLen }

// Translate returns the document index for plain index i. When i has no
// exact anchor, the nearest preceding anchor is used and exact is false.
// With no preceding anchor the result is 0.
func (m *OffsetMap) Translate(i int) (doc int, exact bool) {
	if i < 0 {
		return 0, false
	}
	k := sort.Search(len(m.anchors), func(k int) bool { return m.anchors[k].Plain > i })
	if k == 0 {
		return 0, false
	}
	a := m.anchors[k-1]
	return a.Doc, a.Plain == i
}

// TranslateEnd translates an exclusive span end. The end of a non-empty span
// is one past the document index of its last rune, so markup trailing the
// span is not pulled into it.
func (m *OffsetMap) TranslateEnd(end int) (doc int, exact bool) {
	if end <= 0 {
		return m.Translate(0)
	}
	d, exact := m.Translate(end - 1)
	d++
	if d > m.docLen {
		d = m.docLen
	}
	return d, exact
}
