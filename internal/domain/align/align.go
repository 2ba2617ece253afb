// Package align recovers the correspondence between a structured document
// and the plain text an external converter extracted from it.
//
// The converter strips markup but keeps word order, so the document is
// walked once, left to right: each plain-text word is matched against the
// next occurrence of the same word in the document, and separators are
// matched only across markup. Runes that cannot be matched are left without
// an anchor; the resulting OffsetMap resolves them to the nearest preceding
// anchor.
package align

import (
	"unicode"

	"github.com/texspell/texspell/internal/domain"
)

const (
	// wordWindow bounds how far ahead a word is searched for. Math blocks
	// and long environments dropped by the converter fit inside it.
	wordWindow = 4096
	// separatorWindow bounds the search for punctuation and whitespace.
	separatorWindow = 64
)

// Build aligns plain against document and returns the offset map.
func Build(document, plain string) (*domain.OffsetMap, error) {
	doc := []rune(document)
	pl := []rune(plain)
	a := aligner{doc: doc, mask: markupMask(doc)}

	for p := 0; p < len(pl); {
		if isWordRune(pl[p]) {
			q := p
			for q < len(pl) && isWordRune(pl[q]) {
				q++
			}
			a.word(p, pl[p:q])
			p = q
			continue
		}
		a.separator(p, pl[p])
		p++
	}

	return domain.NewOffsetMap(a.anchors, len(pl), len(doc))
}

type aligner struct {
	doc     []rune
	mask    []bool
	cursor  int
	anchors []domain.Anchor
}

func (a *aligner) word(p int, w []rune) {
	k := a.findWord(w, true)
	if k < 0 {
		k = a.findWord(w, false)
	}
	if k < 0 {
		return
	}
	for j := range w {
		a.anchors = append(a.anchors, domain.Anchor{Plain: p + j, Doc: k + j})
	}
	a.cursor = k + len(w)
}

// findWord returns the document index of the next unmasked occurrence of w
// at or after the cursor, or -1. With bounded set, the occurrence must not
// be glued to neighbouring letters.
func (a *aligner) findWord(w []rune, bounded bool) int {
	limit := min(len(a.doc)-len(w), a.cursor+wordWindow)
	for k := a.cursor; k <= limit; k++ {
		if !a.matchAt(k, w) {
			continue
		}
		if bounded && !a.isBoundary(k-1) {
			continue
		}
		if bounded && !a.isBoundary(k+len(w)) {
			continue
		}
		return k
	}
	return -1
}

func (a *aligner) matchAt(k int, w []rune) bool {
	for j, r := range w {
		if a.mask[k+j] || a.doc[k+j] != r {
			return false
		}
	}
	return true
}

func (a *aligner) isBoundary(i int) bool {
	if i < 0 || i >= len(a.doc) {
		return true
	}
	return a.mask[i] || !isWordRune(a.doc[i])
}

// separator matches a non-word rune. The search never crosses document
// content, so a separator the converter invented stays unanchored instead of
// stealing a later position.
func (a *aligner) separator(p int, r rune) {
	limit := min(len(a.doc), a.cursor+separatorWindow)
	for k := a.cursor; k < limit; k++ {
		if a.mask[k] {
			continue
		}
		d := a.doc[k]
		if sameSeparator(d, r) {
			a.anchors = append(a.anchors, domain.Anchor{Plain: p, Doc: k})
			a.cursor = k + 1
			return
		}
		if isWordRune(d) {
			return
		}
	}
}

func sameSeparator(d, r rune) bool {
	if unicode.IsSpace(r) {
		return unicode.IsSpace(d)
	}
	return d == r
}
