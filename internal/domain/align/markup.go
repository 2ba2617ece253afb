package align

import "unicode"

// markupMask flags the runes of a LaTeX document that can never appear in
// the extracted plain text: control-word names with their backslash, the
// backslash of control symbols, and comments.
func markupMask(doc []rune) []bool {
	mask := make([]bool, len(doc))
	for i := 0; i < len(doc); i++ {
		switch doc[i] {
		case '\\':
			mask[i] = true
			j := i + 1
			for j < len(doc) && isASCIILetter(doc[j]) {
				mask[j] = true
				j++
			}
			if j == i+1 && j < len(doc) {
				// Control symbol such as \% or \&: the symbol itself is text.
				i = j
				continue
			}
			i = j - 1
		case '%':
			for i < len(doc) && doc[i] != '\n' {
				mask[i] = true
				i++
			}
		}
	}
	return mask
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
