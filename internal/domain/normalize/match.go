package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/texspell/texspell/internal/domain"
)

// ellipsis marks a context snippet truncated by the service.
const ellipsis = "..."

type wireMatch struct {
	Message      string            `json:"message"`
	Word         *string           `json:"word"`
	Offset       *int              `json:"offset"`
	Length       *int              `json:"length"`
	Context      *wireContext      `json:"context"`
	Replacements []json.RawMessage `json:"replacements"`
	Rule         *wireRule         `json:"rule"`
	Type         *wireType         `json:"type"`
}

type wireContext struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

type wireRule struct {
	ID        string `json:"id"`
	IssueType string `json:"issueType"`
	Category  struct {
		Name string `json:"name"`
	} `json:"category"`
}

type wireType struct {
	TypeName string `json:"typeName"`
}

// contextSpan resolves a match that carries a context snippet. The flagged
// substring is cut from context.text in characters. When absolute offsets
// are present too, both must flag the same text; otherwise the snippet is
// located in the checked text, searching from cursor.
func contextSpan(m wireMatch, plain domain.PlainText, cursor int) (int, int, error) {
	ctx := []rune(m.Context.Text)
	co, cl := m.Context.Offset, m.Context.Length
	if co+cl > len(ctx) {
		return 0, 0, fmt.Errorf("context span %d+%d exceeds context of %d characters", co, cl, len(ctx))
	}
	flagged := string(ctx[co : co+cl])

	if m.Offset != nil && m.Length != nil {
		got, ok := plain.Slice(*m.Offset, *m.Length)
		if !ok {
			return 0, 0, fmt.Errorf("span %d+%d exceeds checked text of %d characters", *m.Offset, *m.Length, plain.Len())
		}
		if flattenSpace(got) != flattenSpace(flagged) {
			return 0, 0, fmt.Errorf("context flags %q but offset %d flags %q", flagged, *m.Offset, got)
		}
		return *m.Offset, *m.Length, nil
	}

	offset, err := locate(plain, m.Context.Text, co, cl, cursor)
	if err != nil {
		return 0, 0, err
	}
	return offset, cl, nil
}

// absoluteSpan resolves a match that carries offsets into the checked text.
// An optional word field must agree with the text at that span.
func absoluteSpan(m wireMatch, plain domain.PlainText, _ int) (int, int, error) {
	offset, length := *m.Offset, *m.Length
	got, ok := plain.Slice(offset, length)
	if !ok {
		return 0, 0, fmt.Errorf("span %d+%d exceeds checked text of %d characters", offset, length, plain.Len())
	}
	if m.Word != nil && flattenSpace(*m.Word) != flattenSpace(got) {
		return 0, 0, fmt.Errorf("word %q disagrees with %q at offset %d", *m.Word, got, offset)
	}
	return offset, length, nil
}

// locate finds the absolute offset of a context-relative span by searching
// the snippet in the checked text. The service flattens line breaks in
// snippets, so whitespace is compared loosely.
//
// The first copy whose span starts at or after cursor wins. Matches are not
// guaranteed to be sorted, so when no copy lies past cursor a snippet that
// occurs exactly once is still accepted; anything else is ambiguous.
func locate(plain domain.PlainText, context string, ctxOffset, length, cursor int) (int, error) {
	body := context
	lead := 0
	if strings.HasPrefix(body, ellipsis) {
		body = body[len(ellipsis):]
		lead = utf8.RuneCountInString(ellipsis)
	}
	body = strings.TrimSuffix(body, ellipsis)
	if ctxOffset < lead {
		return 0, fmt.Errorf("context offset %d points into the truncation marker", ctxOffset)
	}
	if body == "" {
		return 0, fmt.Errorf("empty context snippet")
	}
	if end := lead + utf8.RuneCountInString(body); ctxOffset+length > end {
		return 0, fmt.Errorf("context span %d+%d runs into the truncation marker at %d", ctxOffset, length, end)
	}

	starts := occurrences(flattenSpace(plain.String()), flattenSpace(body))
	if len(starts) == 0 {
		return 0, fmt.Errorf("context %q not found in checked text", context)
	}
	shift := ctxOffset - lead
	for _, s := range starts {
		if s+shift >= cursor {
			return s + shift, nil
		}
	}
	if len(starts) > 1 {
		return 0, fmt.Errorf("context %q occurs %d times in checked text and none after offset %d", context, len(starts), cursor)
	}
	return starts[0] + shift, nil
}

// occurrences returns the rune index of every, possibly overlapping, copy of
// needle in text.
func occurrences(text, needle string) []int {
	var out []int
	from, runes := 0, 0
	for {
		i := strings.Index(text[from:], needle)
		if i < 0 {
			return out
		}
		runes += utf8.RuneCountInString(text[from : from+i])
		out = append(out, runes)
		_, size := utf8.DecodeRuneInString(text[from+i:])
		runes++
		from += i + size
	}
}

// flattenSpace maps every whitespace rune to a single space, keeping the
// rune count unchanged.
func flattenSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

// replacementValues reads suggestions in service order. Entries are either
// plain strings or objects carrying the suggestion under "value"; an object
// without that key makes the whole match malformed.
func replacementValues(raw []json.RawMessage) ([]string, error) {
	out := make([]string, 0, len(raw))
	for i, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(r, &obj); err != nil {
			return nil, fmt.Errorf("replacement %d is neither a string nor an object", i)
		}
		v, ok := obj["value"]
		if !ok {
			return nil, fmt.Errorf("replacement %d has no %q key", i, "value")
		}
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, fmt.Errorf("replacement %d value is not a string", i)
		}
		out = append(out, s)
	}
	return out, nil
}
