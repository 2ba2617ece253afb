// Package normalize turns the checking service's JSON responses into the
// stable Diagnostic and Language models.
//
// The service has answered with several shapes over time. Each known shape
// is a variant with its own JSON schema; variants are tried in a fixed order
// and the first whose schema accepts the payload decodes it. A payload no
// variant accepts is a MalformedResponse, never an empty result.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/texspell/texspell/internal/domain"
)

// responseShape is one known top-level layout of a check response.
type responseShape struct {
	name    string
	schema  *jsonschema.Schema
	matches func(body []byte) ([]json.RawMessage, error)
}

// matchEncoding is one known way a single match reports its span.
type matchEncoding struct {
	name    string
	schema  *jsonschema.Schema
	convert func(m wireMatch, plain domain.PlainText, cursor int) (offset, length int, err error)
}

var (
	responseShapes = []responseShape{
		{name: "nested", schema: compile("nested", nestedResponseSchema), matches: nestedMatches},
		{name: "flat", schema: compile("flat", flatResponseSchema), matches: flatMatches},
	}

	matchEncodings = []matchEncoding{
		{name: "context", schema: compile("context-match", contextMatchSchema), convert: contextSpan},
		{name: "absolute", schema: compile("absolute-match", absoluteMatchSchema), convert: absoluteSpan},
	}

	languageSchema = compile("languages", languagesSchema)
)

// Normalizer parses raw service payloads.
type Normalizer struct {
	logger *slog.Logger
}

// New creates a Normalizer. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Matches normalizes a check response for the plain text that was sent.
// Diagnostics keep the order of the payload. Individual malformed matches are
// skipped and reported in CheckResult.Skipped; an unrecognized payload fails
// with a MalformedResponse CheckError.
//
// Matches that only carry a context snippet are placed at the first copy of
// the snippet at or after the end of the previous diagnostic.
func (n *Normalizer) Matches(body []byte, plain domain.PlainText) (*domain.CheckResult, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.Malformed("empty response body")
	}
	v, err := decode(body)
	if err != nil {
		return nil, domain.Malformed("invalid JSON: %v", err)
	}

	var raw []json.RawMessage
	shape := ""
	for _, s := range responseShapes {
		if s.schema.Validate(v) != nil {
			continue
		}
		raw, err = s.matches(body)
		if err != nil {
			return nil, domain.Malformed("decoding %s response: %v", s.name, err)
		}
		shape = s.name
		break
	}
	if shape == "" {
		return nil, domain.Malformed("unrecognized response shape (expected a match list or an object with %q)", "matches")
	}

	n.logger.Debug("normalize.shape", "shape", shape, "matches", len(raw))

	result := &domain.CheckResult{Diagnostics: make([]domain.Diagnostic, 0, len(raw))}
	cursor := 0
	for i, r := range raw {
		d, err := normalizeMatch(r, plain, cursor)
		if err != nil {
			rec := domain.RecordError{Index: i, Reason: err.Error()}
			n.logger.Warn("normalize.record_skipped", "index", i, "reason", rec.Reason)
			result.Skipped = append(result.Skipped, rec)
			continue
		}
		result.Diagnostics = append(result.Diagnostics, d)
		cursor = d.End()
	}
	return result, nil
}

// Languages normalizes a language catalog response.
func (n *Normalizer) Languages(body []byte) ([]domain.Language, error) {
	v, err := decode(body)
	if err != nil {
		return nil, domain.Malformed("invalid JSON: %v", err)
	}
	if err := languageSchema.Validate(v); err != nil {
		return nil, domain.Malformed("unrecognized languages response: %s", firstLine(err.Error()))
	}

	var wire []struct {
		Name     string `json:"name"`
		Code     string `json:"code"`
		LongCode string `json:"longCode"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, domain.Malformed("decoding languages: %v", err)
	}

	langs := make([]domain.Language, 0, len(wire))
	for _, w := range wire {
		code := w.LongCode
		if code == "" {
			code = w.Code
		}
		langs = append(langs, domain.Language{Code: code, Name: w.Name})
	}
	return langs, nil
}

func normalizeMatch(raw json.RawMessage, plain domain.PlainText, cursor int) (domain.Diagnostic, error) {
	v, err := decode(raw)
	if err != nil {
		return domain.Diagnostic{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var lastErr error
	for _, enc := range matchEncodings {
		if lastErr = enc.schema.Validate(v); lastErr != nil {
			continue
		}
		var m wireMatch
		if err := json.Unmarshal(raw, &m); err != nil {
			return domain.Diagnostic{}, fmt.Errorf("decoding %s match: %w", enc.name, err)
		}
		offset, length, err := enc.convert(m, plain, cursor)
		if err != nil {
			return domain.Diagnostic{}, err
		}
		return build(m, plain, offset, length)
	}
	return domain.Diagnostic{}, fmt.Errorf("no known match encoding: %s", firstLine(lastErr.Error()))
}

func build(m wireMatch, plain domain.PlainText, offset, length int) (domain.Diagnostic, error) {
	flagged, ok := plain.Slice(offset, length)
	if !ok {
		return domain.Diagnostic{}, fmt.Errorf("span %d+%d exceeds checked text of %d characters", offset, length, plain.Len())
	}
	reps, err := replacementValues(m.Replacements)
	if err != nil {
		return domain.Diagnostic{}, err
	}

	d := domain.Diagnostic{
		Message:      m.Message,
		FlaggedText:  flagged,
		Offset:       offset,
		Length:       length,
		Replacements: reps,
	}
	if m.Rule != nil {
		d.RuleID = m.Rule.ID
		d.Category = m.Rule.Category.Name
		d.IssueType = m.Rule.IssueType
	}
	if m.Type != nil && m.Type.TypeName != "" {
		d.IssueType = m.Type.TypeName
	}
	return d, nil
}

func nestedMatches(body []byte) ([]json.RawMessage, error) {
	var wrapper struct {
		Matches []json.RawMessage `json:"matches"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Matches, nil
}

func flatMatches(body []byte) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// decode parses a single JSON value keeping numbers exact for schema checks.
func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
