package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProcessFailed      = errors.New("extraction process failed")
	ErrIOFailure          = errors.New("document could not be read")
	ErrNetwork            = errors.New("checking service unreachable")
	ErrUnavailable        = errors.New("checking service unavailable")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrExcerptUnavailable = errors.New("excerpt unavailable")
)

// ExtractionKind classifies an ExtractionError.
type ExtractionKind int

const (
	ProcessFailed ExtractionKind = iota + 1
	IOFailure
)

func (k ExtractionKind) sentinel() error {
	if k == IOFailure {
		return ErrIOFailure
	}
	return ErrProcessFailed
}

// ExtractionError reports a failure to turn a document into plain text.
type ExtractionError struct {
	Kind   ExtractionKind
	Path   string
	Stderr string
	Err    error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind.sentinel(), e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += " (" + e.Stderr + ")"
	}
	return msg
}

func (e *ExtractionError) Unwrap() []error { return causes(e.Kind.sentinel(), e.Err) }

// CheckKind classifies a CheckError.
type CheckKind int

const (
	Network CheckKind = iota + 1
	Unavailable
	MalformedResponse
)

func (k CheckKind) sentinel() error {
	switch k {
	case Unavailable:
		return ErrUnavailable
	case MalformedResponse:
		return ErrMalformedResponse
	default:
		return ErrNetwork
	}
}

// CheckError reports a failed round trip with the checking service.
// Status is set for Unavailable.
type CheckError struct {
	Kind   CheckKind
	Status int
	Err    error
}

func (e *CheckError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CheckError) Unwrap() []error { return causes(e.Kind.sentinel(), e.Err) }

func causes(kind, err error) []error {
	if err == nil {
		return []error{kind}
	}
	return []error{kind, err}
}

// Malformed builds a MalformedResponse CheckError.
func Malformed(format string, args ...any) *CheckError {
	return &CheckError{Kind: MalformedResponse, Err: fmt.Errorf(format, args...)}
}

// RecordError describes a single match that was skipped during
// normalization. It never aborts the batch.
type RecordError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

func (e RecordError) Error() string {
	return fmt.Sprintf("match %d: %s", e.Index, e.Reason)
}

func (e RecordError) Unwrap() error { return ErrMalformedResponse }

// RenderError marks a diagnostic whose excerpt could not be built.
type RenderError struct {
	Offset int
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrExcerptUnavailable, e.Offset, e.Reason)
}

func (e *RenderError) Unwrap() error { return ErrExcerptUnavailable }
