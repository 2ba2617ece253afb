package domain

import "context"

// Extraction is the output of the document extractor: the document text, the
// plain text derived from it and the map between the two.
type Extraction struct {
	Source string
	Plain  PlainText
	Map    *OffsetMap
}

// Extractor converts a structured document into checkable plain text.
type Extractor interface {
	Extract(ctx context.Context, documentPath string) (*Extraction, error)
}

// Checker is the capability set of a checking backend.
type Checker interface {
	Check(ctx context.Context, req CheckRequest) (*CheckResult, error)
	Languages(ctx context.Context) ([]Language, error)
}

// ConfigLoader loads the tool configuration from a file path.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// RevisionReader reports the version-control revision holding a file.
type RevisionReader interface {
	Revision(path string) (string, error)
}
