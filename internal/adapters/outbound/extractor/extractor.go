package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/texspell/texspell/internal/domain"
	"github.com/texspell/texspell/internal/domain/align"
)

// Adapter implements domain.Extractor by running an external converter
// (detex by default) as `<converter> [args...] <document-path>`.
type Adapter struct {
	converter string
	args      []string
	runner    Runner
	logger    *slog.Logger
}

// New creates an Adapter that executes converter with the given leading args.
func New(converter string, args []string, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return NewWithRunner(converter, args, execRunner{logger: logger}, logger)
}

// NewWithRunner creates an Adapter with a custom process runner.
func NewWithRunner(converter string, args []string, runner Runner, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{converter: converter, args: args, runner: runner, logger: logger}
}

// Extract reads the document, runs the converter on it once, and aligns the
// converter output with the document text.
func (a *Adapter) Extract(ctx context.Context, documentPath string) (*domain.Extraction, error) {
	raw, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, &domain.ExtractionError{Kind: domain.IOFailure, Path: documentPath, Err: err}
	}
	source := strings.ToValidUTF8(string(raw), "�")

	args := append(append([]string{}, a.args...), documentPath)
	stdout, stderr, err := a.runner.Run(ctx, a.converter, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.ExtractionError{
			Kind:   domain.ProcessFailed,
			Path:   documentPath,
			Stderr: strings.TrimSpace(truncate(string(stderr), 512)),
			Err:    fmt.Errorf("%s: %w", a.converter, err),
		}
	}
	text := strings.ToValidUTF8(string(stdout), "�")

	m, err := align.Build(source, text)
	if err != nil {
		return nil, fmt.Errorf("aligning %s: %w", documentPath, err)
	}

	a.logger.Debug("extract.aligned",
		"document", documentPath,
		"doc_chars", m.DocLen(),
		"plain_chars", m.PlainLen(),
		"anchors", len(m.Anchors()),
	)

	return &domain.Extraction{
		Source: source,
		Plain:  domain.NewPlainText(documentPath, text),
		Map:    m,
	}, nil
}
