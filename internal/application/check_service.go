package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/texspell/texspell/internal/domain"
	"github.com/texspell/texspell/internal/domain/reconcile"
)

// CheckService orchestrates the check pipeline:
// extract -> check -> reconcile.
type CheckService struct {
	extractor domain.Extractor
	checker   domain.Checker
	revisions domain.RevisionReader
	logger    *slog.Logger
}

// NewCheckService wires the pipeline. revisions may be nil.
func NewCheckService(
	extractor domain.Extractor,
	checker domain.Checker,
	revisions domain.RevisionReader,
	logger *slog.Logger,
) *CheckService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckService{
		extractor: extractor,
		checker:   checker,
		revisions: revisions,
		logger:    logger,
	}
}

// CheckDocument runs the whole pipeline for one document. Extraction and
// checking failures abort the run; nothing partial is returned.
func (s *CheckService) CheckDocument(ctx context.Context, path, language string) (*domain.Report, error) {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID, "document", path)
	start := time.Now()

	// 1. Extract plain text and the offset map
	ext, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	logger.Debug("check.extracted", "plain_chars", ext.Plain.Len(), "anchors", len(ext.Map.Anchors()))

	// 2. One round trip to the checking service
	res, err := s.checker.Check(ctx, domain.CheckRequest{Text: ext.Plain.String(), Language: language})
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Back onto the document
	report := &domain.Report{
		RunID:       runID,
		Document:    path,
		Language:    language,
		Diagnostics: reconcile.All(res.Diagnostics, ext.Map),
		Skipped:     res.Skipped,
		Source:      ext.Source,
	}

	if s.revisions != nil {
		rev, err := s.revisions.Revision(path)
		if err != nil {
			logger.Debug("check.revision_unavailable", "error", err)
		} else {
			report.Revision = rev
		}
	}

	logger.Info("check.done",
		"diagnostics", len(report.Diagnostics),
		"approximate", report.ApproximateCount(),
		"skipped", len(report.Skipped),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// ListLanguages returns the checker's language catalog.
func (s *CheckService) ListLanguages(ctx context.Context) ([]domain.Language, error) {
	langs, err := s.checker.Languages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	return langs, nil
}
