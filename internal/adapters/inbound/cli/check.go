package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/texspell/texspell/internal/adapters/outbound/export"
	"github.com/texspell/texspell/internal/adapters/outbound/tui"
	"github.com/texspell/texspell/internal/domain"
)

func runCheck(cmd *cobra.Command, g *globalFlags, path string, jsonOutput bool, xlsxPath string) error {
	cfg, svc, err := setup(cmd, g)
	if err != nil {
		return err
	}

	report, err := svc.CheckDocument(cmd.Context(), path, cfg.Language)
	if err != nil {
		return err
	}

	if xlsxPath != "" {
		data, err := export.New(newLogger(cmd.ErrOrStderr(), g.verbose)).XLSX(report)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", xlsxPath, err)
		}
		if err := os.WriteFile(xlsxPath, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", xlsxPath, err)
		}
	}

	if jsonOutput {
		return renderReportJSON(cmd, report)
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report, tui.Options{
		MaxReplacements: cfg.MaxReplacements,
		ContextLines:    cfg.ContextLines,
	}))
	return nil
}

func renderReportJSON(cmd *cobra.Command, report *domain.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
