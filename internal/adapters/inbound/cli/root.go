package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/texspell/texspell/internal/adapters/outbound/config"
	"github.com/texspell/texspell/internal/adapters/outbound/extractor"
	"github.com/texspell/texspell/internal/adapters/outbound/gitinfo"
	"github.com/texspell/texspell/internal/adapters/outbound/languagetool"
	"github.com/texspell/texspell/internal/application"
	"github.com/texspell/texspell/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	baseURL    string
	language   string
	converter  string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var (
		g          globalFlags
		jsonOutput bool
		xlsxPath   string
	)

	cmd := &cobra.Command{
		Use:   "texspell [INPUT]",
		Short: "Grammar and style checking for LaTeX documents",
		Long: "texspell extracts the prose of a LaTeX document, sends it to a LanguageTool server " +
			"and reports every finding against the line and column of the original source.\n\n" +
			"A document whose name matches a command, such as languages, must be given as a path: " +
			"texspell ./languages",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCheck(cmd, &g, args[0], jsonOutput, xlsxPath)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", config.FileName, "Path to the config file")
	pf.StringVar(&g.baseURL, "url", "", "LanguageTool server root (overrides config)")
	pf.StringVarP(&g.language, "language", "l", "", "Language code, e.g. en-US (overrides config)")
	pf.StringVar(&g.converter, "converter", "", "Plain-text converter command (overrides config)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Log debug events to stderr")

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the diagnostics to an XLSX workbook")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newLanguagesCmd(&g))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(&g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI until it completes or the process is interrupted.
// An interrupted run prints nothing.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "texspell:", err)
	}
	return err
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig layers the config file, .env, the environment and finally the
// command-line flags.
func loadConfig(loader domain.ConfigLoader, g *globalFlags) (domain.Config, error) {
	cfg, err := loader.Load(g.configPath)
	if err != nil {
		return domain.Config{}, err
	}
	if g.baseURL != "" {
		cfg.BaseURL = g.baseURL
	}
	if g.language != "" {
		cfg.Language = g.language
	}
	if g.converter != "" {
		cfg.Converter = g.converter
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// newService wires the check pipeline from a validated config.
func newService(cfg domain.Config, logger *slog.Logger) (*application.CheckService, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	checker := languagetool.New(cfg.BaseURL, languagetool.Options{
		Timeout:       timeout,
		DisabledRules: cfg.DisabledRules,
		Picky:         cfg.Picky,
		MotherTongue:  cfg.MotherTongue,
	}, logger)
	return application.NewCheckService(
		extractor.New(cfg.Converter, cfg.ConverterArgs, logger),
		checker,
		gitinfo.New(),
		logger,
	), nil
}

// setup is the common prologue of commands that talk to the server.
func setup(cmd *cobra.Command, g *globalFlags) (domain.Config, *application.CheckService, error) {
	loader := config.New()
	if cmd.Flags().Changed("config") {
		loader = loader.RequireFile()
	}
	cfg, err := loadConfig(loader, g)
	if err != nil {
		return domain.Config{}, nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), g.verbose)
	svc, err := newService(cfg, logger)
	if err != nil {
		return domain.Config{}, nil, err
	}
	return cfg, svc, nil
}
