package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/texspell/texspell/internal/adapters/outbound/config"
	"github.com/texspell/texspell/internal/domain"
	"gopkg.in/yaml.v3"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .texspell.yaml configuration file",
		Long:  "Create a .texspell.yaml holding the default settings, ready to edit.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			content, err := generateConfig(domain.DefaultConfig())
			if err != nil {
				return err
			}

			if err := os.WriteFile(dest, content, 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .texspell.yaml")

	return cmd
}

func generateConfig(cfg domain.Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	header := "# texspell configuration\n" +
		"# TEXSPELL_BASE_URL, TEXSPELL_LANGUAGE and TEXSPELL_CONVERTER override these values.\n\n"

	footer := `
# disabled_rules:
#   - WHITESPACE_RULE
# mother_tongue: de-DE
`
	return append(append([]byte(header), body...), footer...), nil
}
