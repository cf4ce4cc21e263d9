// Package cli wires the parsing pipeline into the agentstats command
package cli

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ingressstats/agentstats/internal/infra/config"
)

// globalSettings holds the loaded configuration for all commands
var globalSettings *config.Settings

// logger is the process-wide stderr logger
var logger = NewLogger(LogLevelWarn, os.Stderr)

// NewRoot builds the agentstats root command
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "agentstats",
		Short:        "Parse and validate pasted agent stats snapshots",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration before any command runs
			// Priority: setting.json > defaults
			baseDir := ".agentstats"
			if home := os.Getenv("AGENTSTATS_HOME"); home != "" {
				baseDir = home
			}

			settings, err := config.LoadSettings(afero.NewOsFs(), baseDir)
			if err != nil {
				// Continue with defaults if loading fails
				logger.Warn("settings: %v (using defaults)", err)
				settings, _ = config.LoadSettings(afero.NewMemMapFs(), baseDir)
			}
			globalSettings = settings
			logger.SetLevel(ParseLogLevel(settings.StderrLevel))
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
