package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ingressstats/agentstats/internal/adapter/presenter"
	"github.com/ingressstats/agentstats/internal/application/port/output"
	"github.com/ingressstats/agentstats/internal/application/usecase/submit"
	"github.com/ingressstats/agentstats/internal/infra/catalog"
	"github.com/ingressstats/agentstats/internal/infra/journal"
)

func newParseCmd() *cobra.Command {
	var (
		jsonOut     bool
		strict      bool
		noJournal   bool
		catalogPath string
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a pasted stats snapshot from a file or stdin",
		Long: `Parse reads one pasted stats snapshot, runs the parsing and
validation pipeline, and prints the outcome. With no argument the
snapshot is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			path := catalogPath
			if path == "" {
				path = globalSettings.CatalogPath
			}
			cat, err := catalog.Load(afero.NewOsFs(), path)
			if err != nil {
				return err
			}

			useCase := submit.NewParseStatsUseCase(cat)
			outcome := useCase.Execute(text)

			var p output.Presenter
			if jsonOut {
				p = presenter.NewJSONPresenter(cmd.OutOrStdout())
			} else {
				p = presenter.NewCLIOutcomePresenter(cmd.OutOrStdout())
			}
			if err := p.PresentOutcome(outcome); err != nil {
				return err
			}

			if !noJournal && !globalSettings.DisableJournal {
				writer := journal.NewWriter(afero.NewOsFs(), globalSettings.JournalPath)
				if err := writer.Append(journal.NewEntry(outcome, time.Now())); err != nil {
					logger.Warn("journal: %v", err)
				}
			}

			if outcome.Rejected != nil {
				// Code 99 must surface with full context, never silently
				if outcome.Rejected.Code == 99 {
					logger.Error("internal parse fault: %s", outcome.Rejected.Detail)
				}
				return fmt.Errorf("rejected (code %d): %s", outcome.Rejected.Code, outcome.Rejected.Message)
			}
			if strict && !outcome.Accepted.IsValid {
				return fmt.Errorf("record failed validation")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the outcome as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the record fails validation")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "skip the submission journal")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to a catalog YAML (default: embedded catalog)")
	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
