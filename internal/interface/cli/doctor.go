package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ingressstats/agentstats/internal/domain/model/stat"
	"github.com/ingressstats/agentstats/internal/infra/catalog"
	"github.com/ingressstats/agentstats/internal/validator/common"
)

// newDoctorCmd checks the integrity of the loaded configuration and
// catalog the same way the pipeline will see them at parse time.
func newDoctorCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check settings and catalog integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := &common.Report{}

			cat, err := catalog.Load(afero.NewOsFs(), globalSettings.CatalogPath)
			if err != nil {
				report.Add(common.Warning{
					Kind:     "catalog_load_failed",
					Message:  err.Error(),
					Severity: common.SeverityError,
				})
			} else {
				checkCatalog(cat, report)
			}

			summary := common.Summarize(report.Warnings)
			out := cmd.OutOrStdout()

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"issues":  report.Warnings,
					"summary": summary,
				})
			}

			for _, w := range report.Warnings {
				fmt.Fprintf(out, "[%s] %s: %s\n", w.Severity, w.Kind, w.Message)
			}
			fmt.Fprintf(out, "doctor: %d error(s), %d warning(s)\n", summary.Error, summary.Warning)
			if summary.Error > 0 {
				return fmt.Errorf("doctor found %d error(s)", summary.Error)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON")
	return cmd
}

// checkCatalog validates catalog properties beyond what construction
// already guarantees: required head stats and ascending badge ladders.
func checkCatalog(cat *stat.Catalog, report *common.Report) {
	for _, idx := range append([]int{stat.IdxTimeSpan}, stat.RequiredIndices...) {
		if _, ok := cat.ByIdx(idx); !ok {
			report.Add(common.Warning{
				Kind:     "catalog_missing_head_stat",
				Message:  fmt.Sprintf("catalog has no definition for head stat index %d", idx),
				Severity: common.SeverityError,
			})
		}
	}

	for _, def := range cat.Definitions() {
		if !def.HasBadge() {
			continue
		}
		for i := 1; i < len(def.Badge.Levels); i++ {
			if def.Badge.Levels[i] <= def.Badge.Levels[i-1] {
				report.Add(common.Warning{
					Kind:     "catalog_badge_ladder_not_ascending",
					Message:  fmt.Sprintf("%s: badge levels must ascend, got %d after %d", def.Name, def.Badge.Levels[i], def.Badge.Levels[i-1]),
					Severity: common.SeverityError,
				})
			}
		}
		if len(def.Badge.Levels) > len(stat.BadgeRanks) && def.Idx != stat.IdxLevel && def.Idx != stat.IdxLifetimeAP {
			report.Add(common.Warning{
				Kind:     "catalog_badge_ladder_too_long",
				Message:  fmt.Sprintf("%s: %d badge levels for %d ranks", def.Name, len(def.Badge.Levels), len(stat.BadgeRanks)),
				Severity: common.SeverityWarning,
			})
		}
	}
}
