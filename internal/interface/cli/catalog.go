package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ingressstats/agentstats/internal/domain/model/stat"
	"github.com/ingressstats/agentstats/internal/infra/catalog"
)

func newCatalogCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the stat catalog",
	}
	cmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to a catalog YAML (default: embedded catalog)")

	load := func() (*stat.Catalog, error) {
		path := catalogPath
		if path == "" && globalSettings != nil {
			path = globalSettings.CatalogPath
		}
		return catalog.Load(afero.NewOsFs(), path)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all known stat definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}
			for _, def := range cat.Definitions() {
				badge := ""
				if def.HasBadge() {
					badge = fmt.Sprintf(" [%s]", def.Badge.Name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-4s %-14s %s%s\n", def.Idx, def.Type, def.Group, def.Name, badge)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <idx|name>",
		Short: "Show one stat definition and its badge ladder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}

			var def stat.StatDefinition
			var found bool
			if idx, convErr := strconv.Atoi(args[0]); convErr == nil {
				def, found = cat.ByIdx(idx)
			} else {
				def, found = cat.Resolve(args[0])
			}
			if !found {
				return fmt.Errorf("no stat matches %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Idx:         %d\n", def.Idx)
			fmt.Fprintf(out, "Name:        %s\n", def.Name)
			fmt.Fprintf(out, "Group:       %s\n", def.Group)
			fmt.Fprintf(out, "Type:        %s\n", def.Type)
			if def.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", def.Description)
			}
			if def.HasBadge() {
				fmt.Fprintf(out, "Badge:       %s\n", def.Badge.Name)
				for i, threshold := range def.Badge.Levels {
					rank := fmt.Sprintf("level %d", i+1)
					if i < len(stat.BadgeRanks) {
						rank = stat.BadgeRanks[i]
					}
					fmt.Fprintf(out, "  %-9s %s\n", rank, stat.FormatValue(def, threshold))
				}
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(showCmd)
	return cmd
}
