package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ingressstats/agentstats/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version, build information, and runtime details",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agentstats version %s\n", buildinfo.GetVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "  Go version:    %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "  OS/Arch:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(cmd.OutOrStdout(), "  Compiler:      %s\n", runtime.Compiler)
		},
	}
}
