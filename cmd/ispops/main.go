// Command ispops is the operator CLI: export and import collection data,
// seed fixtures, manage the allow-list and trigger a remote sync without
// going through the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ispops",
		Short:         "ISP operations data tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newExportCmd(),
		newImportCmd(),
		newSeedCmd(),
		newSyncCmd(),
		newOperatorsCmd(),
	)
	return root
}
