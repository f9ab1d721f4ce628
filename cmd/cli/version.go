package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thand-io/directory/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	// The version does not need a store
	PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		version, gitCommit, ok := common.GetModuleBuildInfo()

		if !ok {
			fmt.Println("Failed to get version information")
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Directory %s", version)
		if short := common.ShortCommit(gitCommit); len(short) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (git: %s)", short)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	},
}

func init() {

	rootCmd.Version = common.GetVersion()
	rootCmd.AddCommand(versionCmd)
}
