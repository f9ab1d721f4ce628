package cli

import (
	"github.com/spf13/cobra"
	"github.com/thand-io/directory/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive console",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole()
	},
}

func runConsole() error {
	// Log lines would corrupt the full screen view
	cfg.QuietTerminal()

	var opts []tui.Option
	if activity := cfg.Activity(); activity != nil {
		opts = append(opts, tui.WithActivity(activity))
	}

	return tui.Run(app, opts...)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
