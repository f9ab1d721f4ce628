package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thand-io/directory/internal/config"
	"github.com/thand-io/directory/internal/console"
	"github.com/thand-io/directory/internal/store"
)

// Global state shared by the commands of a single invocation
var (
	cfg     *config.Config
	adapter *store.Adapter
	app     *console.Console
)

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")

	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	// Load configuration before any command runs
	var err error
	cfg, err = loadConfig(cmd)

	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Store overrides from the command line
	if backend, err := cmd.Flags().GetString("store"); err == nil && len(backend) > 0 {
		cfg.Store.Backend = backend
	}
	if path, err := cmd.Flags().GetString("store-path"); err == nil && len(path) > 0 {
		cfg.Store.Path = path
	}

	adapter, err = cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"backend": cfg.Store.Backend,
		"path":    cfg.GetStorePath(),
	}).Debugln("Opened store")

	app = console.New(adapter,
		console.WithToaster(cfg.NewToaster()),
		console.WithMessages(cfg.NewMessages()),
	)

	// Load failures are reported as toasts and leave the collection empty
	if err := app.Load(); err != nil {
		logrus.WithError(err).Warnln("Directory loaded with errors")
	}

	return nil
}

func postRunE(cmd *cobra.Command, _ []string) error {
	if adapter == nil {
		return nil
	}
	return adapter.Close()
}

var rootCmd = &cobra.Command{
	Use:   "directory",
	Short: "Directory - manage users, groups and roles",
	Long: `Directory manages a local list of users, groups and roles.

Run without a command to open the interactive console. Every action is also
available as a command for scripting.

If no config file is specified, directory will look for config files in the following locations:
  - ./config.yaml
  - ./config/config.yaml
  - /etc/thand/directory/config.yaml
  - ~/.config/thand/directory/config.yaml`,
	SilenceUsage:       true,
	PersistentPreRunE:  preRunConfigE,
	PersistentPostRunE: postRunE,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole()
	},
}

func init() {

	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default is ~/.config/thand/directory/config.yaml)")
	rootCmd.PersistentFlags().String("store", "", "Store backend override: file, sqlite or memory")
	rootCmd.PersistentFlags().String("store-path", "", "Store location override")

}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
