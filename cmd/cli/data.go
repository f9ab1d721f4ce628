package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/store"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every user, group and role as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		data, err := encodeSnapshot(app.Export(), format)
		if err != nil {
			return err
		}

		if len(output) == 0 {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.WriteFile(common.ExpandHome(output), data, 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render("Exported to "+output))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace every user, group and role with the contents of a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(common.ExpandHome(args[0]))
		if err != nil {
			return fmt.Errorf("failed to read import: %w", err)
		}

		snapshot, err := common.ReadDataToInterface(data, store.Snapshot{})
		if err != nil {
			return fmt.Errorf("failed to parse import: %w", err)
		}

		err = app.Import(snapshot)
		printToasts(cmd.ErrOrStderr(), app)
		return err
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every user, group and role",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			confirmForm := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Confirm removal").
						Description("Are you sure you want to delete all users, groups and roles?").
						Value(&yes),
				),
			)

			if err := confirmForm.Run(); err != nil {
				return err
			}
		}

		if !yes {
			fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("ℹ️  Clear cancelled"))
			return nil
		}

		err := app.Clear()
		printToasts(cmd.ErrOrStderr(), app)
		return err
	},
}

func encodeSnapshot(snapshot *store.Snapshot, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "":
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(snapshot)
	default:
		return nil, fmt.Errorf("unknown export format %q: expected json or yaml", format)
	}
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	clearCmd.Flags().BoolP("yes", "y", false, "Clear without asking")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearCmd)
}
