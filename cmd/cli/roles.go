package cli

import (
	"github.com/spf13/cobra"
	"github.com/thand-io/directory/internal/console"
	"github.com/thand-io/directory/internal/models"
)

var roleFlags = []fieldFlag{
	{flag: "name", field: models.RoleFieldName, usage: "Role name"},
	{flag: "description", field: models.RoleFieldDescription, usage: "Role description"},
}

var rolesCmd = &cobra.Command{
	Use:     "roles",
	Aliases: []string{"role"},
	Short:   "Manage roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSection(cmd, console.SectionRoles)
	},
}

var rolesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSection(cmd, console.SectionRoles)
	},
}

var rolesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a role",
	RunE: func(cmd *cobra.Command, args []string) error {
		return createRecord(cmd, console.SectionRoles, roleFlags)
	},
}

var rolesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateRecord(cmd, console.SectionRoles, args[0], roleFlags)
	},
}

var rolesDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a role",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteRecord(cmd, console.SectionRoles, args[0])
	},
}

func init() {
	addFieldFlags(rolesAddCmd, roleFlags)
	addFieldFlags(rolesUpdateCmd, roleFlags)
	rolesDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")

	rolesCmd.AddCommand(rolesListCmd)
	rolesCmd.AddCommand(rolesAddCmd)
	rolesCmd.AddCommand(rolesUpdateCmd)
	rolesCmd.AddCommand(rolesDeleteCmd)

	rootCmd.AddCommand(rolesCmd)
}
