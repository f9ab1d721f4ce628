package cli

import (
	"github.com/spf13/cobra"
	"github.com/thand-io/directory/internal/console"
	"github.com/thand-io/directory/internal/models"
)

var userFlags = []fieldFlag{
	{flag: "username", field: models.UserFieldUsername, usage: "Username"},
	{flag: "email", field: models.UserFieldEmail, usage: "Email address"},
	{flag: "first-name", field: models.UserFieldFirstName, usage: "First name"},
	{flag: "last-name", field: models.UserFieldLastName, usage: "Last name"},
}

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSection(cmd, console.SectionUsers)
	},
}

var usersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSection(cmd, console.SectionUsers)
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user",
	Long:  "Add a user. Fields not given as flags are prompted for.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return createRecord(cmd, console.SectionUsers, userFlags)
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateRecord(cmd, console.SectionUsers, args[0], userFlags)
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteRecord(cmd, console.SectionUsers, args[0])
	},
}

func init() {
	addFieldFlags(usersAddCmd, userFlags)
	addFieldFlags(usersUpdateCmd, userFlags)
	usersDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	rootCmd.AddCommand(usersCmd)
}
