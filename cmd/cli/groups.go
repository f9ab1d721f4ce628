package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/thand-io/directory/internal/console"
	"github.com/thand-io/directory/internal/models"
)

var groupFlags = []fieldFlag{
	{flag: "name", field: models.GroupFieldName, usage: "Group name"},
}

var groupsCmd = &cobra.Command{
	Use:     "groups",
	Aliases: []string{"group"},
	Short:   "Manage groups and their members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSection(cmd, console.SectionGroups)
	},
}

var groupsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSection(cmd, console.SectionGroups)
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add"},
	Short:   "Create a group",
	RunE: func(cmd *cobra.Command, args []string) error {
		return createRecord(cmd, console.SectionGroups, groupFlags)
	},
}

var groupsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateRecord(cmd, console.SectionGroups, args[0], groupFlags)
	},
}

var groupsAssignCmd = &cobra.Command{
	Use:   "assign <id>",
	Short: "Set the members of a group",
	Long: `Set the members of a group. The selection replaces the current members.
Without --users a picker lists every user with the current members selected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseID(args[0])
		if err != nil {
			return err
		}

		picker, err := app.OpenAssign(index)
		if err != nil {
			printToasts(cmd.ErrOrStderr(), app)
			return fmt.Errorf("no group with id %s: %w", args[0], err)
		}

		return runPicker(cmd, picker)
	},
}

var groupsRemoveMembersCmd = &cobra.Command{
	Use:   "remove-members <id>",
	Short: "Remove members from a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseID(args[0])
		if err != nil {
			return err
		}

		picker, err := app.OpenRemoveMembers(index)
		if err != nil {
			printToasts(cmd.ErrOrStderr(), app)
			return fmt.Errorf("no group with id %s: %w", args[0], err)
		}

		return runPicker(cmd, picker)
	},
}

var groupsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a group",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteRecord(cmd, console.SectionGroups, args[0])
	},
}

// runPicker takes the selection from --users or from a multi select prompt
// and saves it.
func runPicker(cmd *cobra.Command, picker *console.MemberPicker) error {
	if cmd.Flags().Changed("users") {
		users, _ := cmd.Flags().GetStringSlice("users")
		picker.Select(users...)
	} else {
		options := picker.Options()
		if len(options) == 0 {
			picker.Cancel()
			fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("ℹ️  No users to choose from"))
			return nil
		}

		var huhOptions []huh.Option[string]
		for _, option := range options {
			huhOptions = append(huhOptions, huh.NewOption(option.Value, option.Value).Selected(option.Selected))
		}

		var selected []string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title(picker.Title()).
					Options(huhOptions...).
					Value(&selected),
			),
		)

		if err := form.Run(); err != nil {
			picker.Cancel()
			return err
		}

		picker.Select(selected...)
	}

	err := picker.Save()
	printToasts(cmd.ErrOrStderr(), app)
	return err
}

func init() {
	addFieldFlags(groupsCreateCmd, groupFlags)
	addFieldFlags(groupsUpdateCmd, groupFlags)
	groupsAssignCmd.Flags().StringSlice("users", nil, "Usernames to assign, replacing the current members")
	groupsRemoveMembersCmd.Flags().StringSlice("users", nil, "Usernames to remove")
	groupsDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")

	groupsCmd.AddCommand(groupsListCmd)
	groupsCmd.AddCommand(groupsCreateCmd)
	groupsCmd.AddCommand(groupsUpdateCmd)
	groupsCmd.AddCommand(groupsAssignCmd)
	groupsCmd.AddCommand(groupsRemoveMembersCmd)
	groupsCmd.AddCommand(groupsDeleteCmd)

	rootCmd.AddCommand(groupsCmd)
}
