package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/console"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fieldFlag binds a command line flag to a form field.
type fieldFlag struct {
	flag  string
	field string
	usage string
}

func addFieldFlags(cmd *cobra.Command, flags []fieldFlag) {
	for _, f := range flags {
		cmd.Flags().String(f.flag, "", f.usage)
	}
}

// parseID turns the 1-based id shown in listings into a record index.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 1 {
		return -1, fmt.Errorf("invalid id %q: expected a number starting at 1", arg)
	}
	return id - 1, nil
}

// fieldLabel turns a field name like "firstName" or "role-name" into a
// prompt label.
func fieldLabel(name string) string {
	var words strings.Builder
	for i, r := range name {
		switch {
		case r == '-' || r == '_':
			words.WriteRune(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			words.WriteRune(' ')
			words.WriteRune(r)
		default:
			words.WriteRune(r)
		}
	}
	return cases.Title(language.English).String(words.String())
}

// fillForm applies the flags that were set to the open modal of section and
// prompts for the remaining fields. When editing, prompts only appear if no
// flag was given, prefilled with the current values.
func fillForm(cmd *cobra.Command, section console.Section, flags []fieldFlag, editing bool) error {
	fields, err := app.Fields(section)
	if err != nil {
		return err
	}

	changed := map[string]bool{}
	for _, f := range flags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		value, _ := cmd.Flags().GetString(f.flag)
		if err := app.SetField(section, f.field, value); err != nil {
			return err
		}
		changed[f.field] = true
	}

	if editing && len(changed) > 0 {
		return nil
	}

	var missing []common.Field
	for _, field := range fields {
		if !changed[field.Name] {
			missing = append(missing, field)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	values := make([]string, len(missing))
	inputs := make([]huh.Field, 0, len(missing))
	for i, field := range missing {
		values[i] = field.Value
		inputs = append(inputs, huh.NewInput().
			Title(fieldLabel(field.Name)).
			Value(&values[i]))
	}

	form := huh.NewForm(huh.NewGroup(inputs...))
	if err := form.Run(); err != nil {
		return err
	}

	for i, field := range missing {
		if err := app.SetField(section, field.Name, values[i]); err != nil {
			return err
		}
	}

	return nil
}

// submitForm runs the modal action of section and reports the outcome.
func submitForm(cmd *cobra.Command, section console.Section) error {
	_, err := app.Submit(section)
	printToasts(cmd.ErrOrStderr(), app)

	var validationErr *common.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render(validationErr.Error()))
	}

	return err
}

// deleteConfirmer skips the prompt when --yes was given.
func deleteConfirmer(cmd *cobra.Command) console.Confirmer {
	if yes, err := cmd.Flags().GetBool("yes"); err == nil && yes {
		return console.ConfirmFunc(func(string) (bool, error) {
			return true, nil
		})
	}

	return console.ConfirmFunc(func(prompt string) (bool, error) {
		var confirm bool
		confirmForm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Confirm removal").
					Description(prompt).
					Value(&confirm),
			),
		)

		if err := confirmForm.Run(); err != nil {
			return false, err
		}
		return confirm, nil
	})
}

// deleteRecord asks for confirmation and deletes the record with the given
// id from section.
func deleteRecord(cmd *cobra.Command, section console.Section, arg string) error {
	index, err := parseID(arg)
	if err != nil {
		return err
	}

	deleted, err := app.Delete(section, index, deleteConfirmer(cmd))
	printToasts(cmd.ErrOrStderr(), app)
	if err != nil {
		return err
	}

	if !deleted {
		fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("ℹ️  Deletion cancelled"))
	}
	return nil
}

// createRecord opens the create modal of section, fills it and saves it.
func createRecord(cmd *cobra.Command, section console.Section, flags []fieldFlag) error {
	if err := app.Add(section); err != nil {
		return err
	}
	if err := fillForm(cmd, section, flags, false); err != nil {
		return err
	}
	return submitForm(cmd, section)
}

// updateRecord opens the edit modal of section for id, fills it and
// updates the record.
func updateRecord(cmd *cobra.Command, section console.Section, arg string, flags []fieldFlag) error {
	index, err := parseID(arg)
	if err != nil {
		return err
	}
	if err := app.Edit(section, index); err != nil {
		return fmt.Errorf("no %s with id %s: %w", strings.TrimSuffix(string(section), "s"), arg, err)
	}
	if err := fillForm(cmd, section, flags, true); err != nil {
		return err
	}
	return submitForm(cmd, section)
}
