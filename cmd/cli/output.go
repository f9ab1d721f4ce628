package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/thand-io/directory/internal/console"
	"github.com/thand-io/directory/internal/notify"
	"github.com/thand-io/directory/internal/table"
)

// renderTable draws a projection for the terminal. Sections without a
// position column get one, since commands address records by it.
func renderTable(tbl table.Table) string {
	headers := tbl.Headers
	rows := tbl.Strings()

	if !tbl.ShowPosition {
		headers = append([]string{"ID"}, headers...)
		for i, row := range tbl.Rows {
			rows[i] = append([]string{strconv.Itoa(row.Position)}, rows[i]...)
		}
	}

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		String()
}

func printTable(w io.Writer, tbl table.Table) {
	fmt.Fprintln(w, titleStyle.Render(tbl.Title))

	if tbl.IsEmpty() {
		fmt.Fprintln(w, infoStyle.Render("ℹ️  Nothing here yet"))
		return
	}

	fmt.Fprintln(w, renderTable(tbl))
}

// printToasts writes the toasts raised by the command that just ran.
func printToasts(w io.Writer, c *console.Console) {
	for _, toast := range c.Toaster().Active() {
		if toast.Level == notify.LevelError {
			fmt.Fprintln(w, errorStyle.Render("✗ "+toast.Message))
		} else {
			fmt.Fprintln(w, successStyle.Render("✓ "+toast.Message))
		}
	}
}

func listSection(cmd *cobra.Command, section console.Section) error {
	tbl, err := app.Open(section)
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(), tbl)
	printToasts(cmd.ErrOrStderr(), app)
	return nil
}
