package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/sirupsen/logrus"
	"github.com/thand-io/directory/internal/console"
	"github.com/thand-io/directory/internal/notify"
	"github.com/thand-io/directory/internal/table"
)

const activityLines = 4

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	view := m.console.View()

	var content strings.Builder

	content.WriteString(m.renderTabs(view.Section))
	content.WriteString("\n\n")
	content.WriteString(titleStyle.Render(view.Title))
	content.WriteString("\n")

	switch m.overlay {
	case overlayForm:
		content.WriteString(m.renderForm(view))
	case overlayConfirm:
		content.WriteString(m.renderConfirm())
	case overlayPicker:
		content.WriteString(m.renderPicker(view.Picker))
	default:
		content.WriteString(m.renderTable(view.Table, view.AddLabel))
	}
	content.WriteString("\n")

	if toasts := renderToasts(view.Toasts); len(toasts) > 0 {
		content.WriteString("\n")
		content.WriteString(toasts)
		content.WriteString("\n")
	}

	if activity := m.renderActivity(); len(activity) > 0 {
		content.WriteString("\n")
		content.WriteString(activity)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(m.help.View(m.keys))
	content.WriteString("\n")

	return content.String()
}

func (m Model) renderTabs(active console.Section) string {
	tabs := make([]string, 0, len(console.Sections))
	for i, section := range console.Sections {
		label := fmt.Sprintf("%d %s", i+1, section)
		if section == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderTable(tbl table.Table, addLabel string) string {
	if tbl.IsEmpty() {
		return mutedStyle.Render(fmt.Sprintf("Nothing here yet. Press a to %s.", strings.ToLower(addLabel)))
	}

	cursor := m.cursor
	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(tbl.Headers...).
		Rows(tbl.Strings()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return headerStyle
			case row == cursor:
				return selectedStyle
			default:
				return cellStyle
			}
		}).
		String()
}

func (m Model) renderForm(view console.View) string {
	if view.Modal == nil {
		return ""
	}

	var body strings.Builder
	body.WriteString(titleStyle.Render(view.Modal.Title))
	body.WriteString("\n")

	for i, input := range m.inputs {
		body.WriteString(labelStyle.Render(m.fieldNames[i]))
		body.WriteString("\n")
		body.WriteString(input.View())
		body.WriteString("\n\n")
	}

	if len(view.Message) > 0 {
		body.WriteString(errorStyle.Render(view.Message))
		body.WriteString("\n\n")
	}

	switch {
	case view.Modal.ShowSave:
		body.WriteString(buttonStyle.Render("Save"))
	case view.Modal.ShowUpdate:
		body.WriteString(buttonStyle.Render("Update"))
	}
	body.WriteString("  ")
	body.WriteString(mutedStyle.Render("enter: submit   tab: next field   esc: cancel"))

	return modalStyle.Render(body.String())
}

func (m Model) renderConfirm() string {
	if m.pending == nil {
		return ""
	}

	body := warningStyle.Render(m.pending.Prompt()) + "\n\n" +
		mutedStyle.Render("y/enter: delete   n/esc: cancel")
	return modalStyle.Render(body)
}

func (m Model) renderPicker(picker *console.PickerView) string {
	if picker == nil {
		return ""
	}

	var body strings.Builder
	body.WriteString(titleStyle.Render(picker.Title))
	body.WriteString("\n")

	if len(picker.Options) == 0 {
		body.WriteString(mutedStyle.Render("No users to choose from."))
		body.WriteString("\n")
	}

	for i, option := range picker.Options {
		mark := "[ ]"
		if option.Selected {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, option.Value)
		if i == m.pickerCursor {
			line = selectedStyle.Render(line)
		}
		body.WriteString(line)
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("space: toggle   enter: save   esc: cancel"))

	return modalStyle.Render(body.String())
}

func renderToasts(toasts []notify.Toast) string {
	lines := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		if toast.Level == notify.LevelError {
			lines = append(lines, errorStyle.Render("✗ "+toast.Message))
		} else {
			lines = append(lines, successStyle.Render("✓ "+toast.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderActivity() string {
	if m.activity == nil {
		return ""
	}

	events := m.activity.GetRecentEvents(activityLines)
	if len(events) == 0 {
		return ""
	}

	lines := make([]string, 0, len(events)+1)
	lines = append(lines, labelStyle.Render("Activity"))
	for _, event := range events {
		line := fmt.Sprintf("%s %-5s %s", event.Time.Format("15:04:05"), event.Level, event.Message)
		if event.Level <= logrus.WarnLevel {
			lines = append(lines, warningStyle.Render(line))
		} else {
			lines = append(lines, mutedStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}
