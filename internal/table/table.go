package table

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Row action names.
const (
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionAssign        = "assign"
	ActionRemoveMembers = "remove-members"
)

// Action is a row-scoped control bound to the row's current index.
type Action struct {
	Name  string
	Index int
}

type Row struct {
	Position int // 1-based display position
	Index    int
	Cells    []string
	Actions  []Action
}

// Table is the view-model of one section's list. Presentation layers turn
// it into whatever they draw.
type Table struct {
	Title        string
	Headers      []string
	ShowPosition bool
	Rows         []Row
}

// Projection describes how a record type becomes table rows.
type Projection[T any] struct {
	Title        string
	Columns      []string
	ShowPosition bool
	Cells        func(T) []string
	Actions      []string
}

// Render rebuilds every row from items. It holds no state, so rendering the
// same items twice gives the same table.
func Render[T any](projection Projection[T], items []T) Table {
	out := Table{
		Title:        projection.Title,
		Headers:      headers(projection),
		ShowPosition: projection.ShowPosition,
		Rows:         make([]Row, 0, len(items)),
	}

	for index, item := range items {
		row := Row{
			Position: index + 1,
			Index:    index,
			Cells:    projection.Cells(item),
			Actions:  make([]Action, 0, len(projection.Actions)),
		}
		for _, name := range projection.Actions {
			row.Actions = append(row.Actions, Action{Name: name, Index: index})
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

// Strings flattens the table into header and data rows, with the action
// names joined into the trailing column.
func (t Table) Strings() [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells)+2)
		if t.ShowPosition {
			cells = append(cells, strconv.Itoa(row.Position))
		}
		cells = append(cells, row.Cells...)

		names := make([]string, 0, len(row.Actions))
		for _, action := range row.Actions {
			names = append(names, action.Name)
		}
		cells = append(cells, strings.Join(names, " "))

		rows = append(rows, cells)
	}
	return rows
}

func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

func headers[T any](projection Projection[T]) []string {
	titler := cases.Title(language.English)

	out := make([]string, 0, len(projection.Columns)+2)
	if projection.ShowPosition {
		out = append(out, "ID")
	}
	for _, column := range projection.Columns {
		out = append(out, titler.String(column))
	}
	return append(out, "Action")
}
