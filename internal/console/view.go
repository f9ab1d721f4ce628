package console

import (
	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/modal"
	"github.com/thand-io/directory/internal/notify"
	"github.com/thand-io/directory/internal/table"
)

// View is everything a presentation layer needs to draw the console.
type View struct {
	Section  Section
	Title    string
	AddLabel string
	Table    table.Table
	Modal    *ModalView
	Picker   *PickerView
	Message  string
	Toasts   []notify.Toast
}

type ModalView struct {
	Name       string
	Title      string
	Mode       modal.Mode
	Fields     []common.Field
	ShowSave   bool
	ShowUpdate bool
}

type PickerView struct {
	Title      string
	Mode       PickerMode
	GroupIndex int
	Options    []PickerOption
}

func (c *Console) View() View {
	state := c.sections[c.active]

	view := View{
		Section:  state.name,
		Title:    state.title,
		AddLabel: state.addLabel,
		Table:    state.render(),
		Toasts:   c.toaster.Active(),
	}

	if state.form.IsOpen() {
		view.Modal = &ModalView{
			Name:       state.form.Name(),
			Title:      state.form.Title(),
			Mode:       state.form.Mode(),
			Fields:     state.form.Fields(),
			ShowSave:   state.form.PrimaryVisible(),
			ShowUpdate: state.form.SecondaryVisible(),
		}
	}

	if message, ok := c.messages.Get(state.form.Name()); ok {
		view.Message = message
	}

	if c.picker != nil && c.active == SectionGroups {
		view.Picker = &PickerView{
			Title:      c.picker.Title(),
			Mode:       c.picker.Mode(),
			GroupIndex: c.picker.GroupIndex(),
			Options:    c.picker.Options(),
		}
	}

	return view
}
