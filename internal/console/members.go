package console

import (
	"fmt"
	"slices"

	"github.com/thand-io/directory/internal/models"
)

type PickerMode string

const (
	PickerAssign PickerMode = "assign"
	PickerRemove PickerMode = "remove-members"
)

type PickerOption struct {
	Value    string
	Selected bool
}

// MemberPicker is the multi-select dialog for a group's members.
type MemberPicker struct {
	console  *Console
	mode     PickerMode
	group    int
	name     string
	options  []string
	selected []bool
	closed   bool
}

// OpenAssign offers every known username, preselecting the group's current
// members. Saving replaces the members with the selection.
func (c *Console) OpenAssign(groupIndex int) (*MemberPicker, error) {
	group, err := c.groups.Get(groupIndex)
	if err != nil {
		c.stale(c.sections[SectionGroups])
		return nil, err
	}

	options := models.Usernames(c.users.List())
	picker := c.newPicker(PickerAssign, groupIndex, group.Name, options)
	for i, username := range options {
		picker.selected[i] = group.HasMember(username)
	}
	return picker, nil
}

// OpenRemoveMembers offers only the group's current members, none selected.
func (c *Console) OpenRemoveMembers(groupIndex int) (*MemberPicker, error) {
	group, err := c.groups.Get(groupIndex)
	if err != nil {
		c.stale(c.sections[SectionGroups])
		return nil, err
	}

	return c.newPicker(PickerRemove, groupIndex, group.Name, slices.Clone(group.Users)), nil
}

func (c *Console) newPicker(mode PickerMode, groupIndex int, name string, options []string) *MemberPicker {
	picker := &MemberPicker{
		console:  c,
		mode:     mode,
		group:    groupIndex,
		name:     name,
		options:  options,
		selected: make([]bool, len(options)),
	}
	c.picker = picker
	return picker
}

// Picker returns the picker currently open, if any.
func (c *Console) Picker() *MemberPicker {
	return c.picker
}

func (p *MemberPicker) Mode() PickerMode {
	return p.mode
}

func (p *MemberPicker) GroupIndex() int {
	return p.group
}

func (p *MemberPicker) Title() string {
	if p.mode == PickerRemove {
		return fmt.Sprintf("Remove Users from %s", p.name)
	}
	return fmt.Sprintf("Assign Users to %s", p.name)
}

func (p *MemberPicker) Options() []PickerOption {
	options := make([]PickerOption, 0, len(p.options))
	for i, value := range p.options {
		options = append(options, PickerOption{Value: value, Selected: p.selected[i]})
	}
	return options
}

// Toggle flips the option at position i.
func (p *MemberPicker) Toggle(i int) bool {
	if i < 0 || i >= len(p.options) {
		return false
	}
	p.selected[i] = !p.selected[i]
	return true
}

// Select sets the selection to exactly the given values. Unknown values are
// ignored.
func (p *MemberPicker) Select(values ...string) {
	for i, option := range p.options {
		p.selected[i] = slices.Contains(values, option)
	}
}

// Selected returns the selected values in option order.
func (p *MemberPicker) Selected() []string {
	selected := []string{}
	for i, value := range p.options {
		if p.selected[i] {
			selected = append(selected, value)
		}
	}
	return selected
}

// Save applies the selection to the group and persists groups. An empty
// selection is still written.
func (p *MemberPicker) Save() error {
	if p.closed {
		return nil
	}
	p.close()

	c := p.console
	selected := p.Selected()

	var err error
	success := "Users assigned successfully!"
	if p.mode == PickerRemove {
		err = c.groups.RemoveMembers(p.group, selected)
		success = "Users removed successfully!"
	} else {
		err = c.groups.Assign(p.group, selected)
	}
	if err != nil {
		c.stale(c.sections[SectionGroups])
		return err
	}

	if err := c.groups.Persist(); err != nil {
		c.persistFailed(SectionGroups, err)
		return err
	}

	c.toaster.Show(success)
	return nil
}

// Cancel closes the picker without changes.
func (p *MemberPicker) Cancel() {
	p.close()
}

func (p *MemberPicker) close() {
	p.closed = true
	if p.console.picker == p {
		p.console.picker = nil
	}
}
