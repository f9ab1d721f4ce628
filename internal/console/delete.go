package console

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/directory/internal/repository"
)

// Confirmer asks the operator to affirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// PendingDelete holds a delete until it is confirmed or declined. Only the
// first of Confirm or Decline has any effect.
type PendingDelete struct {
	console  *Console
	state    *sectionState
	index    int
	resolved bool
}

// RequestDelete starts the delete of the record at index in section.
func (c *Console) RequestDelete(section Section, index int) (*PendingDelete, error) {
	state, err := c.section(section)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= state.length() {
		return nil, fmt.Errorf("%w: %s %d", repository.ErrIndexOutOfRange, section, index)
	}

	return &PendingDelete{
		console: c,
		state:   state,
		index:   index,
	}, nil
}

func (p *PendingDelete) Section() Section {
	return p.state.name
}

func (p *PendingDelete) Index() int {
	return p.index
}

func (p *PendingDelete) Prompt() string {
	return fmt.Sprintf("Are you sure you want to delete this %s?", p.state.noun)
}

// Confirm deletes the record if its index is still valid and persists the
// collection. A stale index deletes nothing.
func (p *PendingDelete) Confirm() error {
	if p.resolved {
		return nil
	}
	p.resolved = true

	c := p.console
	if err := p.state.deleteAt(p.index); err != nil {
		c.stale(p.state)
		return err
	}

	// Positions shift, so an open edit session or picker may now point at
	// another record.
	p.state.form.Close()
	if p.state.name == SectionGroups {
		c.picker = nil
	}

	logrus.WithFields(logrus.Fields{
		"section": p.state.name,
		"index":   p.index,
	}).Infoln("Deleted record")

	if err := p.state.persist(); err != nil {
		c.persistFailed(p.state.name, err)
		return err
	}

	c.toaster.Show(p.state.deleted)
	return nil
}

// Decline abandons the delete. Nothing changes.
func (p *PendingDelete) Decline() {
	p.resolved = true
}

// Delete asks confirmer and deletes only on an affirmative answer.
func (c *Console) Delete(section Section, index int, confirmer Confirmer) (bool, error) {
	pending, err := c.RequestDelete(section, index)
	if err != nil {
		return false, err
	}

	ok, err := confirmer.Confirm(pending.Prompt())
	if err != nil {
		pending.Decline()
		return false, err
	}
	if !ok {
		pending.Decline()
		return false, nil
	}

	return true, pending.Confirm()
}
