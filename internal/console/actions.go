package console

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/modal"
	"github.com/thand-io/directory/internal/repository"
	"github.com/thand-io/directory/internal/store"
)

// Add opens the create modal of section.
func (c *Console) Add(section Section) error {
	state, err := c.section(section)
	if err != nil {
		return err
	}
	state.form.OpenCreate()
	return nil
}

// Edit opens the edit modal of section for the record at index.
func (c *Console) Edit(section Section, index int) error {
	state, err := c.section(section)
	if err != nil {
		return err
	}
	return state.form.OpenEdit(index)
}

func (c *Console) CloseModal(section Section) error {
	state, err := c.section(section)
	if err != nil {
		return err
	}
	state.form.Close()
	return nil
}

func (c *Console) SetField(section Section, name string, value string) error {
	state, err := c.section(section)
	if err != nil {
		return err
	}
	return state.form.SetField(name, value)
}

// Fields returns the current values of the modal of section.
func (c *Console) Fields(section Section) ([]common.Field, error) {
	state, err := c.section(section)
	if err != nil {
		return nil, err
	}
	return state.form.Fields(), nil
}

// Submit runs whichever action the modal of section shows.
func (c *Console) Submit(section Section) (modal.Outcome, error) {
	state, err := c.section(section)
	if err != nil {
		return modal.Outcome{Op: modal.OpNone, Index: -1}, err
	}
	return c.finish(state, state.form.Enter)
}

// Save is the create action of section.
func (c *Console) Save(section Section) (modal.Outcome, error) {
	state, err := c.section(section)
	if err != nil {
		return modal.Outcome{Op: modal.OpNone, Index: -1}, err
	}
	return c.finish(state, state.form.Save)
}

// Update is the edit action of section.
func (c *Console) Update(section Section) (modal.Outcome, error) {
	state, err := c.section(section)
	if err != nil {
		return modal.Outcome{Op: modal.OpNone, Index: -1}, err
	}
	return c.finish(state, state.form.Update)
}

// finish routes the result of a modal action to the message channel or the
// toaster.
func (c *Console) finish(state *sectionState, action func() (modal.Outcome, error)) (modal.Outcome, error) {
	outcome, err := action()

	var validationErr *common.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.messages.Show(state.form.Name(), validationErr.Error())
		return outcome, err
	case errors.Is(err, store.ErrStoreUnavailable):
		c.persistFailed(state.name, err)
		return outcome, err
	case errors.Is(err, repository.ErrIndexOutOfRange):
		c.stale(state)
		return outcome, err
	case err != nil:
		logrus.WithError(err).WithField("section", state.name).Debugln("Modal action ignored")
		return outcome, err
	}

	switch outcome.Op {
	case modal.OpCreated:
		c.messages.Clear(state.form.Name())
		c.toaster.Show(state.created)
	case modal.OpUpdated:
		c.messages.Clear(state.form.Name())
		c.toaster.Show(state.updated)
	}

	return outcome, nil
}
