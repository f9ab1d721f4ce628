package modal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/directory/internal/common"
)

var (
	ErrNoEditSession = errors.New("no edit session is active")
	ErrActionHidden  = errors.New("action is not available in the current mode")
	ErrUnknownField  = errors.New("unknown form field")
)

type Mode int

const (
	Closed Mode = iota
	OpenCreate
	OpenEdit
)

func (m Mode) String() string {
	switch m {
	case OpenCreate:
		return "open-create"
	case OpenEdit:
		return "open-edit"
	default:
		return "closed"
	}
}

type Op int

const (
	OpNone Op = iota
	OpCreated
	OpUpdated
)

// Outcome describes what a submit did to the repository.
type Outcome struct {
	Op    Op
	Index int
}

// Store is the part of a repository the controller needs.
type Store[T any] interface {
	Get(index int) (T, error)
	Create(record T) int
	UpdateAt(index int, record T) error
	Persist() error
}

// Form describes one entity's modal: its fields, how to fill them from a
// record, and how to turn them back into one.
type Form[T any] struct {
	Name        string
	CreateTitle string
	EditTitle   string
	FieldNames  []string
	Fields      func(T) []common.Field
	Build       func([]common.Field) T
	Validate    func(...common.Field) error
}

// Controller is the state machine behind a single create/edit modal. The
// primary action (Save) is visible while creating, the secondary action
// (Update) while editing.
type Controller[T any] struct {
	form   Form[T]
	store  Store[T]
	mode   Mode
	index  int
	fields []common.Field
}

func NewController[T any](store Store[T], form Form[T]) *Controller[T] {
	c := &Controller[T]{
		form:  form,
		store: store,
		index: -1,
	}
	c.resetFields()
	return c
}

func (c *Controller[T]) Mode() Mode {
	return c.mode
}

func (c *Controller[T]) Name() string {
	return c.form.Name
}

func (c *Controller[T]) IsOpen() bool {
	return c.mode != Closed
}

// EditIndex reports the record being edited, if any.
func (c *Controller[T]) EditIndex() (int, bool) {
	if c.mode != OpenEdit {
		return -1, false
	}
	return c.index, true
}

func (c *Controller[T]) Title() string {
	if c.mode == OpenEdit {
		return c.form.EditTitle
	}
	return c.form.CreateTitle
}

func (c *Controller[T]) PrimaryVisible() bool {
	return c.mode == OpenCreate
}

func (c *Controller[T]) SecondaryVisible() bool {
	return c.mode == OpenEdit
}

// Fields returns a copy of the current form values.
func (c *Controller[T]) Fields() []common.Field {
	return slices.Clone(c.fields)
}

func (c *Controller[T]) SetField(name string, value string) error {
	for i := range c.fields {
		if c.fields[i].Name == name {
			c.fields[i].Value = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, name)
}

func (c *Controller[T]) OpenCreate() {
	c.resetFields()
	c.mode = OpenCreate
	c.index = -1

	logrus.WithField("form", c.form.Name).Debugln("Opened create modal")
}

// OpenEdit fills the form from the record at index. A stale index leaves
// the controller as it was.
func (c *Controller[T]) OpenEdit(index int) error {
	record, err := c.store.Get(index)
	if err != nil {
		return err
	}

	c.fields = c.form.Fields(record)
	c.mode = OpenEdit
	c.index = index

	logrus.WithFields(logrus.Fields{
		"form":  c.form.Name,
		"index": index,
	}).Debugln("Opened edit modal")

	return nil
}

func (c *Controller[T]) Close() {
	c.mode = Closed
	c.index = -1
}

// Save is the primary action. It only acts while creating.
func (c *Controller[T]) Save() (Outcome, error) {
	if c.mode != OpenCreate {
		return Outcome{Op: OpNone, Index: -1}, ErrActionHidden
	}

	if err := c.form.Validate(c.fields...); err != nil {
		return Outcome{Op: OpNone, Index: -1}, err
	}

	index := c.store.Create(c.form.Build(c.Fields()))
	c.Close()

	return Outcome{Op: OpCreated, Index: index}, c.store.Persist()
}

// Update is the secondary action. Without an edit target it does nothing.
func (c *Controller[T]) Update() (Outcome, error) {
	index, ok := c.EditIndex()
	if !ok {
		return Outcome{Op: OpNone, Index: -1}, ErrNoEditSession
	}

	if err := c.form.Validate(c.fields...); err != nil {
		return Outcome{Op: OpNone, Index: -1}, err
	}

	if err := c.store.UpdateAt(index, c.form.Build(c.Fields())); err != nil {
		c.Close()
		return Outcome{Op: OpNone, Index: -1}, err
	}
	c.Close()

	return Outcome{Op: OpUpdated, Index: index}, c.store.Persist()
}

// Enter activates whichever action is visible.
func (c *Controller[T]) Enter() (Outcome, error) {
	switch {
	case c.PrimaryVisible():
		return c.Save()
	case c.SecondaryVisible():
		return c.Update()
	default:
		return Outcome{Op: OpNone, Index: -1}, nil
	}
}

func (c *Controller[T]) resetFields() {
	c.fields = make([]common.Field, 0, len(c.form.FieldNames))
	for _, name := range c.form.FieldNames {
		c.fields = append(c.fields, common.Field{Name: name})
	}
}
