package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/modal"
	"github.com/thand-io/directory/internal/models"
	"github.com/thand-io/directory/internal/notify"
	"github.com/thand-io/directory/internal/repository"
	"github.com/thand-io/directory/internal/store"
	"github.com/thand-io/directory/internal/table"
)

var ErrUnknownSection = errors.New("unknown section")

type Section string

const (
	SectionUsers  Section = "users"
	SectionGroups Section = "groups"
	SectionRoles  Section = "roles"
)

var Sections = []Section{SectionUsers, SectionGroups, SectionRoles}

func ParseSection(name string) (Section, error) {
	section := Section(strings.ToLower(strings.TrimSpace(name)))
	switch section {
	case SectionUsers, SectionGroups, SectionRoles:
		return section, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

// formController is what the console needs from a modal.Controller,
// whatever record type it edits.
type formController interface {
	Mode() modal.Mode
	Name() string
	IsOpen() bool
	EditIndex() (int, bool)
	Title() string
	PrimaryVisible() bool
	SecondaryVisible() bool
	Fields() []common.Field
	SetField(name string, value string) error
	OpenCreate()
	OpenEdit(index int) error
	Close()
	Save() (modal.Outcome, error)
	Update() (modal.Outcome, error)
	Enter() (modal.Outcome, error)
}

// sectionState binds one collection to its modal, table and messages.
type sectionState struct {
	name     Section
	noun     string
	title    string
	addLabel string
	form     formController
	render   func() table.Table
	length   func() int
	deleteAt func(index int) error
	persist  func() error
	load     func() error

	created string
	updated string
	deleted string
}

// Console drives the three sections. It is meant to be used from a single
// goroutine; timers only touch the toaster and the message channels.
type Console struct {
	adapter  *store.Adapter
	toaster  *notify.Toaster
	messages *notify.Messages

	users  *repository.Repository[models.User]
	groups *repository.Groups
	roles  *repository.Repository[models.Role]

	sections map[Section]*sectionState
	active   Section
	picker   *MemberPicker
}

type Option func(*Console)

func WithToaster(toaster *notify.Toaster) Option {
	return func(c *Console) {
		if toaster != nil {
			c.toaster = toaster
		}
	}
}

func WithMessages(messages *notify.Messages) Option {
	return func(c *Console) {
		if messages != nil {
			c.messages = messages
		}
	}
}

func New(adapter *store.Adapter, opts ...Option) *Console {
	c := &Console{
		adapter: adapter,
		users:   repository.New[models.User](adapter, store.KeyUsers),
		groups:  repository.NewGroups(adapter),
		roles:   repository.New[models.Role](adapter, store.KeyRoles),
		active:  SectionUsers,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.toaster == nil {
		c.toaster = notify.NewToaster()
	}
	if c.messages == nil {
		c.messages = notify.NewMessages()
	}

	c.sections = map[Section]*sectionState{
		SectionUsers: {
			name:     SectionUsers,
			noun:     "user",
			title:    table.Users.Title,
			addLabel: userForm.CreateTitle,
			form:     modal.NewController[models.User](c.users, userForm),
			render:   func() table.Table { return table.Render(table.Users, c.users.List()) },
			length:   c.users.Len,
			deleteAt: c.users.DeleteAt,
			persist:  c.users.Persist,
			load:     c.users.Load,
			created:  "User added successfully!",
			updated:  "User updated successfully!",
			deleted:  "User deleted successfully!",
		},
		SectionGroups: {
			name:     SectionGroups,
			noun:     "group",
			title:    table.Groups.Title,
			addLabel: groupForm.CreateTitle,
			form:     modal.NewController[models.Group](groupStore{c.groups}, groupForm),
			render:   func() table.Table { return table.Render(table.Groups, c.groups.List()) },
			length:   c.groups.Len,
			deleteAt: c.groups.DeleteAt,
			persist:  c.groups.Persist,
			load:     c.groups.Load,
			created:  "Group created successfully!",
			updated:  "Group updated successfully!",
			deleted:  "Group deleted successfully!",
		},
		SectionRoles: {
			name:     SectionRoles,
			noun:     "role",
			title:    table.Roles.Title,
			addLabel: roleForm.CreateTitle,
			form:     modal.NewController[models.Role](c.roles, roleForm),
			render:   func() table.Table { return table.Render(table.Roles, c.roles.List()) },
			length:   c.roles.Len,
			deleteAt: c.roles.DeleteAt,
			persist:  c.roles.Persist,
			load:     c.roles.Load,
			created:  "Role added successfully!",
			updated:  "Role updated successfully!",
			deleted:  "Role deleted successfully!",
		},
	}

	return c
}

func (c *Console) Toaster() *notify.Toaster {
	return c.toaster
}

func (c *Console) Messages() *notify.Messages {
	return c.messages
}

// Subscribe calls fn whenever a toast or a validation message appears or
// expires. fn may run on a timer goroutine.
func (c *Console) Subscribe(fn func()) {
	c.toaster.Subscribe(fn)
	c.messages.Subscribe(fn)
}

// Load reads every collection from the store. Failures are reported as
// error toasts and leave the affected collection empty.
func (c *Console) Load() error {
	var errs []error
	for _, name := range Sections {
		state := c.sections[name]
		if err := state.load(); err != nil {
			c.toaster.Error(fmt.Sprintf("Failed to load %s: %v", name, err))
			errs = append(errs, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"users":  c.users.Len(),
		"groups": c.groups.Len(),
		"roles":  c.roles.Len(),
	}).Infoln("Loaded directory")

	return errors.Join(errs...)
}

// Open makes section the active one and returns its freshly rendered table.
// Any open modal or picker is closed.
func (c *Console) Open(section Section) (table.Table, error) {
	state, err := c.section(section)
	if err != nil {
		return table.Table{}, err
	}

	for _, other := range c.sections {
		other.form.Close()
	}
	c.picker = nil
	c.active = section

	return state.render(), nil
}

func (c *Console) Active() Section {
	return c.active
}

func (c *Console) Table(section Section) (table.Table, error) {
	state, err := c.section(section)
	if err != nil {
		return table.Table{}, err
	}
	return state.render(), nil
}

func (c *Console) Users() []models.User {
	return c.users.List()
}

func (c *Console) Groups() []models.Group {
	return c.groups.List()
}

func (c *Console) Roles() []models.Role {
	return c.roles.List()
}

func (c *Console) section(section Section) (*sectionState, error) {
	state, ok := c.sections[section]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	return state, nil
}

// persistFailed surfaces a store failure. The in-memory state is kept.
func (c *Console) persistFailed(section Section, err error) {
	logrus.WithError(err).WithField("section", section).Errorln("Failed to persist collection")
	c.toaster.Error(fmt.Sprintf("Failed to save %s: %v", section, err))
}

func (c *Console) stale(state *sectionState) {
	c.toaster.Error(fmt.Sprintf("The selected %s no longer exists.", state.noun))
}
