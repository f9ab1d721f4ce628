package console

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/modal"
	"github.com/thand-io/directory/internal/models"
	"github.com/thand-io/directory/internal/store"
)

// ErrInvalidImport is returned when a record in an imported snapshot would
// be rejected by its form.
var ErrInvalidImport = errors.New("invalid import")

// Export copies every collection as currently held in memory.
func (c *Console) Export() *store.Snapshot {
	return &store.Snapshot{
		Users:  c.users.List(),
		Groups: c.groups.List(),
		Roles:  c.roles.List(),
	}
}

// Import replaces every collection with the snapshot and persists all
// three. Every record is checked the way its form would check it; on the
// first failure nothing is replaced.
func (c *Console) Import(snapshot *store.Snapshot) error {
	if snapshot == nil {
		snapshot = &store.Snapshot{}
	}

	users, err := importRecords(c.sections[SectionUsers].noun, snapshot.Users, userForm, models.UserFromFields)
	if err == nil {
		_, err = importRecords(c.sections[SectionGroups].noun, snapshot.Groups, groupForm, nil)
	}
	var roles []models.Role
	if err == nil {
		roles, err = importRecords(c.sections[SectionRoles].noun, snapshot.Roles, roleForm, models.RoleFromFields)
	}
	if err != nil {
		logrus.WithError(err).Warnln("Rejected import")
		c.toaster.Error("Failed to import data: " + err.Error())
		return err
	}

	groups := make([]models.Group, 0, len(snapshot.Groups))
	for _, group := range snapshot.Groups {
		imported := models.NewGroup(group.Name)
		imported.Users = append(imported.Users, group.Users...)
		groups = append(groups, imported)
	}

	c.closeAll()
	c.users.Replace(users)
	c.groups.Replace(groups)
	c.roles.Replace(roles)

	var errs []error
	for _, name := range Sections {
		if err := c.sections[name].persist(); err != nil {
			c.persistFailed(name, err)
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"users":  c.users.Len(),
		"groups": c.groups.Len(),
		"roles":  c.roles.Len(),
	}).Infoln("Imported directory")

	c.toaster.Show("Data imported successfully!")
	return nil
}

// importRecords validates each record through form and rebuilds it with
// build when one is given. Positions in errors are 1-based.
func importRecords[T any](noun string, records []T, form modal.Form[T], build func([]common.Field) T) ([]T, error) {
	imported := make([]T, 0, len(records))
	for i, record := range records {
		fields := form.Fields(record)
		if err := form.Validate(fields...); err != nil {
			return nil, fmt.Errorf("%w: %s %d: %w", ErrInvalidImport, noun, i+1, err)
		}
		if build != nil {
			record = build(fields)
		}
		imported = append(imported, record)
	}
	return imported, nil
}

// Clear removes every collection from the store and empties memory.
func (c *Console) Clear() error {
	c.closeAll()
	c.users.Replace(nil)
	c.groups.Replace(nil)
	c.roles.Replace(nil)

	if err := c.adapter.Clear(); err != nil {
		logrus.WithError(err).Errorln("Failed to clear store")
		c.toaster.Error("Failed to clear data: " + err.Error())
		return err
	}

	c.toaster.Show("All data cleared successfully!")
	return nil
}

func (c *Console) closeAll() {
	for _, state := range c.sections {
		state.form.Close()
	}
	c.picker = nil
}
