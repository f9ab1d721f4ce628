package console

import (
	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/modal"
	"github.com/thand-io/directory/internal/models"
	"github.com/thand-io/directory/internal/repository"
)

var userForm = modal.Form[models.User]{
	Name:        "user-form",
	CreateTitle: "Add User",
	EditTitle:   "Update User",
	FieldNames:  models.UserFieldNames,
	Fields:      models.User.Fields,
	Build:       models.UserFromFields,
	Validate:    common.ValidateFields,
}

var groupForm = modal.Form[models.Group]{
	Name:        "group-form",
	CreateTitle: "Create Group",
	EditTitle:   "Update Group",
	FieldNames:  []string{models.GroupFieldName},
	Fields:      models.Group.Fields,
	Build: func(fields []common.Field) models.Group {
		return models.NewGroup(common.FieldValue(fields, models.GroupFieldName))
	},
	Validate: common.ValidateRequired,
}

var roleForm = modal.Form[models.Role]{
	Name:        "role-form",
	CreateTitle: "Add Role",
	EditTitle:   "Update Role",
	FieldNames:  models.RoleFieldNames,
	Fields:      models.Role.Fields,
	Build:       models.RoleFromFields,
	Validate:    common.ValidateRequired,
}

// groupStore renames a group on update and keeps its members.
type groupStore struct {
	*repository.Groups
}

func (g groupStore) UpdateAt(index int, group models.Group) error {
	return g.Modify(index, func(existing *models.Group) {
		existing.Name = group.Name
	})
}
