package table

import (
	"strings"

	"github.com/thand-io/directory/internal/models"
)

const NoUsersAssigned = "No users assigned"

var Users = Projection[models.User]{
	Title:        "User Management",
	Columns:      []string{"username", "email", "first name", "last name"},
	ShowPosition: true,
	Cells: func(u models.User) []string {
		return []string{u.Username, u.Email, u.FirstName, u.LastName}
	},
	Actions: []string{ActionUpdate, ActionDelete},
}

var Groups = Projection[models.Group]{
	Title:   "Group Management",
	Columns: []string{"group name", "user names"},
	Cells: func(g models.Group) []string {
		members := strings.Join(g.Users, ", ")
		if len(members) == 0 {
			members = NoUsersAssigned
		}
		return []string{g.Name, members}
	},
	Actions: []string{ActionAssign, ActionRemoveMembers, ActionUpdate, ActionDelete},
}

var Roles = Projection[models.Role]{
	Title:   "Role Management",
	Columns: []string{"role name", "description"},
	Cells: func(r models.Role) []string {
		return []string{r.Name, r.Description}
	},
	Actions: []string{ActionUpdate, ActionDelete},
}
