package repository

import (
	"slices"

	"github.com/thand-io/directory/internal/models"
	"github.com/thand-io/directory/internal/store"
)

// Groups adds the membership operations on top of the group collection.
type Groups struct {
	*Repository[models.Group]
}

func NewGroups(adapter *store.Adapter) *Groups {
	return &Groups{
		Repository: New[models.Group](adapter, store.KeyGroups),
	}
}

// List returns a copy of the groups. Member slices are copied too.
func (g *Groups) List() []models.Group {
	groups := g.Repository.List()
	for i := range groups {
		groups[i].Users = slices.Clone(groups[i].Users)
	}
	return groups
}

// Get returns a copy of the group at index with its own member slice.
func (g *Groups) Get(index int) (models.Group, error) {
	group, err := g.Repository.Get(index)
	group.Users = slices.Clone(group.Users)
	return group, err
}

// Members returns a copy of the group's usernames.
func (g *Groups) Members(index int) ([]string, error) {
	group, err := g.Get(index)
	if err != nil {
		return nil, err
	}
	return slices.Clone(group.Users), nil
}

// Assign replaces the group's members with usernames. It does not merge.
func (g *Groups) Assign(index int, usernames []string) error {
	members := slices.Clone(usernames)
	if members == nil {
		members = []string{}
	}

	return g.Modify(index, func(group *models.Group) {
		group.Users = members
	})
}

// RemoveMembers drops the given usernames from the group.
func (g *Groups) RemoveMembers(index int, usernames []string) error {
	return g.Modify(index, func(group *models.Group) {
		group.Users = group.WithoutMembers(usernames)
	})
}
