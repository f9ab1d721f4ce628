package models

import (
	"slices"
	"strings"

	"github.com/thand-io/directory/internal/common"
)

const GroupFieldName = "group-name"

// Group holds usernames copied by value at assignment time. Members are not
// checked against the user list.
type Group struct {
	Name  string   `json:"name" yaml:"name"`
	Users []string `json:"users" yaml:"users"`
}

func NewGroup(name string) Group {
	return Group{
		Name:  strings.TrimSpace(name),
		Users: []string{},
	}
}

func (g Group) Fields() []common.Field {
	return []common.Field{
		{Name: GroupFieldName, Value: g.Name},
	}
}

func (g Group) HasMember(username string) bool {
	return slices.Contains(g.Users, username)
}

// WithoutMembers returns the members not present in remove, in their
// original order.
func (g Group) WithoutMembers(remove []string) []string {
	kept := make([]string, 0, len(g.Users))
	for _, member := range g.Users {
		if !slices.Contains(remove, member) {
			kept = append(kept, member)
		}
	}
	return kept
}
