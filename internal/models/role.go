package models

import (
	"strings"

	"github.com/thand-io/directory/internal/common"
)

const (
	RoleFieldName        = "role-name"
	RoleFieldDescription = "role-description"
)

var RoleFieldNames = []string{
	RoleFieldName,
	RoleFieldDescription,
}

type Role struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func (r Role) Fields() []common.Field {
	return []common.Field{
		{Name: RoleFieldName, Value: r.Name},
		{Name: RoleFieldDescription, Value: r.Description},
	}
}

// RoleFromFields trims both values before they are stored.
func RoleFromFields(fields []common.Field) Role {
	return Role{
		Name:        strings.TrimSpace(common.FieldValue(fields, RoleFieldName)),
		Description: strings.TrimSpace(common.FieldValue(fields, RoleFieldDescription)),
	}
}
